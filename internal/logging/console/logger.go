package console

import (
	"context"
	"io"
	"maps"
	"os"
	"sync"
	"time"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// Options configures the console logger provider.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
	File     *FileSink
}

// Provider writes key=value lines to a writer and, optionally, a rotated file.
type Provider struct {
	out      io.Writer
	file     io.WriteCloser
	clock    func() time.Time
	minLevel Level
	mu       sync.Mutex
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds a console provider. Without options it logs DEBUG and
// above to stdout.
func NewProvider(opts Options) *Provider {
	p := &Provider{
		out:      opts.Writer,
		clock:    opts.TimeFunc,
		minLevel: LevelDebug,
		file:     opts.File.writer(),
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if opts.MinLevel != nil {
		p.minLevel = *opts.MinLevel
	}
	if p.file != nil {
		p.out = io.MultiWriter(p.out, p.file)
	}
	return p
}

// GetLogger returns a logger tagged with name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &entryLogger{provider: p, fields: map[string]any{"logger": name}}
}

// Close releases the rotated file, if any.
func (p *Provider) Close() error {
	if p == nil || p.file == nil {
		return nil
	}
	return p.file.Close()
}

func (p *Provider) write(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// best effort: a broken sink must not take the caller down
	_, _ = io.WriteString(p.out, line+"\n")
}

type entryLogger struct {
	provider *Provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*entryLogger)(nil)
	_ interfaces.FieldsLogger = (*entryLogger)(nil)
)

func (l *entryLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *entryLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *entryLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *entryLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *entryLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }
func (l *entryLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

func (l *entryLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return &entryLogger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *entryLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &entryLogger{provider: l.provider, fields: l.fields, ctx: ctx}
}

func (l *entryLogger) log(level Level, msg string, args []any) {
	if l.provider == nil || level < l.provider.minLevel {
		return
	}
	fields := make(map[string]any, len(l.fields)+len(args)/2)
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	maps.Copy(fields, pairs(args))

	l.provider.write(formatEntry(l.provider.clock().UTC(), level, msg, fields))
}
