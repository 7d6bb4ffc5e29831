package staticcmd

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-docs/internal/commands"
	"github.com/goliatone/go-docs/internal/generator"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
)

const generateOperation = "static.generate"

var errCleanDryRun = errors.New("static command: clean cannot be combined with dry_run")

// GenerateHandler runs generator builds through the shared command handler.
type GenerateHandler struct {
	inner    *commands.Handler[GenerateCommand]
	schedule string
}

var (
	_ command.Commander[GenerateCommand] = (*GenerateHandler)(nil)
	_ command.CronCommand                = (*GenerateHandler)(nil)
)

// NewGenerateHandler binds the handler to service.
func NewGenerateHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateCommand]) (*GenerateHandler, error) {
	if service == nil {
		return nil, errors.New("static command registration: generator is nil")
	}
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg GenerateCommand) error {
		if msg.Clean {
			if err := service.Clean(ctx); err != nil {
				return err
			}
		}
		result, err := service.Build(ctx, generator.BuildOptions{DryRun: msg.DryRun})
		if result != nil && msg.Result != nil {
			msg.Result(result)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[GenerateCommand]{
		commands.WithLogger[GenerateCommand](baseLogger),
		commands.WithOperation[GenerateCommand](generateOperation),
		commands.WithMessageFields(func(msg GenerateCommand) map[string]any {
			return map[string]any{"dry_run": msg.DryRun, "clean": msg.Clean}
		}),
		commands.WithTimeout[GenerateCommand](5 * commands.DefaultCommandTimeout),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateHandler{inner: commands.NewHandler(exec, handlerOpts...)}, nil
}

// Execute satisfies command.Commander[GenerateCommand].
func (h *GenerateHandler) Execute(ctx context.Context, msg GenerateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// WithSchedule sets the cron expression used when the handler is registered
// with a cron scheduler. Blank leaves the handler unscheduled.
func (h *GenerateHandler) WithSchedule(expression string) *GenerateHandler {
	h.schedule = strings.TrimSpace(expression)
	return h
}

// Scheduled reports whether a cron expression is set.
func (h *GenerateHandler) Scheduled() bool { return h.schedule != "" }

// CronHandler satisfies command.CronCommand with a full incremental build.
func (h *GenerateHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), GenerateCommand{})
	}
}

// CronOptions satisfies command.CronCommand.
func (h *GenerateHandler) CronOptions() command.HandlerConfig {
	return command.HandlerConfig{Expression: h.schedule}
}

// CLIOptions describes the CLI metadata for static generation.
func (h *GenerateHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"static", "generate"},
		Group:       "static",
		Description: "Export the published site; supports dry-run and clean",
	}
}

// Register builds the generate handler and hands it to reg.
func Register(reg commands.Registry, service generator.Service, provider interfaces.LoggerProvider, opts ...commands.HandlerOption[GenerateCommand]) (*GenerateHandler, error) {
	handler, err := NewGenerateHandler(service, commands.CommandLogger(provider, commands.GroupStatic), opts...)
	if err != nil {
		return nil, err
	}
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}

// Subscribe attaches the handler to the go-command dispatcher.
func (h *GenerateHandler) Subscribe() commands.Subscription {
	return dispatcher.SubscribeCommand(h)
}
