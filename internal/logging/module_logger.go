package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-docs/pkg/interfaces"
)

const (
	RootModule       = "docs"
	PagesModule      = "docs.pages"
	NavigationModule = "docs.navigation"
	MarkupModule     = "docs.markup"
	SiteModule       = "docs.site"
	SettingsModule   = "docs.settings"
	MarkdownModule   = "docs.markdown"
	GeneratorModule  = "docs.generator"
	CommandsModule   = "docs.commands"
	HTTPModule       = "docs.http"
	MCPModule        = "docs.mcp"
)

const (
	fieldModule       = "module"
	fieldSourcePath   = "source_path"
	fieldImportAction = "import_action"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields a
// no-op logger; otherwise the module name is attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = RootModule
	}

	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{fieldModule: module})
}

// WithImportContext annotates importer log entries with the file being
// processed and what happened to it. Blank values are skipped.
func WithImportContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldImportAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
