package markdowncmd

import (
	"context"
	"errors"
	"os"

	"github.com/goliatone/go-docs/internal/commands"
	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markdown"
	"github.com/goliatone/go-docs/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
)

const importOperation = "markdown.import"

// ImportHandler runs directory imports through the shared command handler.
type ImportHandler struct {
	inner *commands.Handler[ImportCommand]
}

// NewImportHandler binds the handler to importer.
func NewImportHandler(importer *markdown.Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportCommand]) (*ImportHandler, error) {
	if importer == nil {
		return nil, errors.New("markdown command registration: importer is nil")
	}
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg ImportCommand) error {
		info, err := os.Stat(msg.Directory)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errors.New("markdown command: " + msg.Directory + " is not a directory")
		}

		result, err := importer.Import(ctx, os.DirFS(msg.Directory), markdown.ImportOptions{
			DryRun:  msg.DryRun,
			Publish: msg.Publish,
			Loader: markdown.LoaderConfig{
				Patterns:  msg.Patterns,
				Recursive: msg.Recursive,
			},
		})
		if result != nil {
			if msg.Result != nil {
				msg.Result(result)
			}
			for _, fileErr := range result.Errors {
				logging.WithImportContext(baseLogger, fileErr.Path, "failed").Warn("markdown.command.import.file_failed", "error", fileErr.Err)
			}
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportCommand]{
		commands.WithLogger[ImportCommand](baseLogger),
		commands.WithOperation[ImportCommand](importOperation),
		commands.WithMessageFields(func(msg ImportCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			return fields
		}),
		commands.WithTimeout[ImportCommand](5 * commands.DefaultCommandTimeout),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportHandler{inner: commands.NewHandler(exec, handlerOpts...)}, nil
}

// Execute satisfies command.Commander[ImportCommand].
func (h *ImportHandler) Execute(ctx context.Context, msg ImportCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIOptions describes the CLI metadata for directory imports.
func (h *ImportHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"markdown", "import"},
		Group:       "markdown",
		Description: "Sync a content directory into folders and pages; supports dry-run",
	}
}

// Register builds the import handler and hands it to reg.
func Register(reg commands.Registry, importer *markdown.Importer, provider interfaces.LoggerProvider, opts ...commands.HandlerOption[ImportCommand]) (*ImportHandler, error) {
	handler, err := NewImportHandler(importer, commands.CommandLogger(provider, commands.GroupMarkdown), opts...)
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
func (h *ImportHandler) Subscribe() commands.Subscription {
	return dispatcher.SubscribeCommand(h)
}
