package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-docs/cmd/markdown/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-docs/internal/commands/markdown"
	"github.com/goliatone/go-docs/internal/markdown"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("markdown-import", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	contentDir := fs.String("content-dir", "", "Path to the markdown content root (overrides markdown.content_dir)")
	patterns := fs.String("pattern", "", "Comma separated glob patterns matched against file names")
	recursive := fs.Bool("recursive", false, "Flatten nested directories into their top-level folder")
	publish := fs.Bool("publish", false, "Publish pages whose front matter is silent")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting content")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		ContentDir: *contentDir,
		Patterns:   bootstrap.SplitList(*patterns),
		Recursive:  *recursive,
		Publish:    *publish,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	handler := module.Module.Container().ImportHandler()
	if handler == nil {
		return fmt.Errorf("import handler not configured; ensure commands are enabled")
	}

	cfg := module.Module.Container().Config.Markdown
	var result *markdown.Result
	err = handler.Execute(context.Background(), markdowncmd.ImportCommand{
		Directory: cfg.ContentDir,
		Patterns:  cfg.Patterns,
		Recursive: cfg.Recursive,
		Publish:   cfg.PublishOnImport,
		DryRun:    *dryRun,
		Result:    func(r *markdown.Result) { result = r },
	})
	if result != nil {
		printResult(out, result)
	}
	if err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	return nil
}

func printResult(out io.Writer, result *markdown.Result) {
	fmt.Fprintf(out, "folders: %d created, %d updated\n", result.FoldersCreated, result.FoldersUpdated)
	fmt.Fprintf(out, "pages: %d created, %d updated, %d unchanged, %d skipped\n",
		result.PagesCreated, result.PagesUpdated, result.Unchanged, result.Skipped)
	for _, change := range result.Changes {
		fmt.Fprintf(out, "  %s %s %s\n", change.Action, change.Kind, change.Path)
	}
	for _, fileErr := range result.Errors {
		fmt.Fprintf(out, "  error %s: %v\n", fileErr.Path, fileErr.Err)
	}
	if result.DryRun {
		fmt.Fprintln(out, "dry run: nothing was written")
	}
}
