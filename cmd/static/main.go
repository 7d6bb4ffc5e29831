package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-docs/cmd/static/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-docs/internal/commands/markdown"
	staticcmd "github.com/goliatone/go-docs/internal/commands/static"
	"github.com/goliatone/go-docs/internal/generator"
	"github.com/goliatone/go-docs/internal/markdown"
)

type generateHandler interface {
	Execute(ctx context.Context, msg staticcmd.GenerateCommand) error
}

type importHandler interface {
	Execute(ctx context.Context, msg markdowncmd.ImportCommand) error
}

type handlerSet struct {
	generate generateHandler
	importer importHandler
}

type moduleOptions struct {
	configPath string
	outputDir  string
	baseURL    string
}

type moduleResources struct {
	handlers handlerSet
	close    func() error
}

var moduleBuilder = buildModule

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("static: %v", err)
	}
}

func buildModule(opts moduleOptions) (*moduleResources, error) {
	resources, err := bootstrap.BuildModule(bootstrap.Options{
		ConfigPath: opts.configPath,
		OutputDir:  opts.outputDir,
		BaseURL:    opts.baseURL,
	})
	if err != nil {
		return nil, err
	}
	container := resources.Module.Container()
	return &moduleResources{
		handlers: handlerSet{
			generate: container.GenerateHandler(),
			importer: container.ImportHandler(),
		},
		close: resources.Module.Close,
	}, nil
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing subcommand (build|diff|clean)")
	}

	sub := args[0]
	switch sub {
	case "build", "diff", "clean":
	default:
		return fmt.Errorf("unknown subcommand %q", sub)
	}

	fs := flag.NewFlagSet("static-"+sub, flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	outputDir := fs.String("output", "", "Output directory (overrides generator.output_dir)")
	baseURL := fs.String("base-url", "", "Absolute site URL used in the sitemap")
	contentDir := fs.String("content", "", "Import this markdown directory before building")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	resources, err := moduleBuilder(moduleOptions{
		configPath: *configPath,
		outputDir:  *outputDir,
		baseURL:    *baseURL,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources.close != nil {
		defer resources.close()
	}
	if resources.handlers.generate == nil {
		return errors.New("generate handler not configured")
	}

	ctx := context.Background()
	if dir := strings.TrimSpace(*contentDir); dir != "" {
		if err := importContent(ctx, resources.handlers.importer, dir); err != nil {
			return err
		}
	}

	switch sub {
	case "clean":
		// outputs of the previous manifest are removed before the rebuild
		return runBuild(ctx, resources.handlers.generate, "clean", staticcmd.GenerateCommand{Clean: true})
	case "diff":
		return runBuild(ctx, resources.handlers.generate, "diff", staticcmd.GenerateCommand{DryRun: true})
	default:
		return runBuild(ctx, resources.handlers.generate, "build", staticcmd.GenerateCommand{})
	}
}

func importContent(ctx context.Context, handler importHandler, dir string) error {
	if handler == nil {
		return errors.New("import handler not configured")
	}
	var result *markdown.Result
	err := handler.Execute(ctx, markdowncmd.ImportCommand{
		Directory: dir,
		Publish:   true,
		Result:    func(r *markdown.Result) { result = r },
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", dir, err)
	}
	if result != nil {
		log.Printf("module=static operation=import folders_created=%d pages_created=%d pages_updated=%d",
			result.FoldersCreated, result.PagesCreated, result.PagesUpdated)
	}
	return nil
}

func runBuild(ctx context.Context, handler generateHandler, operation string, msg staticcmd.GenerateCommand) error {
	var result *generator.BuildResult
	msg.Result = func(r *generator.BuildResult) { result = r }
	if err := handler.Execute(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if result == nil {
		log.Printf("module=static operation=%s completed", operation)
		return nil
	}
	log.Printf("module=static operation=%s summary pages_built=%d pages_skipped=%d removed=%d duration=%s dry_run=%t",
		operation, result.PagesBuilt, result.PagesSkipped, len(result.Removed), result.Duration, result.DryRun)
	for _, file := range result.Files {
		log.Printf("module=static operation=%s file=%s", operation, file.Path)
	}
	return nil
}
