package staticcmd_test

import (
	"context"
	"testing"

	staticcmd "github.com/goliatone/go-docs/internal/commands/static"
	"github.com/goliatone/go-docs/internal/generator"
	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/pages"
)

func newGenerator(t *testing.T) (generator.Service, *generator.MemoryWriter) {
	t.Helper()
	ctx := context.Background()
	service := pages.NewService(pages.NewMemoryStore())
	folder, err := service.CreateFolder(ctx, pages.CreateFolderRequest{Name: "Guides"})
	if err != nil {
		t.Fatalf("folder: %v", err)
	}
	if _, err := service.CreatePage(ctx, pages.CreatePageRequest{Title: "Intro", FolderID: folder.ID, Content: "# Hi", IsPublished: true}); err != nil {
		t.Fatalf("page: %v", err)
	}
	writer := generator.NewMemoryWriter()
	return generator.NewService(generator.Config{}, generator.Dependencies{
		Pages:    service,
		Pipeline: markup.NewPipeline(nil, markup.PipelineConfig{}),
		Writer:   writer,
	}), writer
}

func TestGenerateCommandBuildsSite(t *testing.T) {
	svc, writer := newGenerator(t)
	handler, err := staticcmd.Register(nil, svc, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var result *generator.BuildResult
	if err := handler.Execute(context.Background(), staticcmd.GenerateCommand{Result: func(r *generator.BuildResult) { result = r }}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result == nil || result.PagesBuilt != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := writer.ReadFile(context.Background(), "guides/intro/index.html"); err != nil {
		t.Fatalf("expected page written: %v", err)
	}
}

func TestGenerateCommandCleanThenBuild(t *testing.T) {
	svc, writer := newGenerator(t)
	handler, _ := staticcmd.NewGenerateHandler(svc, nil)
	ctx := context.Background()

	if err := handler.Execute(ctx, staticcmd.GenerateCommand{}); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if err := writer.WriteFile(ctx, generator.WriteRequest{Path: "guides/intro/index.html", Data: []byte("tampered")}); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	if err := handler.Execute(ctx, staticcmd.GenerateCommand{Clean: true}); err != nil {
		t.Fatalf("clean build: %v", err)
	}
	data, _ := writer.ReadFile(ctx, "guides/intro/index.html")
	if string(data) == "tampered" {
		t.Fatalf("expected clean build to rewrite the page")
	}
}

func TestGenerateCommandRejectsCleanDryRun(t *testing.T) {
	svc, _ := newGenerator(t)
	handler, _ := staticcmd.NewGenerateHandler(svc, nil)
	if err := handler.Execute(context.Background(), staticcmd.GenerateCommand{Clean: true, DryRun: true}); !pages.IsValidationFailure(err) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestGenerateCommandDisabledGenerator(t *testing.T) {
	handler, _ := staticcmd.NewGenerateHandler(generator.NewDisabledService(), nil)
	if err := handler.Execute(context.Background(), staticcmd.GenerateCommand{}); err == nil {
		t.Fatalf("expected disabled generator error")
	}
}

func TestGenerateHandlerSchedule(t *testing.T) {
	svc, writer := newGenerator(t)
	handler, err := staticcmd.Register(nil, svc, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if handler.Scheduled() || handler.CronOptions().Expression != "" {
		t.Fatalf("expected no schedule by default")
	}

	handler.WithSchedule("  @hourly ")
	if !handler.Scheduled() || handler.CronOptions().Expression != "@hourly" {
		t.Fatalf("unexpected cron options %+v", handler.CronOptions())
	}
	if err := handler.CronHandler()(); err != nil {
		t.Fatalf("cron run: %v", err)
	}
	if len(writer.Paths()) == 0 {
		t.Fatalf("expected the cron run to write artifacts")
	}
	if got := handler.CLIOptions().Path; len(got) != 2 || got[0] != "static" {
		t.Fatalf("unexpected cli path %v", got)
	}
}
