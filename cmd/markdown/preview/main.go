package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-docs/cmd/markdown/internal/bootstrap"
	"github.com/goliatone/go-docs/internal/site"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("markdown preview: %v", err)
	}
}

func runPreview(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("markdown-preview", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	filePath := fs.String("file", "", "Markup file to preview")
	device := fs.String("device", "desktop", "Preview viewport: desktop, tablet or mobile")
	tocOnly := fs.Bool("toc", false, "Print only the table of contents")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return fmt.Errorf("-file is required")
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", *filePath, err)
	}

	module, err := moduleBuilder(bootstrap.Options{ConfigPath: *configPath})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	preview, err := module.Module.Site().Preview(context.Background(), string(raw), site.Device(*device))
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	module.Logger.Debug("markdown.preview.rendered", "file", *filePath, "device", preview.Device)

	var payload any = preview
	if *tocOnly {
		payload = preview.Headings
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
