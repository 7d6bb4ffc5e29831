package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-docs/internal/markdown"
)

const importMessageType = "docs.markdown.import"

// ImportCommand syncs a content directory into folders and pages.
type ImportCommand struct {
	// Directory is the content root on disk.
	Directory string `json:"directory"`
	// Patterns filter page files by base name; empty uses *.md and *.html.
	Patterns  []string `json:"patterns,omitempty"`
	Recursive bool     `json:"recursive,omitempty"`
	// Publish is applied to pages whose front matter is silent.
	Publish bool `json:"publish,omitempty"`
	DryRun  bool `json:"dry_run,omitempty"`
	// Result receives the import summary, including partial runs.
	Result func(*markdown.Result) `json:"-"`
}

// Type implements command.Message.
func (ImportCommand) Type() string { return importMessageType }

// Validate ensures a directory is present before handlers execute.
func (m ImportCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("docs.markdown.import.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&m.Patterns, validation.Each(validation.Required)),
	)
}
