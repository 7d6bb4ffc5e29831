package staticcmd

import (
	"github.com/goliatone/go-docs/internal/generator"
)

const generateMessageType = "docs.static.generate"

// GenerateCommand exports the published site.
type GenerateCommand struct {
	DryRun bool `json:"dry_run,omitempty"`
	// Clean removes previous outputs before building.
	Clean bool `json:"clean,omitempty"`
	// Result receives the build summary.
	Result func(*generator.BuildResult) `json:"-"`
}

// Type implements command.Message.
func (GenerateCommand) Type() string { return generateMessageType }

// Validate rejects contradictory flags.
func (m GenerateCommand) Validate() error {
	if m.DryRun && m.Clean {
		return errCleanDryRun
	}
	return nil
}
