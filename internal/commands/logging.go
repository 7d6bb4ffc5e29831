package commands

import (
	"strings"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// Command groups. Each matches the middle segment of the message types it
// handles, e.g. "docs.pages.create" belongs to GroupPages.
const (
	GroupPages    = "pages"
	GroupMarkdown = "markdown"
	GroupStatic   = "static"
	groupFallback = "core"
)

// CommandLogger returns the logger for a command group, named
// "docs.commands.<group>". Every entry carries component=command,
// command_group and command_namespace ("docs.<group>", the prefix of the
// group's message types) so log lines can be joined with dispatcher events.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.ToLower(strings.TrimSpace(group))
	if name == "" {
		name = groupFallback
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, logging.CommandsModule+"."+name),
		map[string]any{
			"component":         "command",
			"command_group":     name,
			"command_namespace": logging.RootModule + "." + name,
		},
	)
}
