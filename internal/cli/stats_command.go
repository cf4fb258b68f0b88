package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/errors"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app    *App
	format string
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

// BindFlags registers the stats command flags
func (c *StatsCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.format, "format", "o", "text", "output format: text or json")
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "stats", "usage: tl stats [--format text|json]")
	}

	stats := c.app.api.Stats()
	r := c.app.renderer()

	switch strings.ToLower(c.format) {
	case "json":
		return r.StatsJSON(stats)
	case "text", "":
		if stats.IsEmpty() {
			r.Message(emptyListMessage)
			return nil
		}
		r.Stats(stats)
		return nil
	}
	return errors.NewInvalidInputError("format", c.format, "must be text or json")
}
