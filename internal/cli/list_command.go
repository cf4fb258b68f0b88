package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app    *App
	filter string
	search string
	format string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// BindFlags registers the list command flags
func (c *ListCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.filter, "filter", "f", "", "show only all, active, completed, high, medium or low tasks")
	flags.StringVarP(&c.search, "search", "s", "", "show only tasks whose text contains this, ignoring case")
	flags.StringVarP(&c.format, "format", "o", "", "output format: table, csv or json")
}

// Execute runs the list command. Positional arguments extend the search text.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	search := strings.TrimSpace(strings.Join(append([]string{c.search}, args...), " "))
	return c.listTasks(search)
}

func (c *ListCommand) listTasks(search string) error {
	filterInput := c.filter
	if filterInput == "" {
		filterInput = c.app.config.Display.DefaultFilter
	}
	if err := c.app.validator.ValidateFilter(filterInput); err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}
	filter, _ := domain.ParseFilter(filterInput)

	if err := c.app.api.SetCategoryFilter(filter); err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}
	c.app.api.SetSearchQuery(search)

	format := strings.ToLower(c.format)
	if format == "" {
		format = c.app.config.Display.ListFormat
	}

	tasks := c.app.api.View()
	stats := c.app.api.Stats()

	r := c.app.renderer()
	if err := r.Tasks(tasks, stats.TotalCount, format); err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	if format == FormatTable && len(tasks) > 0 {
		fmt.Fprintln(c.app.out)
		r.Stats(stats)
	}
	return nil
}
