package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/domain"
	"task-list/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app      *App
	priority string
	due      string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// BindFlags registers the add command flags
func (c *AddCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.priority, "priority", "p", "", "task priority: high, medium or low (default medium)")
	flags.StringVarP(&c.due, "due", "d", "", "due date: YYYY-MM-DD, today, tomorrow, 3d, 2w, 1mo, 1y")
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: tl add <text...> [--priority p] [--due d]")
	}
	return c.addTask(ctx, strings.Join(args, " "))
}

func (c *AddCommand) addTask(ctx context.Context, text string) error {
	priority, err := c.app.parsePriority(c.priority)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	due, err := parseDueDate(c.due, timeNow(), c.app.validator)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	ctx, cancel := c.app.writeContext(ctx)
	defer cancel()

	task, err := c.app.api.Add(ctx, text, priority, due)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	r := c.app.renderer()
	if task == nil {
		r.Message("Nothing added: task text is blank")
		return nil
	}
	r.Message("Added task %s: %s", shortID(task.ID), task.Text)
	return nil
}

// parsePriority accepts priority input in any case. Blank input yields the empty priority.
func (a *App) parsePriority(input string) (domain.Priority, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if err := a.validator.ValidatePriority(input); err != nil {
		return "", err
	}
	priority, _ := domain.ParsePriority(input)
	return priority, nil
}
