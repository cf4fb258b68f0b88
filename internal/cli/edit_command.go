package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/domain"
	"task-list/internal/errors"
)

// EditCommand handles the edit command
type EditCommand struct {
	app      *App
	flags    *pflag.FlagSet
	text     string
	priority string
	due      string
	clearDue bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// BindFlags registers the edit command flags
func (c *EditCommand) BindFlags(flags *pflag.FlagSet) {
	c.flags = flags
	flags.StringVarP(&c.text, "text", "t", "", "new task text")
	flags.StringVarP(&c.priority, "priority", "p", "", "new priority: high, medium or low")
	flags.StringVarP(&c.due, "due", "d", "", "new due date: YYYY-MM-DD, today, tomorrow, 3d, 2w, 1mo, 1y")
	flags.BoolVar(&c.clearDue, "clear-due", false, "remove the due date")
}

// Execute runs the edit command. Arguments after the id replace the task text.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: tl edit <id> [text...] [--priority p] [--due d] [--clear-due]")
	}

	update, err := c.buildUpdate(args[1:])
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	id, err := c.app.api.ResolveID(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	ctx, cancel := c.app.writeContext(ctx)
	defer cancel()

	task, err := c.app.api.Update(ctx, id, update)
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	r := c.app.renderer()
	if task == nil {
		r.Message("No changes made to %q", args[0])
		return nil
	}
	r.Message("Updated task %s: %s", shortID(task.ID), task.Text)
	return nil
}

func (c *EditCommand) buildUpdate(textArgs []string) (domain.TaskUpdate, error) {
	var update domain.TaskUpdate

	switch {
	case c.changed("text"):
		text := c.text
		update.Text = &text
	case len(textArgs) > 0:
		text := strings.Join(textArgs, " ")
		update.Text = &text
	}

	if c.changed("priority") {
		priority, err := c.app.parsePriority(c.priority)
		if err != nil {
			return update, err
		}
		update.Priority = &priority
	}

	if c.changed("due") {
		if c.clearDue {
			return update, errors.NewInvalidInputError("due", c.due, "use either --due or --clear-due")
		}
		due, err := parseDueDate(c.due, timeNow(), c.app.validator)
		if err != nil {
			return update, err
		}
		if due == nil {
			return update, errors.NewInvalidInputError("due", c.due, "use --clear-due to remove the due date")
		}
		update.DueDate = due
	}
	update.ClearDueDate = c.clearDue

	if update.IsEmpty() {
		return update, errors.NewInvalidInputError("command", "edit", "nothing to change: give new text, --priority, --due or --clear-due")
	}
	return update, nil
}

func (c *EditCommand) changed(name string) bool {
	return c.flags != nil && c.flags.Changed(name)
}
