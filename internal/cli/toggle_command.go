package cli

import (
	"context"

	"task-list/internal/errors"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute runs the toggle command for every id given
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "toggle", "usage: tl toggle <id>...")
	}

	ctx, cancel := c.app.writeContext(ctx)
	defer cancel()

	r := c.app.renderer()
	for _, ref := range args {
		id, err := c.app.api.ResolveID(ref)
		if err != nil {
			return c.app.errorHandler.Handle("toggle task", err)
		}

		task, err := c.app.api.Toggle(ctx, id)
		if err != nil {
			return c.app.errorHandler.Handle("toggle task", err)
		}

		switch {
		case task == nil:
			r.Message("No task matches %q", ref)
		case task.Completed:
			r.Message("Completed: %s", task.Text)
		default:
			r.Message("Reopened: %s", task.Text)
		}
	}
	return nil
}
