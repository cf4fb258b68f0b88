package cli

import (
	"context"

	"task-list/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tl delete <id>...")
	}
	return c.deleteTasks(ctx, args)
}

// deleteTasks removes each referenced task. Unknown ids are reported and skipped.
func (c *DeleteCommand) deleteTasks(ctx context.Context, refs []string) error {
	ctx, cancel := c.app.writeContext(ctx)
	defer cancel()

	r := c.app.renderer()
	for _, ref := range refs {
		id, err := c.app.api.ResolveID(ref)
		if err != nil {
			return c.app.errorHandler.Handle("delete task", err)
		}

		task, err := c.app.api.Remove(ctx, id)
		if err != nil {
			return c.app.errorHandler.Handle("delete task", err)
		}

		if task == nil {
			r.Message("No task matches %q", ref)
			continue
		}
		r.Message("Deleted task: %s", task.Text)
	}
	return nil
}
