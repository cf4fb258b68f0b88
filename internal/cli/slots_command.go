package cli

import (
	"context"
	"sort"

	"task-list/internal/errors"
	"task-list/internal/storage"
)

// SlotsCommand handles the slots command
type SlotsCommand struct {
	app *App
}

// NewSlotsCommand creates a new slots command handler
func NewSlotsCommand(app *App) *SlotsCommand {
	return &SlotsCommand{app: app}
}

// Execute lists the slots of the configured backend
func (c *SlotsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "slots", "usage: tl slots")
	}

	infos, err := c.app.api.Slots(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list slots", err)
	}

	current := c.app.api.SlotName()
	if !hasSlot(infos, current) {
		infos = append(infos, storage.SlotInfo{Name: current})
		sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	}

	c.app.renderer().Slots(infos, current)
	return nil
}

func hasSlot(infos []storage.SlotInfo, name string) bool {
	for _, info := range infos {
		if info.Name == name {
			return true
		}
	}
	return false
}
