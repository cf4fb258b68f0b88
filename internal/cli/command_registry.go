package cli

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// FlagBinder is implemented by commands that accept flags
type FlagBinder interface {
	BindFlags(flags *pflag.FlagSet)
}

// CommandSpec describes a command and how to build its handler
type CommandSpec struct {
	Name    string
	Aliases []string
	Use     string
	Short   string
	Long    string
	New     func(app *App) Command
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	app      *App
	specs    []CommandSpec
	commands map[string]int
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		app:      app,
		commands: make(map[string]int),
	}

	registry.Register(CommandSpec{
		Name:  "add",
		Use:   "add <text...>",
		Short: "Add a task",
		Long: `Add a task to the list. Blank text is ignored.

Due dates accept YYYY-MM-DD, today, tomorrow or a shorthand offset: 3d, 2w, 1mo, 1y

Examples:
  tl add Buy milk
  tl add "Fix login bug" --priority high --due tomorrow
  tl add Renew passport -p low -d 2mo`,
		New: func(app *App) Command { return NewAddCommand(app) },
	})
	registry.Register(CommandSpec{
		Name:    "list",
		Aliases: []string{"ls"},
		Use:     "list [search...]",
		Short:   "List tasks",
		Long: `List tasks, incomplete first, then by priority, due date and newest.

Filters: all, active, completed, high, medium, low

Examples:
  tl list
  tl list --filter high bug
  tl list --format csv > tasks.csv`,
		New: func(app *App) Command { return NewListCommand(app) },
	})
	registry.Register(CommandSpec{
		Name:    "toggle",
		Aliases: []string{"done"},
		Use:     "toggle <id>...",
		Short:   "Mark tasks complete or incomplete",
		Long:    "Flip the completed state of each task. Ids may be shortened to any unique prefix.",
		New:     func(app *App) Command { return NewToggleCommand(app) },
	})
	registry.Register(CommandSpec{
		Name:  "edit",
		Use:   "edit <id> [text...]",
		Short: "Change a task",
		Long: `Change the text, priority or due date of a task.

Examples:
  tl edit 3f2a "Buy oat milk"
  tl edit 3f2a --priority high --due 2024-06-01
  tl edit 3f2a --clear-due`,
		New: func(app *App) Command { return NewEditCommand(app) },
	})
	registry.Register(CommandSpec{
		Name:    "delete",
		Aliases: []string{"rm"},
		Use:     "delete <id>...",
		Short:   "Delete tasks",
		Long:    "Delete each task. This operation cannot be undone.",
		New:     func(app *App) Command { return NewDeleteCommand(app) },
	})
	registry.Register(CommandSpec{
		Name:  "stats",
		Use:   "stats",
		Short: "Show task statistics",
		Long:  "Show completion progress and counts of high priority, due soon and overdue tasks.",
		New:   func(app *App) Command { return NewStatsCommand(app) },
	})
	registry.Register(CommandSpec{
		Name:  "slots",
		Use:   "slots",
		Short: "List task lists in the storage backend",
		Long: `List the slots stored next to the current one. Each slot is a separate
task list; switch between them with --slot or TL_STORAGE_SLOT.`,
		New: func(app *App) Command { return NewSlotsCommand(app) },
	})

	return registry
}

// Register adds a command to the registry under its name and aliases
func (r *CommandRegistry) Register(spec CommandSpec) {
	r.specs = append(r.specs, spec)
	index := len(r.specs) - 1
	r.commands[spec.Name] = index
	for _, alias := range spec.Aliases {
		r.commands[alias] = index
	}
}

// Specs returns the registered commands in registration order
func (r *CommandRegistry) Specs() []CommandSpec {
	return append([]CommandSpec(nil), r.specs...)
}

// Lookup finds a command by name or alias
func (r *CommandRegistry) Lookup(name string) (CommandSpec, bool) {
	index, exists := r.commands[name]
	if !exists {
		return CommandSpec{}, false
	}
	return r.specs[index], true
}

// Execute runs the specified command with the given arguments.
// Flags are parsed here so commands run the same way with or without cobra.
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	spec, exists := r.Lookup(commandName)
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}

	command := spec.New(r.app)
	flags := pflag.NewFlagSet(spec.Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	if binder, ok := command.(FlagBinder); ok {
		binder.BindFlags(flags)
	}
	if err := flags.Parse(args); err != nil {
		return errors.NewInvalidInputError("flags", strings.Join(args, " "), err.Error())
	}

	return command.Execute(ctx, flags.Args())
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.specs))
	for _, spec := range r.specs {
		names = append(names, "tl "+spec.Use)
	}
	sort.Strings(names)
	return "usage: " + strings.Join(names, " | ")
}
