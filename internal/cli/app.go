package cli

import (
	"context"
	"io"
	"os"
	"time"

	"task-list/internal/api"
	"task-list/internal/config"
	"task-list/internal/errors"
	"task-list/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	api          api.TaskList
	config       *config.Config
	registry     *CommandRegistry
	validator    *validation.TaskValidator
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewApp creates a new CLI application instance with default configuration
func NewApp(taskList api.TaskList) *App {
	return NewAppWithConfig(taskList, nil)
}

// NewAppWithConfig creates a new CLI application instance with dependency injection
func NewAppWithConfig(taskList api.TaskList, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:          taskList,
		errorHandler: NewErrorHandler(),
		out:          os.Stdout,
	}
	app.setConfig(cfg)
	app.registry = NewCommandRegistry(app)
	return app
}

// SetOutput redirects command output, which defaults to stdout
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

func (a *App) setConfig(cfg *config.Config) {
	a.config = cfg
	a.validator = validation.NewTaskValidatorWithLimits(cfg.Validation.TextMaxLength)
}

// Registry returns the commands the application understands
func (a *App) Registry() *CommandRegistry {
	return a.registry
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

func (a *App) renderer() *Renderer {
	return NewRenderer(a.out, a.config.Display, timeNow())
}

// writeContext bounds the storage writes of one command by the configured write timeout
func (a *App) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.GetWriteTimeout())
}
