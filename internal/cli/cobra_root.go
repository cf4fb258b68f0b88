package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"task-list/internal/api"
	"task-list/internal/config"
	"task-list/internal/logging"
)

// OpenFunc opens the task list described by cfg. The closer releases its storage.
type OpenFunc func(ctx context.Context, cfg *config.Config) (api.TaskList, io.Closer, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
	open   OpenFunc
	closer io.Closer
}

// NewRootCommand creates the root cobra command with global flags.
// The task list is opened with open on the first command that needs it.
func NewRootCommand(open OpenFunc) *RootCommand {
	root := &RootCommand{
		app:    NewAppWithConfig(nil, nil),
		config: config.NewConfig(),
		open:   open,
	}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A command-line task list",
		Long: `Task List (tl) keeps a prioritised list of tasks with optional due dates.

FEATURES:
  • Add tasks with a priority and a due date
  • List tasks filtered by status or priority and searched by text
  • Mark tasks complete, edit and delete them by id or id prefix
  • Track completion progress, due soon and overdue tasks
  • Store tasks in a JSON file, SQLite or Badger

EXAMPLES:
  tl add "Fix login bug" -p high -d tomorrow   # Add a high priority task due tomorrow
  tl list                                      # List all tasks
  tl list -f active groceries                  # List active tasks containing "groceries"
  tl done 3f2a                                 # Toggle the task whose id starts with 3f2a
  tl edit 3f2a --due 1w                        # Move a due date one week out
  tl rm 3f2a                                   # Delete a task
  tl stats                                     # Show completion statistics

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file is read from TL_CONFIG or ~/.tl/config.yaml

  Storage Configuration:
    TL_STORAGE_BACKEND                     file, sqlite, badger or memory (default: file)
    TL_STORAGE_DIR                         Storage directory (default: ~/.tl)
    TL_STORAGE_FILENAME                    SQLite database filename (default: tl.db)
    TL_STORAGE_SLOT                        Name of the task list (default: tasks)
    TL_STORAGE_DIR_PERMISSIONS             Directory permissions in octal (default: 755)
    TL_STORAGE_SYNC_WRITES                 Sync Badger writes to disk (default: true)
    TL_STORAGE_WRITE_TIMEOUT               Write timeout (default: 5s)

  Display Configuration:
    TL_DISPLAY_DATE_FORMAT                 Due date format (default: 2006-01-02)
    TL_DISPLAY_COLOR                       Colour output on terminals (default: true, NO_COLOR disables)
    TL_LIST_DEFAULT_FORMAT                 Default list format (default: table)
    TL_LIST_DEFAULT_FILTER                 Default list filter (default: all)

  Validation Configuration:
    TL_VALIDATION_TEXT_MAX                 Max task text length (default: 500)

  Application Configuration:
    TL_APP_TIMEOUT                         Application timeout (default: 30s)
    TL_APP_VERBOSE                         Enable verbose output (default: false)
    TL_DEBUG                               Print debug output to stderr

DUE DATES:
  YYYY-MM-DD, today, tomorrow, or an offset from today:
    3d, 2w, 1mo, 1y                        # Days, weeks, months, years

GETTING HELP:
  tl [command] --help                      # Get help for any specific command
  tl completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases storage afterwards
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and releases storage afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the command line arguments, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output and cobra messages
func (r *RootCommand) SetOutput(w io.Writer) {
	r.cmd.SetOut(w)
	r.cmd.SetErr(w)
}

// Config returns the configuration in effect once a command has started
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Configuration file (overrides TL_CONFIG)")

	// Storage configuration
	flags.String("backend", "", "Storage backend: file, sqlite, badger or memory (overrides TL_STORAGE_BACKEND)")
	flags.String("dir", "", "Storage directory (overrides TL_STORAGE_DIR)")
	flags.String("filename", "", "SQLite database filename (overrides TL_STORAGE_FILENAME)")
	flags.String("slot", "", "Name of the task list (overrides TL_STORAGE_SLOT)")
	flags.Duration("write-timeout", 0, "Storage write timeout (overrides TL_STORAGE_WRITE_TIMEOUT)")

	// Display configuration
	flags.String("date-format", "", "Due date format (overrides TL_DISPLAY_DATE_FORMAT)")
	flags.Bool("no-color", false, "Disable colour output (overrides TL_DISPLAY_COLOR)")

	// Validation configuration
	flags.Int("text-max-length", 0, "Maximum task text length (overrides TL_VALIDATION_TEXT_MAX)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TL_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TL_APP_VERBOSE)")
}

// addSubcommands adds a cobra command for every registered handler
func (r *RootCommand) addSubcommands() {
	for _, spec := range r.app.Registry().Specs() {
		r.cmd.AddCommand(r.newSubcommand(spec))
	}
}

func (r *RootCommand) newSubcommand(spec CommandSpec) *cobra.Command {
	handler := spec.New(r.app)

	cmd := &cobra.Command{
		Use:     spec.Use,
		Aliases: spec.Aliases,
		Short:   spec.Short,
		Long:    spec.Long,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, handler, args)
		},
	}
	if binder, ok := handler.(FlagBinder); ok {
		binder.BindFlags(cmd.Flags())
	}
	return cmd
}

func (r *RootCommand) run(cmd *cobra.Command, handler Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	if err := r.connect(ctx); err != nil {
		return err
	}

	r.app.SetOutput(cmd.OutOrStdout())
	return handler.Execute(ctx, args)
}

// connect opens and hydrates the task list once per process
func (r *RootCommand) connect(ctx context.Context) error {
	if r.app.api != nil {
		return nil
	}

	taskList, closer, err := r.open(ctx, r.config)
	if err != nil {
		return fmt.Errorf("failed to open task storage: %w", err)
	}
	r.closer = closer

	if err := taskList.Hydrate(ctx); err != nil {
		return r.app.errorHandler.Handle("load tasks", err)
	}

	r.app.api = taskList
	return nil
}

func (r *RootCommand) close() {
	if r.closer == nil {
		return
	}
	if err := r.closer.Close(); err != nil {
		logging.Debugf("closing storage: %v\n", err)
	}
	r.closer = nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// loadConfig builds the configuration from file, environment and command-line flags
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()

	loader := config.NewLoader()
	if path, _ := flags.GetString("config"); path != "" {
		loader = config.NewLoaderWithFile(path)
	}

	cfg, err := loader.LoadWithOverrides(r.getOverridesFromFlags(cmd))
	if err != nil {
		return err
	}

	r.config = cfg
	r.app.setConfig(cfg)
	logging.SetVerbose(cfg.Application.Verbose)
	return nil
}

// getOverridesFromFlags collects the flags that were set on the command line
func (r *RootCommand) getOverridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	// Storage configuration
	if flags.Changed("backend") {
		backend, _ := flags.GetString("backend")
		overrides.StorageBackend = &backend
	}
	if flags.Changed("dir") {
		dir, _ := flags.GetString("dir")
		overrides.StorageDir = &dir
	}
	if flags.Changed("filename") {
		filename, _ := flags.GetString("filename")
		overrides.StorageFilename = &filename
	}
	if flags.Changed("slot") {
		slot, _ := flags.GetString("slot")
		overrides.StorageSlot = &slot
	}
	if flags.Changed("write-timeout") {
		writeTimeout, _ := flags.GetDuration("write-timeout")
		overrides.WriteTimeout = &writeTimeout
	}

	// Display configuration
	if flags.Changed("date-format") {
		dateFormat, _ := flags.GetString("date-format")
		overrides.DateFormat = &dateFormat
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		color := false
		overrides.Color = &color
	}

	// Validation configuration
	if flags.Changed("text-max-length") {
		textMaxLength, _ := flags.GetInt("text-max-length")
		overrides.TextMaxLength = &textMaxLength
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		appTimeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		overrides.Verbose = &verbose
	}

	return overrides
}
