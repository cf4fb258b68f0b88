package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration options for the task list application
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Display     DisplayConfig     `yaml:"display"`
	Validation  ValidationConfig  `yaml:"validation"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig selects and locates the slot tasks are persisted in
type StorageConfig struct {
	Backend        string        `yaml:"backend" env:"TL_STORAGE_BACKEND" validate:"oneof=file sqlite badger memory"`
	Dir            string        `yaml:"dir" env:"TL_STORAGE_DIR" validate:"required_unless=Backend memory"`
	Filename       string        `yaml:"filename" env:"TL_STORAGE_FILENAME" validate:"required_if=Backend sqlite"`
	Slot           string        `yaml:"slot" env:"TL_STORAGE_SLOT" validate:"required,slotname"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TL_STORAGE_DIR_PERMISSIONS" validate:"lte=511"`
	SyncWrites     bool          `yaml:"sync_writes" env:"TL_STORAGE_SYNC_WRITES"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TL_STORAGE_WRITE_TIMEOUT" validate:"gt=0"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat    string `yaml:"date_format" env:"TL_DISPLAY_DATE_FORMAT" validate:"required"`
	Color         bool   `yaml:"color" env:"TL_DISPLAY_COLOR"`
	ListFormat    string `yaml:"list_format" env:"TL_LIST_DEFAULT_FORMAT" validate:"oneof=table csv json"`
	DefaultFilter string `yaml:"default_filter" env:"TL_LIST_DEFAULT_FILTER" validate:"oneof=all active completed high medium low"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TextMaxLength int `yaml:"text_max_length" env:"TL_VALIDATION_TEXT_MAX" validate:"gte=1,lte=10000"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TL_APP_TIMEOUT" validate:"gt=0"`
	Verbose bool          `yaml:"verbose" env:"TL_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Backend:        "file",
			Dir:            filepath.Join(homeDir, ".tl"),
			Filename:       "tl.db",
			Slot:           "tasks",
			DirPermissions: 0755,
			SyncWrites:     true,
			WriteTimeout:   5 * time.Second,
		},
		Display: DisplayConfig{
			DateFormat:    "2006-01-02",
			Color:         true,
			ListFormat:    "table",
			DefaultFilter: "all",
		},
		Validation: ValidationConfig{
			TextMaxLength: 500,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetStoragePath returns the full path of the storage location for the configured backend
func (c *Config) GetStoragePath() string {
	switch c.Storage.Backend {
	case "sqlite":
		return filepath.Join(c.Storage.Dir, c.Storage.Filename)
	case "badger":
		return filepath.Join(c.Storage.Dir, "badger")
	case "memory":
		return ""
	default:
		return filepath.Join(c.Storage.Dir, c.Storage.Slot+".json")
	}
}

// GetWriteTimeout returns the storage write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if backend := os.Getenv("TL_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if dir := os.Getenv("TL_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TL_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if slot := os.Getenv("TL_STORAGE_SLOT"); slot != "" {
		c.Storage.Slot = slot
	}
	if perms := os.Getenv("TL_STORAGE_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}
	if sync := os.Getenv("TL_STORAGE_SYNC_WRITES"); sync != "" {
		c.Storage.SyncWrites = ParseBoolWithFallback(sync, c.Storage.SyncWrites)
	}
	if timeout := os.Getenv("TL_STORAGE_WRITE_TIMEOUT"); timeout != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(timeout, c.Storage.WriteTimeout)
	}

	// Display configuration
	if format := os.Getenv("TL_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if color := os.Getenv("TL_DISPLAY_COLOR"); color != "" {
		c.Display.Color = ParseBoolWithFallback(color, c.Display.Color)
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Display.Color = false
	}
	if format := os.Getenv("TL_LIST_DEFAULT_FORMAT"); format != "" {
		c.Display.ListFormat = strings.ToLower(format)
	}
	if filter := os.Getenv("TL_LIST_DEFAULT_FILTER"); filter != "" {
		c.Display.DefaultFilter = strings.ToLower(filter)
	}

	// Validation configuration
	if maxLen := os.Getenv("TL_VALIDATION_TEXT_MAX"); maxLen != "" {
		c.Validation.TextMaxLength = ParseIntWithFallback(maxLen, c.Validation.TextMaxLength)
	}

	// Application configuration
	if timeout := os.Getenv("TL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

var slotNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

var configValidate = mustConfigValidator()

// newConfigValidator builds the validator behind Validate, with field names
// taken from yaml tags and the slotname tag registered.
func newConfigValidator() (*validator.Validate, error) {
	v := validator.New()

	// Report fields by their yaml names so errors match the config file.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("slotname", func(fl validator.FieldLevel) bool {
		return slotNameRegex.MatchString(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register slotname validation: %w", err)
	}
	return v, nil
}

func mustConfigValidator() *validator.Validate {
	v, err := newConfigValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigError{Field: "config", Message: err.Error()}
	}

	fe := fieldErrs[0]
	return &ConfigError{Field: configFieldName(fe.Namespace()), Message: configMessage(fe)}
}

// configFieldName drops the root struct name: "Config.storage.backend" becomes "storage.backend".
func configFieldName(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func configMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return "cannot be empty"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "slotname":
		return "may only contain letters, digits, '-' and '_'"
	case "gt":
		return "must be positive"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
