package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"task-list/internal/logging"
)

// EnvConfigFile names an explicit configuration file.
const EnvConfigFile = "TL_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	loadedFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configFile: os.Getenv(EnvConfigFile),
	}
}

// NewLoaderWithFile creates a loader that reads path instead of the default file location
func NewLoaderWithFile(path string) *Loader {
	l := NewLoader()
	l.configFile = path
	return l
}

// DefaultConfigFile returns ~/.tl/config.yaml
func DefaultConfigFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".tl", "config.yaml")
}

// LoadedFile returns the configuration file that was read, if any
func (l *Loader) LoadedFile() string {
	return l.loadedFile
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML configuration file
// 3. Override with environment variables
// 4. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile reads the explicit file, which must exist, or the default file, which may be absent.
func (l *Loader) loadFile() error {
	path, explicit := l.configFile, l.configFile != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return &ConfigError{Field: "config_file", Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}

	if err := l.config.LoadFromYAML(data); err != nil {
		return &ConfigError{Field: "config_file", Message: fmt.Sprintf("cannot parse %s: %v", path, err)}
	}

	l.loadedFile = path
	logging.Debugf("loaded configuration from %s\n", path)
	return nil
}

// LoadFromYAML overlays the values present in data onto c. Absent keys keep their current value.
func (c *Config) LoadFromYAML(data []byte) error {
	var file struct {
		Storage     *yamlStorage      `yaml:"storage"`
		Display     *DisplayConfig    `yaml:"display"`
		Validation  *ValidationConfig `yaml:"validation"`
		Application *yamlApplication  `yaml:"application"`
	}
	file.Display = &c.Display
	file.Validation = &c.Validation
	file.Storage = &yamlStorage{StorageConfig: &c.Storage}
	file.Application = &yamlApplication{ApplicationConfig: &c.Application}

	return yaml.Unmarshal(data, &file)
}

// yamlStorage accepts durations as strings such as "5s" and permissions in octal.
type yamlStorage struct {
	*StorageConfig
}

func (s *yamlStorage) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Backend        *string `yaml:"backend"`
		Dir            *string `yaml:"dir"`
		Filename       *string `yaml:"filename"`
		Slot           *string `yaml:"slot"`
		DirPermissions *string `yaml:"dir_permissions"`
		SyncWrites     *bool   `yaml:"sync_writes"`
		WriteTimeout   *string `yaml:"write_timeout"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if raw.Backend != nil {
		s.Backend = *raw.Backend
	}
	if raw.Dir != nil {
		s.Dir = expandHome(*raw.Dir)
	}
	if raw.Filename != nil {
		s.Filename = *raw.Filename
	}
	if raw.Slot != nil {
		s.Slot = *raw.Slot
	}
	if raw.DirPermissions != nil {
		p, err := strconv.ParseUint(*raw.DirPermissions, 8, 32)
		if err != nil {
			return fmt.Errorf("dir_permissions: %w", err)
		}
		s.DirPermissions = uint32(p)
	}
	if raw.SyncWrites != nil {
		s.SyncWrites = *raw.SyncWrites
	}
	if raw.WriteTimeout != nil {
		d, err := time.ParseDuration(*raw.WriteTimeout)
		if err != nil {
			return fmt.Errorf("write_timeout: %w", err)
		}
		s.WriteTimeout = d
	}
	return nil
}

type yamlApplication struct {
	*ApplicationConfig
}

func (a *yamlApplication) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Timeout *string `yaml:"timeout"`
		Verbose *bool   `yaml:"verbose"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if raw.Timeout != nil {
		d, err := time.ParseDuration(*raw.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		a.Timeout = d
	}
	if raw.Verbose != nil {
		a.Verbose = *raw.Verbose
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	StorageBackend  *string
	StorageDir      *string
	StorageFilename *string
	StorageSlot     *string
	DirPermissions  *uint32
	SyncWrites      *bool
	WriteTimeout    *time.Duration

	// Display overrides
	DateFormat    *string
	Color         *bool
	ListFormat    *string
	DefaultFilter *string

	// Validation overrides
	TextMaxLength *int

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Storage overrides
	if overrides.StorageBackend != nil {
		config.Storage.Backend = *overrides.StorageBackend
	}
	if overrides.StorageDir != nil {
		config.Storage.Dir = *overrides.StorageDir
	}
	if overrides.StorageFilename != nil {
		config.Storage.Filename = *overrides.StorageFilename
	}
	if overrides.StorageSlot != nil {
		config.Storage.Slot = *overrides.StorageSlot
	}
	if overrides.DirPermissions != nil {
		config.Storage.DirPermissions = *overrides.DirPermissions
	}
	if overrides.SyncWrites != nil {
		config.Storage.SyncWrites = *overrides.SyncWrites
	}
	if overrides.WriteTimeout != nil {
		config.Storage.WriteTimeout = *overrides.WriteTimeout
	}

	// Display overrides
	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.Color != nil {
		config.Display.Color = *overrides.Color
	}
	if overrides.ListFormat != nil {
		config.Display.ListFormat = *overrides.ListFormat
	}
	if overrides.DefaultFilter != nil {
		config.Display.DefaultFilter = *overrides.DefaultFilter
	}

	// Validation overrides
	if overrides.TextMaxLength != nil {
		config.Validation.TextMaxLength = *overrides.TextMaxLength
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
