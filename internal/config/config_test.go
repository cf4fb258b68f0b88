package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears every TL_ variable the loader reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"TL_CONFIG", "TL_STORAGE_BACKEND", "TL_STORAGE_DIR", "TL_STORAGE_FILENAME",
		"TL_STORAGE_SLOT", "TL_STORAGE_DIR_PERMISSIONS", "TL_STORAGE_SYNC_WRITES",
		"TL_STORAGE_WRITE_TIMEOUT", "TL_DISPLAY_DATE_FORMAT", "TL_DISPLAY_COLOR", "NO_COLOR",
		"TL_LIST_DEFAULT_FORMAT", "TL_LIST_DEFAULT_FILTER", "TL_VALIDATION_TEXT_MAX",
		"TL_APP_TIMEOUT", "TL_APP_VERBOSE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func TestNewConfig_Defaults(t *testing.T) {
	home := isolate(t)

	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".tl"), cfg.Storage.Dir)
	assert.Equal(t, "tasks", cfg.Storage.Slot)
	assert.Equal(t, filepath.Join(home, ".tl", "tasks.json"), cfg.GetStoragePath())
	assert.Equal(t, "table", cfg.Display.ListFormat)
	assert.Equal(t, "all", cfg.Display.DefaultFilter)
	assert.True(t, cfg.Display.Color)
	assert.Equal(t, 500, cfg.Validation.TextMaxLength)
	assert.Equal(t, 5*time.Second, cfg.GetWriteTimeout())
}

func TestConfig_GetStoragePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Dir = "/data"

	tests := []struct {
		backend  string
		expected string
	}{
		{"file", filepath.Join("/data", "tasks.json")},
		{"sqlite", filepath.Join("/data", "tl.db")},
		{"badger", filepath.Join("/data", "badger")},
		{"memory", ""},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg.Storage.Backend = tt.backend
			assert.Equal(t, tt.expected, cfg.GetStoragePath())
		})
	}
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("TL_STORAGE_BACKEND", "SQLite")
	t.Setenv("TL_STORAGE_DIR", "/var/tl")
	t.Setenv("TL_STORAGE_SLOT", "work")
	t.Setenv("TL_STORAGE_DIR_PERMISSIONS", "700")
	t.Setenv("TL_STORAGE_SYNC_WRITES", "false")
	t.Setenv("TL_LIST_DEFAULT_FORMAT", "JSON")
	t.Setenv("TL_LIST_DEFAULT_FILTER", "active")
	t.Setenv("TL_VALIDATION_TEXT_MAX", "80")
	t.Setenv("TL_APP_TIMEOUT", "10s")
	t.Setenv("TL_APP_VERBOSE", "true")
	t.Setenv("TL_STORAGE_WRITE_TIMEOUT", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/var/tl", cfg.Storage.Dir)
	assert.Equal(t, "work", cfg.Storage.Slot)
	assert.Equal(t, uint32(0700), cfg.Storage.DirPermissions)
	assert.False(t, cfg.Storage.SyncWrites)
	assert.Equal(t, "json", cfg.Display.ListFormat)
	assert.Equal(t, "active", cfg.Display.DefaultFilter)
	assert.Equal(t, 80, cfg.Validation.TextMaxLength)
	assert.Equal(t, 10*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, 5*time.Second, cfg.Storage.WriteTimeout, "unparseable values keep the default")
}

func TestConfig_NoColor(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())
	assert.False(t, cfg.Display.Color)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "s3" }, "storage.backend"},
		{"missing dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"memory needs no dir", func(c *Config) { c.Storage.Backend = "memory"; c.Storage.Dir = "" }, ""},
		{"sqlite needs a filename", func(c *Config) { c.Storage.Backend = "sqlite"; c.Storage.Filename = "" }, "storage.filename"},
		{"empty slot", func(c *Config) { c.Storage.Slot = "" }, "storage.slot"},
		{"slot with a path separator", func(c *Config) { c.Storage.Slot = "../etc" }, "storage.slot"},
		{"permissions out of range", func(c *Config) { c.Storage.DirPermissions = 01000 }, "storage.dir_permissions"},
		{"zero write timeout", func(c *Config) { c.Storage.WriteTimeout = 0 }, "storage.write_timeout"},
		{"empty date format", func(c *Config) { c.Display.DateFormat = "" }, "display.date_format"},
		{"unknown list format", func(c *Config) { c.Display.ListFormat = "xml" }, "display.list_format"},
		{"unknown default filter", func(c *Config) { c.Display.DefaultFilter = "overdue" }, "display.default_filter"},
		{"zero text length", func(c *Config) { c.Validation.TextMaxLength = 0 }, "validation.text_max_length"},
		{"negative timeout", func(c *Config) { c.Application.Timeout = -time.Second }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Storage.Dir = "/data"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var configErr *ConfigError
			require.True(t, errors.As(err, &configErr), "expected ConfigError, got %v", err)
			assert.Equal(t, tt.wantField, configErr.Field)
			assert.NotEmpty(t, configErr.Message)
		})
	}
}

func TestNewConfigValidator(t *testing.T) {
	v, err := newConfigValidator()
	require.NoError(t, err)

	cfg := NewConfig()
	require.NoError(t, v.Struct(cfg))

	cfg.Storage.Slot = "a/b"
	assert.Error(t, v.Struct(cfg), "slotname tag must be enforced")
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "storage.slot", Message: "cannot be empty"}
	assert.Equal(t, "storage.slot: cannot be empty", err.Error())
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDurationWithFallback("3s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, 42, ParseIntWithFallback("42", 1))
	assert.Equal(t, 1, ParseIntWithFallback("many", 1))
	assert.True(t, ParseBoolWithFallback("yes", true))
	assert.False(t, ParseBoolWithFallback("0", true))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("9", 8, 0755))
}
