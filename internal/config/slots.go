package config

import (
	"context"
	"fmt"
	"os"

	"task-list/internal/logging"
	"task-list/internal/storage"
	"task-list/internal/storage/badger"
	"task-list/internal/storage/file"
	"task-list/internal/storage/memory"
	"task-list/internal/storage/sqlite"
)

// CreateSlot opens the storage slot selected by the configuration
func CreateSlot(ctx context.Context, config *Config) (storage.Slot, error) {
	perms := os.FileMode(config.Storage.DirPermissions)
	name := config.Storage.Slot

	logging.Debugf("using %s storage slot %q at %s\n", config.Storage.Backend, name, config.GetStoragePath())

	switch config.Storage.Backend {
	case "file":
		return file.New(config.Storage.Dir, name, perms), nil

	case "sqlite":
		if err := os.MkdirAll(config.Storage.Dir, perms); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		slot, err := sqlite.Open(ctx, config.GetStoragePath(), name)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return slot, nil

	case "badger":
		slot, err := badger.Open(badger.Config{
			Path:           config.GetStoragePath(),
			SyncWrites:     config.Storage.SyncWrites,
			DirPermissions: perms,
		}, name)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize badger store: %w", err)
		}
		return slot, nil

	case "memory":
		return memory.New(name), nil
	}

	return nil, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", config.Storage.Backend)}
}

// CreateTestSlot creates an in-memory slot for testing
func CreateTestSlot() storage.Slot {
	return memory.New(storage.DefaultSlotName)
}
