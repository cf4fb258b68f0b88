package main

import (
	"context"
	"io"
	"os"

	"task-list/internal/api"
	"task-list/internal/config"
	"task-list/internal/errors"
	"task-list/internal/logging"
	"task-list/internal/storage"
	"task-list/internal/storage/file"
	"task-list/internal/storage/memory"
	"task-list/internal/store"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// developmentDir keeps development data next to the working copy
const developmentDir = "tl-data"

// SlotFactory creates storage slots based on environment
type SlotFactory struct {
	env Environment
}

// NewSlotFactory creates a new slot factory for the given environment
func NewSlotFactory(env Environment) *SlotFactory {
	return &SlotFactory{env: env}
}

// Open creates the slot for cfg and wraps it in a task list
func (sf *SlotFactory) Open(ctx context.Context, cfg *config.Config) (api.TaskList, io.Closer, error) {
	slot, err := sf.CreateSlot(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	s := store.New(slot, store.WithTextMaxLength(cfg.Validation.TextMaxLength))
	return api.NewTaskList(s), slot, nil
}

// CreateSlot creates a slot instance based on the current environment
func (sf *SlotFactory) CreateSlot(ctx context.Context, cfg *config.Config) (storage.Slot, error) {
	logging.Debugf("environment: %s\n", sf.env)

	switch sf.env {
	case Development:
		return sf.createDevelopmentSlot(cfg)
	case Testing:
		return sf.createTestingSlot(cfg)
	default:
		return sf.createProductionSlot(ctx, cfg)
	}
}

// createDevelopmentSlot uses a JSON file in ./tl-data
func (sf *SlotFactory) createDevelopmentSlot(cfg *config.Config) (storage.Slot, error) {
	return file.New(developmentDir, cfg.Storage.Slot, os.FileMode(cfg.Storage.DirPermissions)), nil
}

// createTestingSlot uses a process-local slot that is never persisted
func (sf *SlotFactory) createTestingSlot(cfg *config.Config) (storage.Slot, error) {
	return memory.New(cfg.Storage.Slot), nil
}

// createProductionSlot uses the configured backend
func (sf *SlotFactory) createProductionSlot(ctx context.Context, cfg *config.Config) (storage.Slot, error) {
	slot, err := config.CreateSlot(ctx, cfg)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeStorage, "failed to initialize production storage")
	}
	return slot, nil
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch Environment(os.Getenv("TL_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}
