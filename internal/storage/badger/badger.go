// Package badger stores task list slots in an embedded BadgerDB directory.
//
// Each slot is a single key, "slot/<name>", whose value is the full snapshot.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"task-list/internal/logging"
	"task-list/internal/storage"
)

// KeyPrefix namespaces slot keys inside the database.
const KeyPrefix = "slot/"

// Config holds configuration for a Badger-backed slot.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every write before it returns.
	SyncWrites bool

	// DirPermissions is used when creating Path.
	DirPermissions os.FileMode
}

// DefaultConfig returns a durable configuration rooted at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		DirPermissions: 0750,
	}
}

// InMemoryConfig returns configuration for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// debugLogger adapts the debug logging helpers to Badger's Logger interface.
type debugLogger struct{}

func (debugLogger) Errorf(format string, args ...interface{}) {
	logging.Debugf("badger error: "+format, args...)
}

func (debugLogger) Warningf(format string, args ...interface{}) {
	logging.Debugf("badger warning: "+format, args...)
}

func (debugLogger) Infof(format string, args ...interface{}) {}

func (debugLogger) Debugf(format string, args ...interface{}) {}

// Slot is a storage slot held under one Badger key.
type Slot struct {
	db   *badger.DB
	name string
}

// Open opens the Badger database described by cfg and returns the slot called name.
func Open(cfg Config, name string) (*Slot, error) {
	if name == "" {
		name = storage.DefaultSlotName
	}
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		perms := cfg.DirPermissions
		if perms == 0 {
			perms = 0750
		}
		if err := os.MkdirAll(cfg.Path, perms); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(debugLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return &Slot{db: db, name: name}, nil
}

// Name returns the slot name.
func (s *Slot) Name() string {
	return s.name
}

func (s *Slot) key() []byte {
	return []byte(KeyPrefix + s.name)
}

// Read returns the stored value, or nil when the key does not exist.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key())
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return data, nil
}

// Write replaces the stored value in a single transaction.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value := append([]byte{}, data...)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(), value)
	})
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}
	return nil
}

// List returns every slot stored in the database, in key order.
// Badger keeps no modification time, so UpdatedAt is zero.
func (s *Slot) List(ctx context.Context) ([]storage.SlotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var infos []storage.SlotInfo
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(KeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			infos = append(infos, storage.SlotInfo{
				Name: string(item.Key()[len(KeyPrefix):]),
				Size: item.ValueSize(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return infos, nil
}

// Close closes the database.
func (s *Slot) Close() error {
	return s.db.Close()
}
