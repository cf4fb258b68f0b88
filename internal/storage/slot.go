// Package storage defines the single named slot the task list is persisted in
// and the textual snapshot format written to it.
//
// A slot holds exactly one value: the serialized task collection. Every write
// replaces the previous value in full; there are no partial updates.
package storage

import (
	"context"
	"time"
)

// DefaultSlotName is the slot used when none is configured.
const DefaultSlotName = "tasks"

// Slot is a durable location holding one serialized task collection.
type Slot interface {
	// Name identifies the slot in logs and errors.
	Name() string

	// Read returns the stored bytes, or nil and no error when the slot has never been written.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the slot content. It returns only after the data is durable.
	Write(ctx context.Context, data []byte) error

	// Close releases any resources held by the slot.
	Close() error
}

// SlotInfo describes a slot found in a backend. UpdatedAt is zero when the
// backend does not record it.
type SlotInfo struct {
	Name      string
	Size      int64
	UpdatedAt time.Time
}

// Lister is implemented by slots whose backend can hold several slots side by side.
type Lister interface {
	// List returns every written slot in the backend, ordered by name.
	List(ctx context.Context) ([]SlotInfo, error)
}
