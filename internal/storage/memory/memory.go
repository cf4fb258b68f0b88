// Package memory provides a process-local storage slot.
package memory

import (
	"context"

	"task-list/internal/storage"
)

// Slot keeps the slot content in memory. Content is lost when the process exits.
type Slot struct {
	name   string
	data   []byte
	writes int
}

// New creates an empty in-memory slot.
func New(name string) *Slot {
	if name == "" {
		name = storage.DefaultSlotName
	}
	return &Slot{name: name}
}

// NewWithContent creates an in-memory slot pre-populated with data.
func NewWithContent(name string, data []byte) *Slot {
	s := New(name)
	s.data = append([]byte(nil), data...)
	return s
}

// Name returns the slot name.
func (s *Slot) Name() string {
	return s.name
}

// Read returns a copy of the current content.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

// Write replaces the content with a copy of data.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = append([]byte{}, data...)
	s.writes++
	return nil
}

// Writes returns how many times the slot has been written.
func (s *Slot) Writes() int {
	return s.writes
}

// Close is a no-op.
func (s *Slot) Close() error {
	return nil
}
