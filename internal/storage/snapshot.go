package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TaskRecord is the persisted shape of one task.
// Field names are part of the on-disk format and must not change.
type TaskRecord struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Priority  string     `json:"priority"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// EncodeSnapshot serializes records as an indented JSON array.
// A nil slice is written as an empty array so the slot never holds "null".
func EncodeSnapshot(records []TaskRecord) ([]byte, error) {
	if records == nil {
		records = []TaskRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSnapshot parses slot content into records.
// Empty or whitespace-only content and a JSON null decode to an empty collection.
func DecodeSnapshot(data []byte) ([]TaskRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var records []TaskRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, nil
}
