package domain

import (
	"time"

	"task-list/internal/storage"
)

// TaskMapper handles conversion between domain tasks and persisted task records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to a storage record.
func (m *TaskMapper) ToRecord(task Task) storage.TaskRecord {
	return storage.TaskRecord{
		ID:        task.ID,
		Text:      task.Text,
		Completed: task.Completed,
		Priority:  string(task.Priority),
		DueDate:   copyTime(task.DueDate),
		CreatedAt: task.CreatedAt,
	}
}

// FromRecord converts a storage record to a domain Task.
// The record is not validated; see validation.TaskValidator.ValidateRecords.
func (m *TaskMapper) FromRecord(record storage.TaskRecord) Task {
	return Task{
		ID:        record.ID,
		Text:      record.Text,
		Completed: record.Completed,
		Priority:  Priority(record.Priority),
		DueDate:   copyTime(record.DueDate),
		CreatedAt: record.CreatedAt,
	}
}

// ToRecordSlice converts a slice of domain Tasks to storage records.
func (m *TaskMapper) ToRecordSlice(tasks []Task) []storage.TaskRecord {
	records := make([]storage.TaskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecordSlice converts a slice of storage records to domain Tasks.
func (m *TaskMapper) FromRecordSlice(records []storage.TaskRecord) []Task {
	tasks := make([]Task, len(records))
	for i, record := range records {
		tasks[i] = m.FromRecord(record)
	}
	return tasks
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
