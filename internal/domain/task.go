package domain

import (
	"strings"
	"time"
)

// DueSoonWindow is how far ahead of now a due date still counts as due soon.
const DueSoonWindow = 24 * time.Hour

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = PriorityMedium

// Priorities lists every priority from most to least important.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities with high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Label returns the capitalised priority name for display.
func (p Priority) Label() string {
	s := string(p)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsePriority converts user input into a Priority, ignoring case and surrounding space.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Task represents a single entry in the task list.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID        string
	Text      string
	Completed bool
	Priority  Priority
	DueDate   *time.Time
	CreatedAt time.Time
}

// NewTask creates an incomplete task. The caller supplies the id and creation time.
func NewTask(id, text string, priority Priority, dueDate *time.Time, createdAt time.Time) Task {
	if priority == "" {
		priority = DefaultPriority
	}
	return Task{
		ID:        id,
		Text:      text,
		Priority:  priority,
		DueDate:   NormalizeDueDate(dueDate),
		CreatedAt: createdAt,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.ID != "" &&
		strings.TrimSpace(t.Text) != "" &&
		t.Priority.IsValid() &&
		!t.CreatedAt.IsZero()
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// IsOverdue reports whether an incomplete task's due date falls on a day before now's.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return DateOnly(*t.DueDate).Before(DateOnly(now))
}

// IsDueSoon reports whether an incomplete task is due no later than DueSoonWindow from now.
// Overdue tasks are due soon as well.
func (t Task) IsDueSoon(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return !t.DueDate.After(now.Add(DueSoonWindow))
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// DateOnly drops the time of day, keeping the calendar date of t in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeDueDate returns a fresh pointer to the date-only form of due, or nil.
func NormalizeDueDate(due *time.Time) *time.Time {
	if due == nil {
		return nil
	}
	d := DateOnly(*due)
	return &d
}

// Equal reports whether t and other hold the same values, comparing due dates by value.
func (t Task) Equal(other Task) bool {
	if t.ID != other.ID || t.Text != other.Text || t.Completed != other.Completed ||
		t.Priority != other.Priority || !t.CreatedAt.Equal(other.CreatedAt) {
		return false
	}
	if t.DueDate == nil || other.DueDate == nil {
		return t.DueDate == nil && other.DueDate == nil
	}
	return t.DueDate.Equal(*other.DueDate)
}
