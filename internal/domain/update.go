package domain

import "time"

// TaskUpdate carries the fields of a partial task update.
// Nil fields are left unchanged. ClearDueDate removes the due date and wins over DueDate.
type TaskUpdate struct {
	Text         *string
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Text == nil && u.Priority == nil && u.DueDate == nil && !u.ClearDueDate
}

// ApplyTo returns a copy of task with the update merged in.
// Identity fields (ID, CreatedAt, Completed) are never touched.
func (u TaskUpdate) ApplyTo(task Task) Task {
	updated := task.Clone()
	if u.Text != nil {
		updated.Text = *u.Text
	}
	if u.Priority != nil {
		updated.Priority = *u.Priority
	}
	switch {
	case u.ClearDueDate:
		updated.DueDate = nil
	case u.DueDate != nil:
		updated.DueDate = NormalizeDueDate(u.DueDate)
	}
	return updated
}
