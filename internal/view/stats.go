package view

import (
	"math"
	"time"

	"task-list/internal/domain"
)

// Statistics summarises a task collection.
type Statistics struct {
	TotalCount           int `json:"totalCount"`
	CompletedCount       int `json:"completedCount"`
	ActiveCount          int `json:"activeCount"`
	CompletionPercentage int `json:"completionPercentage"`
	HighPriorityCount    int `json:"highPriorityCount"`
	DueSoonCount         int `json:"dueSoonCount"`
	OverdueCount         int `json:"overdueCount"`
}

// IsEmpty reports whether there are no tasks to summarise.
func (s Statistics) IsEmpty() bool {
	return s.TotalCount == 0
}

// Stats computes statistics over tasks as of now.
// HighPriorityCount includes completed tasks; DueSoonCount and OverdueCount do not.
func Stats(tasks []domain.Task, now time.Time) Statistics {
	var s Statistics
	s.TotalCount = len(tasks)

	for _, t := range tasks {
		if t.Completed {
			s.CompletedCount++
		}
		if t.Priority == domain.PriorityHigh {
			s.HighPriorityCount++
		}
		if t.IsDueSoon(now) {
			s.DueSoonCount++
		}
		if t.IsOverdue(now) {
			s.OverdueCount++
		}
	}

	s.ActiveCount = s.TotalCount - s.CompletedCount
	s.CompletionPercentage = Percentage(s.CompletedCount, s.TotalCount)
	return s
}

// Percentage returns part/total as a whole percentage, rounding halves up. It is 0 when total is 0.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}
