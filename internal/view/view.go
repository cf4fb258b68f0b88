// Package view derives the ordered, filtered task list and summary statistics
// from a task collection. Every function is pure: inputs are never modified.
package view

import (
	"sort"
	"strings"

	"task-list/internal/domain"
)

// Query selects which tasks appear in a view.
type Query struct {
	Filter domain.Filter
	Search string
}

// Matches reports whether task passes both the category filter and the text search.
func (q Query) Matches(task domain.Task) bool {
	return matchesFilter(task, q.Filter) && matchesSearch(task, q.Search)
}

func matchesFilter(task domain.Task, filter domain.Filter) bool {
	if p, ok := filter.Priority(); ok {
		return task.Priority == p
	}
	switch filter {
	case domain.FilterActive:
		return !task.Completed
	case domain.FilterCompleted:
		return task.Completed
	}
	return true
}

func matchesSearch(task domain.Task, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(task.Text), strings.ToLower(search))
}

// Apply returns copies of the tasks matching q, in display order.
func Apply(tasks []domain.Task, q Query) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	Sort(out)
	return out
}

// Sort orders tasks in place for display. Equal tasks keep their relative order.
func Sort(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Compare(tasks[i], tasks[j]) < 0
	})
}

// Compare orders a before b when the result is negative:
// incomplete first, then by priority. Two tasks that both have a due date are
// ordered by calendar date alone, so a shared date is a tie. Otherwise the
// newest created comes first.
func Compare(a, b domain.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}

	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra - rb
	}

	if a.DueDate != nil && b.DueDate != nil {
		return domain.DateOnly(*a.DueDate).Compare(domain.DateOnly(*b.DueDate))
	}

	switch {
	case a.CreatedAt.After(b.CreatedAt):
		return -1
	case a.CreatedAt.Before(b.CreatedAt):
		return 1
	}
	return 0
}
