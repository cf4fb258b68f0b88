// Package api is the boundary handed to presentation code: the derived task
// view and statistics, the four task mutations and the display state that
// shapes the view.
package api

import (
	"context"
	"strings"
	"time"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/storage"
	"task-list/internal/store"
	"task-list/internal/view"
)

// TaskList defines the operations presentation code may perform.
type TaskList interface {
	// ========== Lifecycle ==========

	// Hydrate loads the persisted collection. Call once before anything else.
	Hydrate(ctx context.Context) error

	// ========== Derived Data ==========

	// View returns the filtered, searched and sorted task list
	View() []domain.Task

	// Stats summarises the whole collection, ignoring filter and search
	Stats() view.Statistics

	// ========== Mutations ==========

	Add(ctx context.Context, text string, priority domain.Priority, dueDate *time.Time) (*domain.Task, error)
	Toggle(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	Remove(ctx context.Context, id string) (*domain.Task, error)

	// ========== Display State ==========

	SetCategoryFilter(filter domain.Filter) error
	SetSearchQuery(query string)
	CategoryFilter() domain.Filter
	SearchQuery() string

	// ResolveID expands a unique id prefix to the full id
	ResolveID(ref string) (string, error)

	// ========== Storage ==========

	// SlotName is the slot this list is persisted in
	SlotName() string

	// Slots lists the slots stored alongside it
	Slots(ctx context.Context) ([]storage.SlotInfo, error)
}

// taskListImpl implements the TaskList interface
type taskListImpl struct {
	store *store.Store
	query view.Query
	now   func() time.Time
}

// Option configures a TaskList.
type Option func(*taskListImpl)

// WithClock replaces the clock used for due-soon and overdue statistics.
func WithClock(now func() time.Time) Option {
	return func(t *taskListImpl) {
		t.now = now
	}
}

// NewTaskList creates a TaskList over s with the filter set to all and no search.
func NewTaskList(s *store.Store, opts ...Option) TaskList {
	t := &taskListImpl{
		store: s,
		query: view.Query{Filter: domain.FilterAll},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *taskListImpl) SlotName() string {
	return t.store.SlotName()
}

func (t *taskListImpl) Slots(ctx context.Context) ([]storage.SlotInfo, error) {
	return t.store.Slots(ctx)
}

func (t *taskListImpl) Hydrate(ctx context.Context) error {
	return t.store.Hydrate(ctx)
}

// ========== Derived Data ==========

func (t *taskListImpl) View() []domain.Task {
	return view.Apply(t.store.Tasks(), t.query)
}

func (t *taskListImpl) Stats() view.Statistics {
	return view.Stats(t.store.Tasks(), t.now())
}

// ========== Mutations ==========

func (t *taskListImpl) Add(ctx context.Context, text string, priority domain.Priority, dueDate *time.Time) (*domain.Task, error) {
	return t.store.Add(ctx, text, priority, dueDate)
}

func (t *taskListImpl) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	return t.store.Toggle(ctx, id)
}

func (t *taskListImpl) Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	return t.store.Update(ctx, id, update)
}

func (t *taskListImpl) Remove(ctx context.Context, id string) (*domain.Task, error) {
	return t.store.Remove(ctx, id)
}

// ========== Display State ==========

func (t *taskListImpl) SetCategoryFilter(filter domain.Filter) error {
	if filter == "" {
		filter = domain.FilterAll
	}
	if !filter.IsValid() {
		return errors.NewInvalidInputError("filter", filter, "must be one of all, active, completed, high, medium, low")
	}
	t.query.Filter = filter
	return nil
}

func (t *taskListImpl) SetSearchQuery(query string) {
	t.query.Search = query
}

func (t *taskListImpl) CategoryFilter() domain.Filter {
	return t.query.Filter
}

func (t *taskListImpl) SearchQuery() string {
	return t.query.Search
}

// ResolveID returns the id of the only task whose id starts with ref.
// An exact match always wins. When nothing matches, ref is returned unchanged
// so the mutation it is passed to becomes a no-op.
func (t *taskListImpl) ResolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.NewInvalidInputError("id", ref, "id is required")
	}
	if _, ok := t.store.Get(ref); ok {
		return ref, nil
	}

	var matches []string
	for _, task := range t.store.Tasks() {
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task.ID)
		}
	}

	switch len(matches) {
	case 0:
		return ref, nil
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewInvalidInputError("id", ref, "matches more than one task").
			WithContext("matches", matches)
	}
}
