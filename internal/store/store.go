// Package store owns the authoritative task collection and keeps it in sync
// with a storage slot.
//
// Every mutation serializes the full collection and writes it to the slot
// before returning. The in-memory collection is replaced only after that write
// succeeds, so a failed write leaves both memory and slot at the previous
// state. Mutations that change nothing (blank text, unknown id) do not write.
//
// A Store is not safe for concurrent use.
package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/logging"
	"task-list/internal/storage"
	"task-list/internal/validation"
)

// Store holds the task collection in insertion order.
type Store struct {
	slot      storage.Slot
	tasks     []domain.Task
	mapper    *domain.TaskMapper
	validator *validation.TaskValidator
	now       func() time.Time
	newID     func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the generator used for new task ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithTextMaxLength sets the maximum task text length in runes.
func WithTextMaxLength(n int) Option {
	return func(s *Store) {
		s.validator = validation.NewTaskValidatorWithLimits(n)
	}
}

// New creates an empty store writing to slot. Call Hydrate to load existing tasks.
func New(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:      slot,
		mapper:    domain.NewTaskMapper(),
		validator: validation.NewTaskValidator(),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate replaces the collection with the slot content.
//
// An absent or empty slot yields an empty collection. Content that is not a
// valid task list is discarded as a whole and also yields an empty
// collection. Only a failure to read the slot is returned.
func (s *Store) Hydrate(ctx context.Context) error {
	data, err := s.slot.Read(ctx)
	if err != nil {
		return errors.NewStorageError("read", s.slot.Name(), err)
	}

	records, err := storage.DecodeSnapshot(data)
	if err != nil {
		s.discard(err)
		return nil
	}
	if err := s.validator.ValidateRecords(records); err != nil {
		s.discard(err)
		return nil
	}

	s.tasks = s.mapper.FromRecordSlice(records)
	logging.Debugf("hydrated %d tasks from slot %s\n", len(s.tasks), s.slot.Name())
	return nil
}

func (s *Store) discard(cause error) {
	s.tasks = nil
	logging.Debugf("discarding snapshot: %v\n", errors.NewCorruptDataError(s.slot.Name(), cause))
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (domain.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return domain.Task{}, false
}

// SlotName returns the name of the slot the store writes to.
func (s *Store) SlotName() string {
	return s.slot.Name()
}

// Slots lists the slots next to this one in the same backend. A backend that
// cannot list reports only this slot.
func (s *Store) Slots(ctx context.Context) ([]storage.SlotInfo, error) {
	lister, ok := s.slot.(storage.Lister)
	if !ok {
		return []storage.SlotInfo{{Name: s.slot.Name()}}, nil
	}
	infos, err := lister.List(ctx)
	if err != nil {
		return nil, errors.NewStorageError("list", s.slot.Name(), err)
	}
	return infos, nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Add creates a task and persists the collection.
//
// Blank text is ignored: Add returns nil and no error. Other text is stored
// with whitespace folded to single spaces and cut to the text limit. An empty
// priority means medium; an unknown one is an invalid-input error.
func (s *Store) Add(ctx context.Context, text string, priority domain.Priority, dueDate *time.Time) (*domain.Task, error) {
	text = s.validator.SanitizeText(text)
	if text == "" {
		return nil, nil
	}
	if priority != "" && !priority.IsValid() {
		return nil, errors.NewInvalidInputError("priority", priority, "must be one of high, medium, low")
	}

	task := domain.NewTask(s.newID(), text, priority, dueDate, s.now())

	next := make([]domain.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, task)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	created := task.Clone()
	return &created, nil
}

// Toggle flips the completed flag of the task with the given id.
// It returns the updated task, or nil when no task has that id.
func (s *Store) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}

	updated := s.tasks[i].Clone()
	updated.Completed = !updated.Completed

	return s.replace(ctx, i, updated)
}

// Update merges the given fields into the task with the given id.
//
// If update.Text is set and blank, the whole update is ignored. Unknown ids
// and updates that change nothing are ignored too. Ignored updates return
// nil and no error.
func (s *Store) Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	if update.Text != nil {
		text := s.validator.SanitizeText(*update.Text)
		if text == "" {
			return nil, nil
		}
		update.Text = &text
	}
	if update.Priority != nil && !update.Priority.IsValid() {
		return nil, errors.NewInvalidInputError("priority", *update.Priority, "must be one of high, medium, low")
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}

	updated := update.ApplyTo(s.tasks[i])
	if updated.Equal(s.tasks[i]) {
		return nil, nil
	}

	return s.replace(ctx, i, updated)
}

// Remove deletes the task with the given id.
// It returns the removed task, or nil when no task has that id.
func (s *Store) Remove(ctx context.Context, id string) (*domain.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}

	removed := s.tasks[i].Clone()

	next := make([]domain.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *Store) replace(ctx context.Context, i int, task domain.Task) (*domain.Task, error) {
	next := make([]domain.Task, len(s.tasks))
	copy(next, s.tasks)
	next[i] = task

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	result := task.Clone()
	return &result, nil
}

// commit writes next to the slot and adopts it as the collection once the write succeeded.
func (s *Store) commit(ctx context.Context, next []domain.Task) error {
	data, err := storage.EncodeSnapshot(s.mapper.ToRecordSlice(next))
	if err != nil {
		return errors.NewStorageError("encode", s.slot.Name(), err)
	}

	if err := s.slot.Write(ctx, data); err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.NewTimeoutError("write "+s.slot.Name(), ctx.Err())
		}
		return errors.NewStorageError("write", s.slot.Name(), err)
	}

	logging.Debugf("persisted %d tasks (%d bytes) to slot %s\n", len(next), len(data), s.slot.Name())
	s.tasks = next
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
