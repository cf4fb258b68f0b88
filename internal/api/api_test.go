package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/storage/memory"
	"task-list/internal/store"
)

var now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func setupTestTaskList(t *testing.T, ids ...string) (TaskList, *memory.Slot) {
	t.Helper()
	slot := memory.New("tasks")

	next := 0
	created := now
	s := store.New(slot,
		store.WithIDGenerator(func() string {
			id := fmt.Sprintf("generated-%d", next)
			if next < len(ids) {
				id = ids[next]
			}
			next++
			return id
		}),
		store.WithClock(func() time.Time {
			created = created.Add(time.Minute)
			return created
		}),
	)

	list := NewTaskList(s, WithClock(func() time.Time { return now }))
	require.NoError(t, list.Hydrate(context.Background()))
	return list, slot
}

func viewTexts(list TaskList) []string {
	var out []string
	for _, task := range list.View() {
		out = append(out, task.Text)
	}
	return out
}

func TestTaskList_DefaultState(t *testing.T) {
	list, _ := setupTestTaskList(t)

	assert.Equal(t, domain.FilterAll, list.CategoryFilter())
	assert.Equal(t, "", list.SearchQuery())
	assert.Empty(t, list.View())
	assert.True(t, list.Stats().IsEmpty())
}

func TestTaskList_ViewReflectsMutations(t *testing.T) {
	list, slot := setupTestTaskList(t, "a", "b", "c")
	ctx := context.Background()

	_, err := list.Add(ctx, "Fix Bug in login", domain.PriorityHigh, nil)
	require.NoError(t, err)
	_, err = list.Add(ctx, "Plan sprint", domain.PriorityMedium, nil)
	require.NoError(t, err)
	_, err = list.Add(ctx, "Fix Bug in signup", domain.PriorityHigh, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Fix Bug in signup", "Fix Bug in login", "Plan sprint"}, viewTexts(list))

	_, err = list.Toggle(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fix Bug in login", "Plan sprint", "Fix Bug in signup"}, viewTexts(list))

	text := "Fix Bug in logout"
	_, err = list.Update(ctx, "a", domain.TaskUpdate{Text: &text})
	require.NoError(t, err)
	_, err = list.Remove(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, []string{"Fix Bug in logout", "Fix Bug in signup"}, viewTexts(list))
	assert.Equal(t, 6, slot.Writes())
}

func TestTaskList_FilterAndSearch(t *testing.T) {
	list, _ := setupTestTaskList(t)
	ctx := context.Background()

	_, err := list.Add(ctx, "Fix Bug in login", domain.PriorityHigh, nil)
	require.NoError(t, err)
	_, err = list.Add(ctx, "Fix Bug in login", domain.PriorityLow, nil)
	require.NoError(t, err)
	_, err = list.Add(ctx, "Write docs", domain.PriorityHigh, nil)
	require.NoError(t, err)

	require.NoError(t, list.SetCategoryFilter(domain.FilterHigh))
	list.SetSearchQuery("bug")

	result := list.View()
	require.Len(t, result, 1)
	assert.Equal(t, domain.PriorityHigh, result[0].Priority)
	assert.Equal(t, "bug", list.SearchQuery())

	stats := list.Stats()
	assert.Equal(t, 3, stats.TotalCount, "statistics ignore filter and search")
	assert.Equal(t, 2, stats.HighPriorityCount)
}

func TestTaskList_SetCategoryFilter(t *testing.T) {
	tests := []struct {
		name        string
		filter      domain.Filter
		expected    domain.Filter
		expectError bool
	}{
		{"completed", domain.FilterCompleted, domain.FilterCompleted, false},
		{"empty resets to all", "", domain.FilterAll, false},
		{"unknown filter is rejected", "overdue", domain.FilterActive, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, _ := setupTestTaskList(t)
			require.NoError(t, list.SetCategoryFilter(domain.FilterActive))

			err := list.SetCategoryFilter(tt.filter)
			if tt.expectError {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, list.CategoryFilter())
		})
	}
}

func TestTaskList_Stats(t *testing.T) {
	list, _ := setupTestTaskList(t, "a", "b", "c", "d")
	ctx := context.Background()

	soon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, text := range []string{"One", "Two", "Three"} {
		_, err := list.Add(ctx, text, domain.PriorityLow, nil)
		require.NoError(t, err)
	}
	_, err := list.Add(ctx, "Four", domain.PriorityHigh, &soon)
	require.NoError(t, err)
	_, err = list.Toggle(ctx, "a")
	require.NoError(t, err)

	stats := list.Stats()
	assert.Equal(t, 4, stats.TotalCount)
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Equal(t, 25, stats.CompletionPercentage)
	assert.Equal(t, 1, stats.HighPriorityCount)
	assert.Equal(t, 1, stats.DueSoonCount)
}

func TestTaskList_ResolveID(t *testing.T) {
	list, _ := setupTestTaskList(t, "abc123", "abd456", "xyz789")
	ctx := context.Background()
	for _, text := range []string{"One", "Two", "Three"} {
		_, err := list.Add(ctx, text, "", nil)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		ref       string
		expected  string
		errorType *errors.ErrorType
	}{
		{"exact id", "abc123", "abc123", nil},
		{"unique prefix", "x", "xyz789", nil},
		{"longer unique prefix", "abd", "abd456", nil},
		{"surrounding space", " xyz ", "xyz789", nil},
		{"no match passes through", "nope", "nope", nil},
		{"ambiguous prefix", "ab", "", ptrType(errors.ErrorTypeInvalidInput)},
		{"empty reference", "  ", "", ptrType(errors.ErrorTypeInvalidInput)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := list.ResolveID(tt.ref)
			if tt.errorType != nil {
				assert.True(t, errors.IsErrorType(err, *tt.errorType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestTaskList_HydrateLoadsPersistedTasks(t *testing.T) {
	slot := memory.NewWithContent("tasks", []byte(`[
		{"id":"a","text":"Persisted","completed":true,"priority":"low","createdAt":"2024-01-01T00:00:00Z"}
	]`))
	list := NewTaskList(store.New(slot))

	require.NoError(t, list.Hydrate(context.Background()))
	result := list.View()
	require.Len(t, result, 1)
	assert.Equal(t, "Persisted", result[0].Text)
	assert.True(t, result[0].Completed)
}

func ptrType(t errors.ErrorType) *errors.ErrorType {
	return &t
}
