package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-list/internal/api"
	"task-list/internal/config"
	"task-list/internal/storage"
	"task-list/internal/storage/memory"
	"task-list/internal/store"
)

var testNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

var testIDs = []string{
	"3f2a8c1d-1111-4000-8000-000000000001",
	"3f2b77e0-2222-4000-8000-000000000002",
	"9c1e0b44-3333-4000-8000-000000000003",
	"a0d4e5f6-4444-4000-8000-000000000004",
}

// failingSlot rejects every write.
type failingSlot struct {
	*memory.Slot
}

func (f *failingSlot) Write(ctx context.Context, data []byte) error {
	return fmt.Errorf("disk full")
}

func newTestTaskList(t *testing.T, slot storage.Slot) api.TaskList {
	t.Helper()

	next := 0
	created := testNow.Add(-time.Hour)
	s := store.New(slot,
		store.WithIDGenerator(func() string {
			id := fmt.Sprintf("generated-%d", next)
			if next < len(testIDs) {
				id = testIDs[next]
			}
			next++
			return id
		}),
		store.WithClock(func() time.Time {
			created = created.Add(time.Minute)
			return created
		}),
	)

	taskList := api.NewTaskList(s, api.WithClock(func() time.Time { return testNow }))
	require.NoError(t, taskList.Hydrate(context.Background()))
	return taskList
}

// setupTestApp returns an app over an in-memory slot whose output is captured.
func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	return setupTestAppWithSlot(t, memory.New("tasks"))
}

func setupTestAppWithSlot(t *testing.T, slot storage.Slot) (*App, *bytes.Buffer) {
	t.Helper()

	prev := timeNow
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = prev })

	cfg := config.NewConfig()
	cfg.Storage.Backend = "memory"

	app := NewAppWithConfig(newTestTaskList(t, slot), cfg)
	var out bytes.Buffer
	app.SetOutput(&out)
	return app, &out
}

// run executes a command line through the registry and returns what it printed.
func run(t *testing.T, app *App, out *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	out.Reset()
	err := app.Run(context.Background(), args)
	return out.String(), err
}

func mustRun(t *testing.T, app *App, out *bytes.Buffer, args ...string) string {
	t.Helper()
	output, err := run(t, app, out, args...)
	require.NoError(t, err)
	return output
}
