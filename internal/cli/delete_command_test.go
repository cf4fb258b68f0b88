package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/storage/memory"
)

func TestDeleteCommand_Execute(t *testing.T) {
	t.Run("deletes by prefix", func(t *testing.T) {
		app, out := setupTestApp(t)
		mustRun(t, app, out, "add", "Buy milk")
		mustRun(t, app, out, "add", "Walk dog")

		assert.Equal(t, "Deleted task: Walk dog\n", mustRun(t, app, out, "delete", "3f2b"))

		tasks := app.api.View()
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy milk", tasks[0].Text)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		app, out := setupTestApp(t)
		mustRun(t, app, out, "add", "Buy milk")

		mustRun(t, app, out, "rm", testIDs[0])
		output := mustRun(t, app, out, "rm", testIDs[0])
		assert.Equal(t, "No task matches \""+testIDs[0]+"\"\n", output)
		assert.Empty(t, app.api.View())
	})

	t.Run("usage", func(t *testing.T) {
		app, out := setupTestApp(t)

		_, err := run(t, app, out, "delete")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: tl delete")
	})

	t.Run("storage failure keeps the task", func(t *testing.T) {
		slot := memory.NewWithContent("tasks", []byte(`[{"id":"`+testIDs[0]+`","text":"Keep me","completed":false,"priority":"low","createdAt":"2024-01-01T08:00:00Z"}]`))
		app, out := setupTestAppWithSlot(t, &failingSlot{Slot: slot})
		require.Len(t, app.api.View(), 1)

		_, err := run(t, app, out, "delete", "3f2a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete task: Your tasks could not be saved")
		assert.Len(t, app.api.View(), 1)
	})
}
