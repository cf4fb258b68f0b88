package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/storage"
)

func openInMemory(t *testing.T, name string) *Slot {
	slot, err := Open(InMemoryConfig(), name)
	require.NoError(t, err)
	t.Cleanup(func() { slot.Close() })
	return slot
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{}, "tasks")
	assert.Error(t, err)
}

func TestSlot_ReadMissingKey(t *testing.T) {
	slot := openInMemory(t, "")
	assert.Equal(t, "tasks", slot.Name())

	data, err := slot.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSlot_WriteAndRead(t *testing.T) {
	slot := openInMemory(t, "tasks")
	ctx := context.Background()

	require.NoError(t, slot.Write(ctx, []byte(`[{"id":"a"}]`)))
	require.NoError(t, slot.Write(ctx, []byte(`[]`)))

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSlot_List(t *testing.T) {
	slot := openInMemory(t, "work")
	ctx := context.Background()

	infos, err := slot.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	require.NoError(t, slot.Write(ctx, []byte(`[]`)))

	infos, err = slot.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []storage.SlotInfo{{Name: "work", Size: 2}}, infos)
}

func TestSlot_PersistsAcrossReopen(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	ctx := context.Background()

	slot, err := Open(cfg, "tasks")
	require.NoError(t, err)
	require.NoError(t, slot.Write(ctx, []byte(`[{"id":"a"}]`)))
	require.NoError(t, slot.Close())

	reopened, err := Open(cfg, "tasks")
	require.NoError(t, err)
	defer reopened.Close()

	data, err := reopened.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))
}

func TestSlot_CancelledContext(t *testing.T) {
	slot := openInMemory(t, "tasks")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, slot.Write(ctx, []byte(`[]`)))
	_, err := slot.Read(ctx)
	assert.Error(t, err)
}
