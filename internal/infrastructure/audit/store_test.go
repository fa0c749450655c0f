package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_AppendAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(Entry{
			ApplicationID: int64(i + 1),
			Actor:         "admin",
			Action:        ActionFraudCheck,
			At:            base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, int64(3), entries[0].ApplicationID)
	assert.Equal(t, int64(1), entries[2].ApplicationID)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.ID, "ids are assigned on append")
	}
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(Entry{ApplicationID: int64(i), Action: ActionDisposition}))
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_Size(t *testing.T) {
	store := openTestStore(t)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)

	require.NoError(t, store.Append(Entry{ApplicationID: 1, Action: ActionFraudCheck}))

	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestStore_Cleanup(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Append(Entry{ApplicationID: 1, Action: ActionFraudCheck, At: old}))
	require.NoError(t, store.Append(Entry{ApplicationID: 2, Action: ActionFraudCheck}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ApplicationID)
}
