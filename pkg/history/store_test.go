package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmccomb/pastrami/pkg/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore(t *testing.T) {
	store := openTestStore(t)

	t.Run("should round-trip an execution", func(t *testing.T) {
		result := session.ExecutionResult{
			RequestID: "req-1",
			Output:    []string{"one", "two"},
			Value:     "42",
			HasValue:  true,
			Outcome:   session.OutcomeSuccess,
		}
		require.NoError(t, store.Record("40 + 2", result, session.ModeOneShot))

		entries, err := store.Recent(10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "req-1", entries[0].RequestID)
		assert.Equal(t, "oneshot", entries[0].Mode)
		assert.Equal(t, "40 + 2", entries[0].Script)
		assert.Equal(t, "success", entries[0].Outcome)
		assert.Equal(t, []string{"one", "two"}, entries[0].Output)
		assert.Equal(t, "42", entries[0].Value)
		assert.WithinDuration(t, time.Now(), entries[0].CreatedAt, time.Minute)
	})

	t.Run("should return newest entries first and honor the limit", func(t *testing.T) {
		for _, id := range []string{"req-2", "req-3", "req-4"} {
			require.NoError(t, store.Record("1", session.ExecutionResult{
				RequestID: id,
				Outcome:   session.OutcomeSuccess,
			}, session.ModeREPL))
		}

		entries, err := store.Recent(2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "req-4", entries[0].RequestID)
		assert.Equal(t, "req-3", entries[1].RequestID)
	})

	t.Run("should record failed executions", func(t *testing.T) {
		require.NoError(t, store.Record("let x = ;", session.ExecutionResult{
			RequestID:    "req-5",
			Outcome:      session.OutcomeParseError,
			ErrorMessage: "unexpected token",
		}, session.ModeOneShot))

		entries, err := store.Recent(1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "parse_error", entries[0].Outcome)
		assert.Equal(t, "unexpected token", entries[0].Error)
		assert.Empty(t, entries[0].Output)
	})
}

func TestStore_NilSafe(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Record("1", session.ExecutionResult{}, session.ModeREPL))
	entries, err := store.Recent(5)
	assert.NoError(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, store.Close())
}
