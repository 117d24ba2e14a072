package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filesort/filesort/internal/sorter"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := newTestStore(t)
	report := &sorter.Report{
		ScannedN:  10,
		MatchedN:  4,
		PerAction: map[string]int{"move": 3, "delete": 1},
		DryRun:    false,
	}
	started := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	ended := started.Add(2 * time.Second)

	id, err := store.Record("/src", started, ended, report)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	run, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "/src", run.Source)
	assert.Equal(t, 10, run.ScannedN)
	assert.Equal(t, 4, run.MatchedN)
	assert.False(t, run.DryRun)
}

func TestListOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	report := &sorter.Report{PerAction: map[string]int{}}

	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	_, err := store.Record("/first", t1, t1, report)
	require.NoError(t, err)
	_, err = store.Record("/second", t2, t2, report)
	require.NoError(t, err)

	runs, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "/second", runs[0].Source)
	assert.Equal(t, "/first", runs[1].Source)
}

func TestGetMissingRunErrors(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(999)
	assert.Error(t, err)
}
