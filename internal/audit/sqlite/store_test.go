package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modorder/internal/audit"
	"github.com/vk/modorder/internal/depgraph"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord() audit.RunRecord {
	return audit.RunRecord{
		RunID:       "run-123",
		StartedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		ModuleCount: 4,
		ErrorCount:  1,
		CycleCount:  0,
		Order: []depgraph.OrderEntry{
			{Name: "a", Position: 0, Reason: "no dependencies"},
			{Name: "b", Position: 1, Reason: "depends on a"},
		},
		Errors: []string{`module "d" depends on unknown module "z"`},
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open("  ")
	assert.Error(t, err)
}

func TestRecordRun_RoundTrip(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()
	rec := sampleRecord()

	require.NoError(t, store.RecordRun(ctx, rec))

	got, err := store.Run(ctx, rec.RunID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRecordRun_Idempotent(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()
	rec := sampleRecord()

	require.NoError(t, store.RecordRun(ctx, rec))
	require.NoError(t, store.RecordRun(ctx, rec))
	require.NoError(t, store.RecordRun(ctx, rec))

	count, err := store.RunCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordRun_RequiresRunID(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	rec := sampleRecord()
	rec.RunID = ""

	err := store.RecordRun(context.Background(), rec)
	require.Error(t, err)

	var writeErr *audit.PersistenceWriteError
	assert.ErrorAs(t, err, &writeErr)
}

func TestRecordRun_CancelledContext(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.RecordRun(ctx, sampleRecord())
	require.Error(t, err)

	var writeErr *audit.PersistenceWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audit.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(ctx, sampleRecord()))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Run(ctx, "run-123")
	require.NoError(t, err)
	assert.Equal(t, 4, got.ModuleCount)
}
