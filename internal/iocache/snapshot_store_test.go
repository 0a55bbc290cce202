package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_NoneBackend(t *testing.T) {
	store, err := NewSnapshotStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	snapshotID, err := store.BeginRun(time.Now(), "week", "ticket_rate", time.Now(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), snapshotID)

	// Other operations should not error
	assert.NoError(t, store.EndRun(1, 10, 2, 1, false))
	assert.NoError(t, store.RecordPoint(1, schema.SnapshotPointRecord{}))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	assert.NoError(t, store.Close())
}

func TestSnapshotStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewSnapshotStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	runTime := time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC)
	rangeStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	snapshotID, err := store.BeginRun(runTime, "week", "ticket_rate", rangeStart, rangeEnd)
	require.NoError(t, err)
	assert.Greater(t, snapshotID, int64(0))

	point := schema.SnapshotPointRecord{
		SnapshotID:  snapshotID,
		Label:       "Jun 15 - Jun 21",
		PeriodStart: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
		Value:       7.5,
		Samples:     2,
	}
	require.NoError(t, store.RecordPoint(snapshotID, point))

	require.NoError(t, store.EndRun(snapshotID, 42, 1, 3, false))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, snapshotID, run.SnapshotID)
	assert.Equal(t, "week", run.Granularity)
	assert.Equal(t, "ticket_rate", run.Metric)
	assert.True(t, run.RunTime.Equal(runTime))
	assert.True(t, run.RangeStart.Equal(rangeStart))
	assert.True(t, run.RangeEnd.Equal(rangeEnd))
	assert.Equal(t, int32(1), run.PointCount)
	assert.Equal(t, int32(3), run.ReleaseCount)
	assert.False(t, run.NoData)
	require.NotNil(t, run.DurationMs)
	assert.Equal(t, int32(42), *run.DurationMs)

	points, err := store.GetAllPoints()
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, snapshotID, points[0].SnapshotID)
	assert.Equal(t, "Jun 15 - Jun 21", points[0].Label)
	assert.True(t, points[0].PeriodStart.Equal(point.PeriodStart))
	assert.InDelta(t, 7.5, points[0].Value, 1e-9)
	assert.Equal(t, int32(2), points[0].Samples)
}

func TestSnapshotStore_UnfinishedRun(t *testing.T) {
	store, err := NewSnapshotStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// A run without EndRun has no duration and zero counts.
	snapshotID, err := store.BeginRun(time.Now(), "day", "msat", time.Now().AddDate(0, 0, -14), time.Now())
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, snapshotID, runs[0].SnapshotID)
	assert.Nil(t, runs[0].DurationMs)
	assert.Equal(t, int32(0), runs[0].PointCount)
}

func TestSnapshotStore_Status(t *testing.T) {
	store, err := NewSnapshotStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalRuns)

	first := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	id1, err := store.BeginRun(first, "day", "ticket_rate", first.AddDate(0, 0, -14), first)
	require.NoError(t, err)
	id2, err := store.BeginRun(second, "day", "ticket_rate", second.AddDate(0, 0, -14), second)
	require.NoError(t, err)
	require.NoError(t, store.RecordPoint(id2, schema.SnapshotPointRecord{
		SnapshotID:  id2,
		Label:       "Mon, 02 Jun",
		PeriodStart: second,
		PeriodEnd:   second,
		Value:       5,
		Samples:     1,
	}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, id2, status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(second))
	assert.True(t, status.OldestRunTime.Equal(first))
	assert.Equal(t, int64(2), status.TableSizes[snapshotRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[snapshotPointsTable])
	assert.Less(t, id1, id2)
}

func TestSnapshotStore_UnsupportedBackend(t *testing.T) {
	_, err := NewSnapshotStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
