package schema

import "time"

// CacheStatus holds status information about the dataset cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int64
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// SnapshotStatus holds status information about the snapshot store.
type SnapshotStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TableSizes    map[string]int64
}

// SnapshotRunRecord represents a row from the pulseboard_snapshot_runs table.
// One row is written per dashboard recomputation.
type SnapshotRunRecord struct {
	SnapshotID   int64
	RunTime      time.Time
	Granularity  string
	Metric       string
	RangeStart   time.Time
	RangeEnd     time.Time
	PointCount   int32
	ReleaseCount int32
	NoData       bool
	DurationMs   *int32
}

// SnapshotPointRecord represents a row from the pulseboard_snapshot_points table.
type SnapshotPointRecord struct {
	SnapshotID  int64
	Label       string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Value       float64
	Samples     int32
}
