// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/pulseboard/schema"
)

// CacheManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetDatasetStore() CacheStore
	GetSnapshotStore() SnapshotStore
}

// CacheStore defines the interface for dataset cache storage.
// Parsed CSV datasets are cached by content key so repeated invocations skip
// re-parsing unchanged files.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// SnapshotStore defines the interface for tracking dashboard recomputations.
// Every chart/series run records one snapshot with its selection and results.
type SnapshotStore interface {
	// BeginRun creates a new snapshot run and returns its unique ID.
	BeginRun(runTime time.Time, granularity, metric string, rangeStart, rangeEnd time.Time) (int64, error)

	// EndRun updates the snapshot run with completion data.
	EndRun(snapshotID int64, durationMs int32, pointCount, releaseCount int32, noData bool) error

	// RecordPoint stores one aggregated series point for a snapshot run.
	RecordPoint(snapshotID int64, point schema.SnapshotPointRecord) error

	// GetAllRuns returns every recorded snapshot run.
	GetAllRuns() ([]schema.SnapshotRunRecord, error)

	// GetAllPoints returns every recorded series point.
	GetAllPoints() ([]schema.SnapshotPointRecord, error)

	// GetStatus returns status information about the snapshot store.
	GetStatus() (schema.SnapshotStatus, error)

	// Close closes the underlying connection.
	Close() error
}
