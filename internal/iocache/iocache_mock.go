package iocache

import (
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetDatasetStore implements the CacheManager interface.
func (m *MockCacheManager) GetDatasetStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetSnapshotStore implements the CacheManager interface.
func (m *MockCacheManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	return args.Get(0).([]byte), args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// BeginRun implements the SnapshotStore interface.
func (m *MockSnapshotStore) BeginRun(runTime time.Time, granularity, metric string, rangeStart, rangeEnd time.Time) (int64, error) {
	args := m.Called(runTime, granularity, metric, rangeStart, rangeEnd)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the SnapshotStore interface.
func (m *MockSnapshotStore) EndRun(snapshotID int64, durationMs int32, pointCount, releaseCount int32, noData bool) error {
	args := m.Called(snapshotID, durationMs, pointCount, releaseCount, noData)
	return args.Error(0)
}

// RecordPoint implements the SnapshotStore interface.
func (m *MockSnapshotStore) RecordPoint(snapshotID int64, point schema.SnapshotPointRecord) error {
	args := m.Called(snapshotID, point)
	return args.Error(0)
}

// GetAllRuns implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetAllRuns() ([]schema.SnapshotRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.SnapshotRunRecord)
	return runs, args.Error(1)
}

// GetAllPoints implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetAllPoints() ([]schema.SnapshotPointRecord, error) {
	args := m.Called()
	points, _ := args.Get(0).([]schema.SnapshotPointRecord)
	return points, args.Error(1)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.SnapshotStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.SnapshotStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
