// Package iocache is for caching parsed datasets and tracking snapshot runs.
package iocache

import (
	"sync"

	"github.com/huangsam/pulseboard/internal/contract"
)

// CacheStoreManager manages the dataset and snapshot store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	dataset      contract.CacheStore
	snapshot     contract.SnapshotStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetDatasetStore returns the dataset CacheStore.
func (mgr *CacheStoreManager) GetDatasetStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.dataset
}

// GetSnapshotStore returns the SnapshotStore.
func (mgr *CacheStoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshot
}
