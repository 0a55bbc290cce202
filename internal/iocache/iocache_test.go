package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestInitStores(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "cache.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(schema.SQLiteBackend, dbPath, "", "")
		assert.NoError(t, err, "Failed to initialize persistence")

		assert.NotNil(t, Manager, "Manager should not be nil")
		assert.NotNil(t, Manager.GetDatasetStore(), "Dataset store should not be nil")
		assert.Nil(t, Manager.GetSnapshotStore(), "Snapshot store should be disabled")

		CloseStores()

		// Verify database file was created
		_, err = os.Stat(dbPath)
		assert.False(t, os.IsNotExist(err), "Database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "cache.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		err1 := InitStores(schema.SQLiteBackend, dbPath, "", "")
		err2 := InitStores(schema.SQLiteBackend, dbPath, "", "")
		err3 := InitStores(schema.SQLiteBackend, dbPath, "", "")

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")
		assert.NoError(t, err3, "Third init should not fail")

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(schema.NoneBackend, "", schema.NoneBackend, "")
		assert.NoError(t, err, "Failed to initialize persistence with none backend")

		assert.NotNil(t, Manager.GetDatasetStore(), "Dataset store should not be nil")
		assert.NotNil(t, Manager.GetSnapshotStore(), "Snapshot store should not be nil")

		CloseStores()
	})

	t.Run("both stores", func(t *testing.T) {
		dir := t.TempDir()
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(
			schema.SQLiteBackend, filepath.Join(dir, "cache.db"),
			schema.SQLiteBackend, filepath.Join(dir, "snapshots.db"))
		assert.NoError(t, err)

		assert.NotNil(t, Manager.GetDatasetStore())
		assert.NotNil(t, Manager.GetSnapshotStore())

		CloseStores()
	})
}

func TestClearCacheSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	assert.NoError(t, os.WriteFile(dbPath, []byte("stub"), 0o644))

	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "Database file should be removed")

	// Clearing an already-missing file is not an error.
	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))

	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
}

func TestClearCacheNoneBackend(t *testing.T) {
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.NoError(t, ClearSnapshots(schema.NoneBackend, "", ""))
}

func TestClearSnapshotsSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	assert.NoError(t, os.WriteFile(dbPath, []byte("stub"), 0o644))

	assert.NoError(t, ClearSnapshots(schema.SQLiteBackend, dbPath, ""))
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestClearUnsupportedBackend(t *testing.T) {
	assert.Error(t, ClearCache(schema.DatabaseBackend("oracle"), "", ""))
	assert.Error(t, ClearSnapshots(schema.DatabaseBackend("oracle"), "", ""))
}
