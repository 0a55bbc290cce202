package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
)

// datasetTable is the name of the table for dataset caching.
const datasetTable = "dataset_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for dataset cache storage.
func GetDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	return contract.GetSnapshotDBFilePath()
}

// InitStores initializes the global cache manager with separate dataset and snapshot stores.
// cacheBackend and cacheConnStr can be empty to disable dataset caching.
// snapshotBackend and snapshotConnStr can be empty to disable snapshot tracking.
func InitStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, snapshotBackend schema.DatabaseBackend, snapshotConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var err error

		// Initialize dataset cache store only if backend is configured
		var datasetStore contract.CacheStore
		if cacheBackend != "" {
			datasetStore, err = NewCacheStore(datasetTable, cacheBackend, cacheConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize dataset caching: %w", err)
				return
			}
		}

		// Initialize snapshot store only if backend is configured
		var snapshotStore contract.SnapshotStore
		if snapshotBackend != "" {
			snapshotStore, err = NewSnapshotStore(snapshotBackend, snapshotConnStr)
			if err != nil {
				if datasetStore != nil {
					_ = datasetStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize snapshot store: %w", err)
				return
			}
		}

		// Assign to global manager
		Manager.dataset = datasetStore
		Manager.snapshot = snapshotStore
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.dataset != nil {
			_ = Manager.dataset.Close()
		}
		if Manager.snapshot != nil {
			_ = Manager.snapshot.Close()
		}
	})
}

// ClearCache clears the dataset cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, datasetTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, datasetTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearSnapshots clears the snapshot data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the snapshot tables.
// For NoneBackend, it does nothing.
func ClearSnapshots(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		// Clear snapshot tables
		tables := []string{snapshotPointsTable, snapshotRunsTable}
		for _, table := range tables {
			if err := clearSQLTable("mysql", connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.PostgreSQLBackend:
		// Clear snapshot tables
		tables := []string{snapshotPointsTable, snapshotRunsTable}
		for _, table := range tables {
			if err := clearSQLTable("pgx", connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported snapshot backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
