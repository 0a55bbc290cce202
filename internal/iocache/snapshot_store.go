package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
)

// Table names for snapshot tracking.
const (
	snapshotRunsTable   = "pulseboard_snapshot_runs"
	snapshotPointsTable = "pulseboard_snapshot_points"
)

// SnapshotStoreImpl implements the SnapshotStore interface.
type SnapshotStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.SnapshotStore = &SnapshotStoreImpl{} // Compile-time check

// NewSnapshotStore creates a new SnapshotStore with the specified backend.
func NewSnapshotStore(backend schema.DatabaseBackend, connStr string) (contract.SnapshotStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetSnapshotDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &SnapshotStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schemas
	if err := createSnapshotTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create snapshot tables: %w", err)
	}

	return &SnapshotStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createSnapshotTables creates the snapshot tracking tables.
func createSnapshotTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{snapshotRunsTable, getCreateSnapshotRunsQuery(backend)},
		{snapshotPointsTable, getCreateSnapshotPointsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateSnapshotRunsQuery returns the CREATE TABLE query for pulseboard_snapshot_runs.
func getCreateSnapshotRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(snapshotRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_time DATETIME(6) NOT NULL,
				granularity VARCHAR(20) NOT NULL,
				metric VARCHAR(50) NOT NULL,
				range_start DATETIME(6) NOT NULL,
				range_end DATETIME(6) NOT NULL,
				point_count INT,
				release_count INT,
				no_data BOOLEAN,
				duration_ms INT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGSERIAL PRIMARY KEY,
				run_time TIMESTAMPTZ NOT NULL,
				granularity TEXT NOT NULL,
				metric TEXT NOT NULL,
				range_start TIMESTAMPTZ NOT NULL,
				range_end TIMESTAMPTZ NOT NULL,
				point_count INT,
				release_count INT,
				no_data BOOLEAN,
				duration_ms INT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_time TEXT NOT NULL,
				granularity TEXT NOT NULL,
				metric TEXT NOT NULL,
				range_start TEXT NOT NULL,
				range_end TEXT NOT NULL,
				point_count INTEGER,
				release_count INTEGER,
				no_data INTEGER,
				duration_ms INTEGER
			);
		`, quotedTableName)
	}
}

// getCreateSnapshotPointsQuery returns the CREATE TABLE query for pulseboard_snapshot_points.
func getCreateSnapshotPointsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(snapshotPointsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT NOT NULL,
				label VARCHAR(100) NOT NULL,
				period_start DATETIME(6) NOT NULL,
				period_end DATETIME(6) NOT NULL,
				metric_value DOUBLE NOT NULL,
				sample_count INT NOT NULL,
				PRIMARY KEY (snapshot_id, period_start)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT NOT NULL,
				label TEXT NOT NULL,
				period_start TIMESTAMPTZ NOT NULL,
				period_end TIMESTAMPTZ NOT NULL,
				metric_value DOUBLE PRECISION NOT NULL,
				sample_count INT NOT NULL,
				PRIMARY KEY (snapshot_id, period_start)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id INTEGER NOT NULL,
				label TEXT NOT NULL,
				period_start TEXT NOT NULL,
				period_end TEXT NOT NULL,
				metric_value REAL NOT NULL,
				sample_count INTEGER NOT NULL,
				PRIMARY KEY (snapshot_id, period_start)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new snapshot run and returns its unique ID.
func (ss *SnapshotStoreImpl) BeginRun(runTime time.Time, granularity, metric string, rangeStart, rangeEnd time.Time) (int64, error) {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, ss.backend)

	var snapshotID int64
	var err error
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_time, granularity, metric, range_start, range_end) VALUES ($1, $2, $3, $4, $5) RETURNING snapshot_id`, quotedTableName)
		err = ss.db.QueryRow(query, runTime, granularity, metric, rangeStart, rangeEnd).Scan(&snapshotID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_time, granularity, metric, range_start, range_end) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = ss.db.Exec(query, formatTime(runTime, ss.backend), granularity, metric, formatTime(rangeStart, ss.backend), formatTime(rangeEnd, ss.backend))
		if err != nil {
			return 0, err
		}
		snapshotID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot run: %w", err)
	}

	return snapshotID, nil
}

// EndRun updates the snapshot run with completion data.
func (ss *SnapshotStoreImpl) EndRun(snapshotID int64, durationMs int32, pointCount, releaseCount int32, noData bool) error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, ss.backend)

	var updateQuery string
	var args []any

	switch ss.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET point_count = $1, release_count = $2, no_data = $3, duration_ms = $4 WHERE snapshot_id = $5`, quotedTableName)
		args = []any{pointCount, releaseCount, noData, durationMs, snapshotID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET point_count = ?, release_count = ?, no_data = ?, duration_ms = ? WHERE snapshot_id = ?`, quotedTableName)
		args = []any{pointCount, releaseCount, noData, durationMs, snapshotID}
	}

	if _, err := ss.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update snapshot run: %w", err)
	}

	return nil
}

// RecordPoint stores one aggregated series point for a snapshot run.
func (ss *SnapshotStoreImpl) RecordPoint(snapshotID int64, point schema.SnapshotPointRecord) error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(snapshotPointsTable, ss.backend)

	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (snapshot_id, label, period_start, period_end, metric_value, sample_count)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (snapshot_id, label, period_start, period_end, metric_value, sample_count)
			VALUES (?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	args := []any{
		snapshotID, point.Label,
		formatTime(point.PeriodStart, ss.backend), formatTime(point.PeriodEnd, ss.backend),
		point.Value, point.Samples,
	}

	if _, err := ss.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert snapshot point: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (ss *SnapshotStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// GetStatus returns status information about the snapshot store.
func (ss *SnapshotStoreImpl) GetStatus() (schema.SnapshotStatus, error) {
	status := schema.SnapshotStatus{
		Backend:    string(ss.backend),
		Connected:  ss.db != nil,
		TableSizes: make(map[string]int64),
	}

	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(snapshotRunsTable, ss.backend))
	row := ss.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT snapshot_id, run_time FROM %s ORDER BY snapshot_id DESC LIMIT 1", quoteTableName(snapshotRunsTable, ss.backend))
		row = ss.db.QueryRow(lastRunQuery)

		switch ss.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT run_time FROM %s ORDER BY snapshot_id ASC LIMIT 1", quoteTableName(snapshotRunsTable, ss.backend))
		row = ss.db.QueryRow(oldestRunQuery)

		switch ss.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}
	}

	// Get table sizes
	tables := []string{snapshotRunsTable, snapshotPointsTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, ss.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = ss.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all snapshot runs from the store.
func (ss *SnapshotStoreImpl) GetAllRuns() ([]schema.SnapshotRunRecord, error) {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, ss.backend)
	query := fmt.Sprintf("SELECT snapshot_id, run_time, granularity, metric, range_start, range_end, point_count, release_count, no_data, duration_ms FROM %s ORDER BY snapshot_id", quotedTableName)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SnapshotRunRecord

	for rows.Next() {
		var record schema.SnapshotRunRecord
		var pointCount, releaseCount sql.NullInt32
		var noData sql.NullBool

		switch ss.backend {
		case schema.SQLiteBackend:
			var runTimeStr, rangeStartStr, rangeEndStr string
			if err := rows.Scan(&record.SnapshotID, &runTimeStr, &record.Granularity, &record.Metric,
				&rangeStartStr, &rangeEndStr, &pointCount, &releaseCount, &noData, &record.DurationMs); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
			}
			if record.RunTime, err = time.Parse(time.RFC3339Nano, runTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse run_time: %w", err)
			}
			if record.RangeStart, err = time.Parse(time.RFC3339Nano, rangeStartStr); err != nil {
				return nil, fmt.Errorf("failed to parse range_start: %w", err)
			}
			if record.RangeEnd, err = time.Parse(time.RFC3339Nano, rangeEndStr); err != nil {
				return nil, fmt.Errorf("failed to parse range_end: %w", err)
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.SnapshotID, &record.RunTime, &record.Granularity, &record.Metric,
				&record.RangeStart, &record.RangeEnd, &pointCount, &releaseCount, &noData, &record.DurationMs); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
			}
		}

		record.PointCount = pointCount.Int32
		record.ReleaseCount = releaseCount.Int32
		record.NoData = noData.Bool

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot runs: %w", err)
	}

	return results, nil
}

// GetAllPoints retrieves all recorded series points from the store.
func (ss *SnapshotStoreImpl) GetAllPoints() ([]schema.SnapshotPointRecord, error) {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(snapshotPointsTable, ss.backend)
	query := fmt.Sprintf("SELECT snapshot_id, label, period_start, period_end, metric_value, sample_count FROM %s ORDER BY snapshot_id, period_start", quotedTableName)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot points: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SnapshotPointRecord

	for rows.Next() {
		var record schema.SnapshotPointRecord

		switch ss.backend {
		case schema.SQLiteBackend:
			var periodStartStr, periodEndStr string
			if err := rows.Scan(&record.SnapshotID, &record.Label, &periodStartStr, &periodEndStr,
				&record.Value, &record.Samples); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot point: %w", err)
			}
			if record.PeriodStart, err = time.Parse(time.RFC3339Nano, periodStartStr); err != nil {
				return nil, fmt.Errorf("failed to parse period_start: %w", err)
			}
			if record.PeriodEnd, err = time.Parse(time.RFC3339Nano, periodEndStr); err != nil {
				return nil, fmt.Errorf("failed to parse period_end: %w", err)
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.SnapshotID, &record.Label, &record.PeriodStart, &record.PeriodEnd,
				&record.Value, &record.Samples); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot point: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot points: %w", err)
	}

	return results, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
