package cmd

import (
	"fmt"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/internal/iocache"
	"github.com/huangsam/pulseboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need snapshot access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backendStr := viper.GetString("snapshot-backend")
	connStr := viper.GetString("snapshot-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no dataset cache for snapshot commands)
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func snapshotMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backendStr := viper.GetString("snapshot-backend")
	connStr := viper.GetString("snapshot-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetSnapshotDBFilePath()
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotMigrateSetupWrapper wraps snapshotMigrateSetup to provide PreRunE for migrate command.
func snapshotMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotMigrateSetup()
}

// snapshotCmd focused on snapshot data management.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage dashboard run history and exports",
	Long: `Manage historical snapshot data recorded for dashboard recomputations.

When enabled, Pulseboard tracks every chart and series run, storing:
- Run metadata (timestamp, metric, granularity, range, duration)
- The aggregated series points produced by the run

This enables longitudinal comparison of the dashboard itself and data
export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show snapshot tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  pulseboard snapshot status

  # Export for analysis in pandas/DuckDB
  pulseboard snapshot export --output-file snapshot-data.parquet`,
}

// snapshotClearCmd clears the snapshot data.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded dashboard run history",
	Long: `Delete all stored snapshot runs and their series points.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  pulseboard snapshot export --output-file backup.parquet
  pulseboard snapshot clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearSnapshots(cfg.SnapshotBackend, contract.GetSnapshotDBFilePath(), cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshot data", err)
		}
		fmt.Println("Snapshot data cleared successfully.")
	},
}

// snapshotStatusCmd shows snapshot status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot tracking statistics and connection details",
	Long: `Show detailed information about dashboard run tracking.

Displays:
- Backend type and connection status
- Total number of snapshot runs stored
- Last and oldest run timestamps
- Database table sizes

Examples:
  # Check snapshot tracking status
  pulseboard snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		iocache.PrintSnapshotStatus(status)
	},
}

// snapshotExportCmd exports snapshot data to Parquet files.
var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored snapshot data to Parquet format for use with analytics tools.

Exports two datasets:
- Snapshot runs - metadata about each dashboard recomputation
- Series points - the aggregated values each run produced

Requires: --output-file parameter

Examples:
  # Export all data
  pulseboard snapshot export --output-file pulseboard-data.parquet

  # Use with DuckDB for analysis
  pulseboard snapshot export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.snapshot_runs.parquet') LIMIT 10"`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteSnapshotExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export snapshot data", err)
		}
	},
}

// snapshotMigrateCmd runs database migrations for the snapshot store.
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the snapshot tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  pulseboard snapshot migrate

  # Migrate to specific version
  pulseboard snapshot migrate --target-version 1

  # Rollback to initial state
  pulseboard snapshot migrate --target-version 0`,
	PreRunE: snapshotMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateSnapshots(cfg.SnapshotBackend, cfg.SnapshotDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
