package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/pulseboard/internal/parquet"
)

// ExecuteSnapshotExport performs the actual export of snapshot data to Parquet files.
func ExecuteSnapshotExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the snapshot store
	store := Manager.GetSnapshotStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get snapshot status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no snapshot data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total snapshot runs: %d\n", status.TotalRuns)
	fmt.Printf("Total series points: %d\n", status.TableSizes[snapshotPointsTable])

	// Retrieve all snapshot runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot runs: %w", err)
	}

	// Retrieve all series points
	points, err := store.GetAllPoints()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot points: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertSnapshotRunRecords(runs)
	parquetPoints := parquet.ConvertSnapshotPointRecords(points)

	// Write snapshot runs to Parquet
	runsFile := outputFile + ".snapshot_runs.parquet"
	if err := parquet.WriteSnapshotRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write snapshot runs: %w", err)
	}
	fmt.Printf("Exported %d snapshot runs to: %s\n", len(parquetRuns), runsFile)

	// Write series points to Parquet
	pointsFile := outputFile + ".snapshot_points.parquet"
	if err := parquet.WriteSnapshotPointsParquet(parquetPoints, pointsFile); err != nil {
		return fmt.Errorf("failed to write snapshot points: %w", err)
	}
	fmt.Printf("Exported %d series points to: %s\n", len(parquetPoints), pointsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
