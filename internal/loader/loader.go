// Package loader ingests the two CSV data sources into immutable in-memory tables.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
)

// cacheVersion invalidates cached datasets when the parsed representation changes.
const cacheVersion = 1

// Required header columns for each source.
var (
	metricColumns  = []string{"date_", "active_sessions", "fd_tickets", "feedback_given", "happy"}
	releaseColumns = []string{"issue_key", "summary", "issue_type", "status", "jira_link", "created", "updated"}
)

// Datasets holds the two loaded source tables. They are loaded once per
// process and never mutated afterwards; every recomputation reads from the
// same tables.
type Datasets struct {
	Metrics  []schema.MetricRecord
	Releases []schema.ReleaseEvent
}

// Load reads both CSV sources, parsing through the dataset cache when one is
// configured. Any malformed row or missing column is a fatal load error; no
// partial dataset is returned.
func Load(cfg *contract.Config, mgr contract.CacheManager) (*Datasets, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetDatasetStore()
	}

	ds := &Datasets{}

	if err := loadCached(store, "metrics", cfg.MetricsPath, &ds.Metrics, func() ([]schema.MetricRecord, error) {
		return parseMetricsFile(cfg.MetricsPath)
	}); err != nil {
		return nil, err
	}

	if err := loadCached(store, "releases", cfg.ReleasesPath, &ds.Releases, func() ([]schema.ReleaseEvent, error) {
		return parseReleasesFile(cfg.ReleasesPath)
	}); err != nil {
		return nil, err
	}

	return ds, nil
}

// loadCached fetches parsed rows from the cache store, falling back to the
// parse function and writing the result back on a miss. Cache failures are
// soft: a broken cache never blocks a load.
func loadCached[T any](store contract.CacheStore, kind, path string, out *[]T, parse func() ([]T, error)) error {
	key, keyErr := cacheKey(kind, path)

	if store != nil && keyErr == nil {
		if value, version, _, err := store.Get(key); err == nil && version == cacheVersion {
			var rows []T
			if err := json.Unmarshal(value, &rows); err == nil {
				*out = rows
				return nil
			}
		}
	}

	rows, err := parse()
	if err != nil {
		return err
	}
	*out = rows

	if store != nil && keyErr == nil {
		if value, err := json.Marshal(rows); err == nil {
			if err := store.Set(key, value, cacheVersion, time.Now().Unix()); err != nil {
				contract.LogWarn("could not write dataset cache", err)
			}
		}
	}
	return nil
}

// cacheKey builds a content key from the file path, modification time and
// size, so an edited source never serves stale rows.
func cacheKey(kind, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%d:%d", kind, path, info.ModTime().Unix(), info.Size()), nil
}

// parseMetricsFile reads and validates the daily metrics CSV.
func parseMetricsFile(path string) ([]schema.MetricRecord, error) {
	header, rows, err := readCSV(path, metricColumns)
	if err != nil {
		return nil, err
	}

	records := make([]schema.MetricRecord, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		date, err := parseDate(row[header["date_"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, rowNum, err)
		}

		counts := make([]int, 4)
		for j, col := range []string{"active_sessions", "fd_tickets", "feedback_given", "happy"} {
			n, err := parseCount(col, row[header[col]])
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", path, rowNum, err)
			}
			counts[j] = n
		}

		records = append(records, schema.MetricRecord{
			Date:           date,
			ActiveSessions: counts[0],
			FDTickets:      counts[1],
			FeedbackGiven:  counts[2],
			Happy:          counts[3],
		})
	}
	return records, nil
}

// parseReleasesFile reads and validates the release events CSV.
func parseReleasesFile(path string) ([]schema.ReleaseEvent, error) {
	header, rows, err := readCSV(path, releaseColumns)
	if err != nil {
		return nil, err
	}

	events := make([]schema.ReleaseEvent, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2

		created, err := parseDate(row[header["created"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, rowNum, err)
		}
		updated, err := parseDate(row[header["updated"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, rowNum, err)
		}

		events = append(events, schema.ReleaseEvent{
			IssueKey:  row[header["issue_key"]],
			Summary:   row[header["summary"]],
			IssueType: row[header["issue_type"]],
			Status:    row[header["status"]],
			JiraLink:  row[header["jira_link"]],
			Created:   created,
			Updated:   updated,
		})
	}
	return events, nil
}

// readCSV opens a CSV file, verifies the required columns are present, and
// returns the header index map plus all data rows.
func readCSV(path string, required []string) (map[string]int, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s is empty, expected a header row", path)
	}

	header := make(map[string]int, len(all[0]))
	for i, col := range all[0] {
		header[col] = i
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, nil, fmt.Errorf("%s is missing required column %q", path, col)
		}
	}
	return header, all[1:], nil
}

// parseDate accepts a plain calendar date or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(contract.DateFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseCount parses a non-negative integer column value.
func parseCount(col, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", col, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s cannot be negative (received %d)", col, n)
	}
	return n, nil
}
