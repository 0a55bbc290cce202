package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/pulseboard/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2

	DefaultMetricsFile  = "metrics_data.csv"
	DefaultReleasesFile = "release_data.csv"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a dashboard selection.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir      string // Absolute path to the directory holding the CSV sources
	MetricsPath  string // Resolved path to the metrics CSV
	ReleasesPath string // Resolved path to the releases CSV

	Granularity schema.Granularity
	Metric      schema.Metric

	// StartTime/EndTime bound the inclusive selection window. Zero values
	// mean "not set"; the pipeline derives a trailing default window from
	// the dataset's latest date.
	StartTime time.Time
	EndTime   time.Time

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	Granularity       string `mapstructure:"granularity"`
	Metric            string `mapstructure:"metric"`
	Start             string `mapstructure:"start"`
	End               string `mapstructure:"end"`
	MetricsFile       string `mapstructure:"metrics-file"`
	ReleasesFile      string `mapstructure:"releases-file"`
	Limit             int    `mapstructure:"limit"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithWindow creates a copy of the Config and sets a new selection window.
func (c *Config) CloneWithWindow(start, end time.Time) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	return clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSelection(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := resolveDataPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and snapshot backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Snapshot Backend Validation ---
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if cfg.SnapshotBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.SnapshotBackend]; !ok {
			return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
		}
		cfg.SnapshotDBConnect = input.SnapshotDBConnect
		if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
			return err
		}

		// Cache and snapshot storage must not share a SQLite database file.
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.SnapshotBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			snapshotDBPath := cfg.SnapshotDBConnect
			if snapshotDBPath == "" {
				snapshotDBPath = GetSnapshotDBFilePath()
			}
			if cacheDBPath == snapshotDBPath {
				return fmt.Errorf("cache and snapshot storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-selection fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 3. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processSelection validates the granularity and metric choices.
func processSelection(cfg *Config, input *ConfigRawInput) error {
	cfg.Granularity = schema.Granularity(strings.ToLower(input.Granularity))
	if _, ok := schema.ValidGranularities[cfg.Granularity]; !ok {
		return fmt.Errorf("invalid granularity '%s'. must be day, week, month, year", input.Granularity)
	}

	cfg.Metric = schema.Metric(strings.ToLower(input.Metric))
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be ticket_rate, msat", input.Metric)
	}

	return nil
}

// processTimeRange handles date parsing and range validation. A range whose
// start falls after its end is rejected here, before any aggregation, rather
// than silently producing an empty result.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()

	if input.Start != "" {
		t, err := ParseDateInput(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		cfg.StartTime = t
	}

	if input.End != "" {
		t, err := ParseDateInput(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		cfg.EndTime = t
	}

	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.StartTime.Format(DateFormat), cfg.EndTime.Format(DateFormat))
	}

	return nil
}

// resolveDataPaths resolves the data directory and the two CSV source paths.
// Missing source files are a fatal configuration error; there is no partial load.
func resolveDataPaths(cfg *Config, input *ConfigRawInput) error {
	dataDir := input.DataDirStr
	if dataDir == "" {
		dataDir = "."
	}
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return err
	}
	cfg.DataDir = filepath.Clean(absDir)

	metricsFile := input.MetricsFile
	if metricsFile == "" {
		metricsFile = DefaultMetricsFile
	}
	releasesFile := input.ReleasesFile
	if releasesFile == "" {
		releasesFile = DefaultReleasesFile
	}

	cfg.MetricsPath = resolveSourcePath(cfg.DataDir, metricsFile)
	cfg.ReleasesPath = resolveSourcePath(cfg.DataDir, releasesFile)

	for _, p := range []string{cfg.MetricsPath, cfg.ReleasesPath} {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("data source %q is not readable: %w", p, err)
		}
		if info.IsDir() {
			return fmt.Errorf("data source %q is a directory, expected a CSV file", p)
		}
	}

	return nil
}

// resolveSourcePath joins a source file name onto the data directory unless
// the name is already an absolute path.
func resolveSourcePath(dataDir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dataDir, name)
}

// RevalidateWindow re-parses a selection window from string inputs on an
// already-validated Config. Used by the MCP handlers, which receive overrides
// after the CLI validation pass has run.
func RevalidateWindow(cfg *Config, startStr, endStr string) error {
	now := time.Now()

	if startStr != "" {
		t, err := ParseDateInput(startStr, now)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		cfg.StartTime = t
	}

	if endStr != "" {
		t, err := ParseDateInput(endStr, now)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		cfg.EndTime = t
	}

	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.StartTime.Format(DateFormat), cfg.EndTime.Format(DateFormat))
	}

	return nil
}

// RevalidateDataDir points an already-validated Config at a different data
// directory, keeping the configured source file names.
func RevalidateDataDir(cfg *Config, dataDir string) error {
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return err
	}
	cfg.DataDir = filepath.Clean(absDir)
	cfg.MetricsPath = filepath.Join(cfg.DataDir, filepath.Base(cfg.MetricsPath))
	cfg.ReleasesPath = filepath.Join(cfg.DataDir, filepath.Base(cfg.ReleasesPath))

	for _, p := range []string{cfg.MetricsPath, cfg.ReleasesPath} {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("data source %q is not readable: %w", p, err)
		}
		if info.IsDir() {
			return fmt.Errorf("data source %q is a directory, expected a CSV file", p)
		}
	}

	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
