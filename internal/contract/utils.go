package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/pulseboard/schema"
)

// Metric level label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
	HealthyValue  = "Healthy"  // Healthy value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
	HealthyColor  = color.New(color.FgGreen)               // healthyColor represents a good reading.
)

// GetPlainLabel returns a plain text label grading a bucket value for the
// given metric. Ticket rate grades up (higher is worse); MSAT grades down
// (lower is worse). This is the core logic used for CSV, JSON, and table
// printing.
func GetPlainLabel(metric schema.Metric, value float64) string {
	if metric == schema.MSATMetric {
		switch {
		case value >= 90:
			return HealthyValue
		case value >= 75:
			return LowValue
		case value >= 60:
			return ModerateValue
		case value >= 40:
			return HighValue
		default:
			return CriticalValue
		}
	}
	switch {
	case value >= 15:
		return CriticalValue
	case value >= 10:
		return HighValue
	case value >= 5:
		return ModerateValue
	case value >= 2:
		return LowValue
	default:
		return HealthyValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(metric schema.Metric, value float64) string {
	text := GetPlainLabel(metric, value)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case LowValue:
		return LowColor.Sprint(text)
	default: // "Healthy"
		return HealthyColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for dataset cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pulseboard_cache.db"
	}
	return filepath.Join(homeDir, ".pulseboard_cache.db")
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pulseboard_snapshots.db"
	}
	return filepath.Join(homeDir, ".pulseboard_snapshots.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateText truncates a string to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
