// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints the aggregated metric series using the configured output format.
func (ow *OutWriter) WriteSeries(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(result, cfg, duration)
}

// WriteReleases prints the aligned release buckets using the configured output format.
func (ow *OutWriter) WriteReleases(result schema.ReleasesResult, cfg *contract.Config, duration time.Duration) error {
	return PrintReleasesResults(result, cfg, duration)
}

// WriteDashboard prints the full dashboard view using the configured output format.
func (ow *OutWriter) WriteDashboard(view schema.DashboardView, cfg *contract.Config, duration time.Duration) error {
	return PrintDashboardResults(view, cfg, duration)
}

// WriteRaw prints the raw filtered tables using the configured output format.
func (ow *OutWriter) WriteRaw(view schema.DashboardView, cfg *contract.Config, duration time.Duration) error {
	return PrintRawResults(view, cfg, duration)
}

// GetMaxTableTextWidth calculates the maximum width for free-text columns
// (release summaries, joined issue keys) based on terminal width.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (bucket label, count) with
	// table borders, separators, and padding
	baseWidth := 40

	// Calculate available space for free text
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable text width
		return 15
	}
	if available > 70 {
		// Maximum text width to prevent overly long cells
		return 70
	}
	return available
}
