package contract

import (
	"math"
	"testing"

	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabelTicketRate(t *testing.T) {
	// Ticket rate grades up: the more tickets per session, the worse.
	assert.Equal(t, HealthyValue, GetPlainLabel(schema.TicketRateMetric, 0.5))
	assert.Equal(t, LowValue, GetPlainLabel(schema.TicketRateMetric, 2))
	assert.Equal(t, ModerateValue, GetPlainLabel(schema.TicketRateMetric, 7.5))
	assert.Equal(t, HighValue, GetPlainLabel(schema.TicketRateMetric, 10))
	assert.Equal(t, CriticalValue, GetPlainLabel(schema.TicketRateMetric, 22))
}

func TestGetPlainLabelMSAT(t *testing.T) {
	// MSAT grades down: low satisfaction is the bad end.
	assert.Equal(t, HealthyValue, GetPlainLabel(schema.MSATMetric, 95))
	assert.Equal(t, LowValue, GetPlainLabel(schema.MSATMetric, 85))
	assert.Equal(t, ModerateValue, GetPlainLabel(schema.MSATMetric, 60))
	assert.Equal(t, HighValue, GetPlainLabel(schema.MSATMetric, 45))
	assert.Equal(t, CriticalValue, GetPlainLabel(schema.MSATMetric, 10))
}

func TestGetPlainLabelNaN(t *testing.T) {
	// NaN fails every >= comparison, so both metrics land on their
	// worst-case default rather than panicking.
	assert.Equal(t, HealthyValue, GetPlainLabel(schema.TicketRateMetric, math.NaN()))
	assert.Equal(t, CriticalValue, GetPlainLabel(schema.MSATMetric, math.NaN()))
}

func TestGetColorLabelContainsPlainText(t *testing.T) {
	label := GetColorLabel(schema.TicketRateMetric, 22)
	assert.Contains(t, label, CriticalValue)
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", "Yes"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "FALSE", "0", "No"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 20))
	assert.Equal(t, "REL-1, REL...", TruncateText("REL-1, REL-2, REL-3", 13))
	// Widths too small for an ellipsis leave the string alone.
	assert.Equal(t, "abcd", TruncateText("abcd", 3))
}

func TestGetDBFilePaths(t *testing.T) {
	cachePath := GetCacheDBFilePath()
	snapshotPath := GetSnapshotDBFilePath()

	assert.Contains(t, cachePath, ".pulseboard_cache.db")
	assert.Contains(t, snapshotPath, ".pulseboard_snapshots.db")
	assert.NotEqual(t, cachePath, snapshotPath)
}
