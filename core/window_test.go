package core

import (
	"testing"
	"time"

	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestResolveWindowExplicitBounds(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC)

	gotStart, gotEnd := ResolveWindow(start, end, schema.DayGranularity, time.Time{})

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), gotEnd)
}

func TestResolveWindowDefaultsFromLatest(t *testing.T) {
	latest := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	gotStart, gotEnd := ResolveWindow(time.Time{}, time.Time{}, schema.DayGranularity, latest)

	// Daily default trails the latest dataset date by two weeks inclusive.
	assert.Equal(t, latest, gotEnd)
	assert.Equal(t, time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC), gotStart)
}

func TestResolveWindowDefaultsPerGranularity(t *testing.T) {
	latest := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	weekStart, _ := ResolveWindow(time.Time{}, time.Time{}, schema.WeekGranularity, latest)
	assert.Equal(t, time.Date(2025, 5, 27, 0, 0, 0, 0, time.UTC), weekStart)

	monthStart, _ := ResolveWindow(time.Time{}, time.Time{}, schema.MonthGranularity, latest)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), monthStart)

	yearStart, _ := ResolveWindow(time.Time{}, time.Time{}, schema.YearGranularity, latest)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), yearStart)
}

func TestResolveWindowEmptyDatasetFallsBackToNow(t *testing.T) {
	before := time.Now().UTC()
	_, gotEnd := ResolveWindow(time.Time{}, time.Time{}, schema.DayGranularity, time.Time{})
	after := time.Now().UTC()

	assert.False(t, gotEnd.Before(dayOf(before)))
	assert.False(t, gotEnd.After(dayOf(after)))
}

func TestLatestMetricDate(t *testing.T) {
	rows := []schema.MetricRecord{
		{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)},
	}

	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), LatestMetricDate(rows))
	assert.True(t, LatestMetricDate(nil).IsZero())
}
