package core

import (
	"testing"
	"time"

	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestDayBucket(t *testing.T) {
	b := ForGranularity(schema.DayGranularity)

	p := b.BucketOf(time.Date(2025, 6, 15, 17, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, p.Start, p.End)
	assert.Equal(t, schema.DayGranularity, p.Granularity)
	assert.Equal(t, "Sun, 15 Jun", b.LabelOf(p))
}

func TestWeekBucketStartsSunday(t *testing.T) {
	b := ForGranularity(schema.WeekGranularity)

	// 2025-06-18 is a Wednesday; its week starts Sunday 2025-06-15.
	p := b.BucketOf(time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC), p.End)
	assert.Equal(t, "Jun 15 - Jun 21", b.LabelOf(p))
}

func TestWeekBucketSundayStartsOwnWeek(t *testing.T) {
	b := ForGranularity(schema.WeekGranularity)

	// A Sunday belongs to the week it opens, not the previous one.
	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	p := b.BucketOf(sunday)
	assert.Equal(t, sunday, p.Start)

	// The Saturday before lands in the prior week.
	saturday := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
	prev := b.BucketOf(saturday)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), prev.Start)
	assert.NotEqual(t, p, prev)
}

func TestWeekBucketSpansMonthBoundary(t *testing.T) {
	b := ForGranularity(schema.WeekGranularity)

	p := b.BucketOf(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC), p.End)
	assert.Equal(t, "Jun 29 - Jul 05", b.LabelOf(p))
}

func TestMonthBucket(t *testing.T) {
	b := ForGranularity(schema.MonthGranularity)

	p := b.BucketOf(time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), p.End)
	assert.Equal(t, "Feb 25", b.LabelOf(p))
}

func TestMonthLabelUniqueAcrossYears(t *testing.T) {
	b := ForGranularity(schema.MonthGranularity)

	p1 := b.BucketOf(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	p2 := b.BucketOf(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.NotEqual(t, b.LabelOf(p1), b.LabelOf(p2))
}

func TestYearBucket(t *testing.T) {
	b := ForGranularity(schema.YearGranularity)

	p := b.BucketOf(time.Date(2025, 8, 30, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), p.End)
	assert.Equal(t, "2025", b.LabelOf(p))
}

func TestBucketIdentityIsStable(t *testing.T) {
	b := ForGranularity(schema.WeekGranularity)

	// Any two timestamps inside one week produce the exact same Period,
	// so the struct works as a map key.
	p1 := b.BucketOf(time.Date(2025, 6, 16, 3, 0, 0, 0, time.UTC))
	p2 := b.BucketOf(time.Date(2025, 6, 20, 22, 0, 0, 0, time.UTC))
	assert.Equal(t, p1, p2)

	m := map[schema.Period]int{p1: 1}
	m[p2]++
	assert.Equal(t, 2, m[p1])
}

func TestForGranularityUnknownFallsBackToDay(t *testing.T) {
	b := ForGranularity(schema.Granularity("fortnight"))
	p := b.BucketOf(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, schema.DayGranularity, p.Granularity)
}
