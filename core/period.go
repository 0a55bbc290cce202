package core

import (
	"time"

	"github.com/huangsam/pulseboard/schema"
)

// Bucketer maps timestamps into calendar-aligned periods and renders their
// display labels, for one granularity. The aggregator and the release aligner
// must share the same Bucketer so both series land on identical buckets.
type Bucketer interface {
	// BucketOf returns the canonical period containing t.
	BucketOf(t time.Time) schema.Period

	// LabelOf returns the display label for a period. It is a pure function
	// of (Start, End, Granularity); labels are never used as bucket identity.
	LabelOf(p schema.Period) string
}

// ForGranularity returns the Bucketer for a granularity.
// Unknown values fall back to daily bucketing.
func ForGranularity(g schema.Granularity) Bucketer {
	switch g {
	case schema.WeekGranularity:
		return weekBucketer{}
	case schema.MonthGranularity:
		return monthBucketer{}
	case schema.YearGranularity:
		return yearBucketer{}
	default:
		return dayBucketer{}
	}
}

// dayOf truncates a timestamp to day resolution in UTC.
// All bucket math runs on these canonical day starts.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type dayBucketer struct{}

func (dayBucketer) BucketOf(t time.Time) schema.Period {
	d := dayOf(t)
	return schema.Period{Start: d, End: d, Granularity: schema.DayGranularity}
}

func (dayBucketer) LabelOf(p schema.Period) string {
	return p.Start.Format("Mon, 02 Jan")
}

// weekBucketer anchors weeks Sunday through Saturday, so the bucket boundary
// falls on Saturday night. A timestamp on a Sunday starts its own week.
type weekBucketer struct{}

func (weekBucketer) BucketOf(t time.Time) schema.Period {
	d := dayOf(t)
	start := d.AddDate(0, 0, -int(d.Weekday())) // time.Sunday == 0
	return schema.Period{
		Start:       start,
		End:         start.AddDate(0, 0, 6),
		Granularity: schema.WeekGranularity,
	}
}

func (weekBucketer) LabelOf(p schema.Period) string {
	return p.Start.Format("Jan 02") + " - " + p.End.Format("Jan 02")
}

type monthBucketer struct{}

func (monthBucketer) BucketOf(t time.Time) schema.Period {
	y, m, _ := t.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return schema.Period{
		Start:       start,
		End:         start.AddDate(0, 1, -1),
		Granularity: schema.MonthGranularity,
	}
}

func (monthBucketer) LabelOf(p schema.Period) string {
	// Month labels embed the 2-digit year so labels stay unique across years.
	return p.Start.Format("Jan 06")
}

type yearBucketer struct{}

func (yearBucketer) BucketOf(t time.Time) schema.Period {
	y := t.UTC().Year()
	return schema.Period{
		Start:       time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
		Granularity: schema.YearGranularity,
	}
}

func (yearBucketer) LabelOf(p schema.Period) string {
	return p.Start.Format("2006")
}
