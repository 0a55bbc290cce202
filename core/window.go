package core

import (
	"time"

	"github.com/huangsam/pulseboard/schema"
)

// ResolveWindow fills in missing selection bounds. An unset end anchors at
// the dataset's latest date (or now, when the dataset is empty); an unset
// start trails the end by a default window sized per granularity: 14 days,
// 5 weeks, 4 months, or 1 year.
func ResolveWindow(start, end time.Time, g schema.Granularity, latest time.Time) (time.Time, time.Time) {
	if end.IsZero() {
		if latest.IsZero() {
			latest = time.Now()
		}
		end = latest
	}
	end = dayOf(end)

	if start.IsZero() {
		switch g {
		case schema.WeekGranularity:
			start = end.AddDate(0, 0, -7*5+1)
		case schema.MonthGranularity:
			start = end.AddDate(0, -4, 0).AddDate(0, 0, 1)
		case schema.YearGranularity:
			start = end.AddDate(-1, 0, 0).AddDate(0, 0, 1)
		default:
			start = end.AddDate(0, 0, -13)
		}
	}
	return dayOf(start), end
}

// LatestMetricDate returns the maximum date in the metric rows, or the zero
// time when there are none.
func LatestMetricDate(rows []schema.MetricRecord) time.Time {
	var latest time.Time
	for _, r := range rows {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest
}
