package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the calendar-date representation used by the data sources.
const DateFormat = "2006-01-02"

// DateTimeFormat is the default timestamp representation.
var DateTimeFormat = time.RFC3339

// Matches "N [units] ago", e.g. "2 weeks ago", "14 days ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 weeks ago" into a time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	default:
		// Should be caught by the regex, but good for safety
		return time.Time{}, fmt.Errorf("unsupported time unit: %s", unit)
	}
}

// ParseDateInput parses a user-supplied range bound. It accepts a plain
// calendar date ("2024-06-01"), a full RFC3339 timestamp, or a relative
// form ("14 days ago").
func ParseDateInput(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateTimeFormat, s); err == nil {
		return t, nil
	}
	if t, err := ParseRelativeTime(s, now); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date format for %q. Expected YYYY-MM-DD, ISO8601, or 'N [units] ago'", s)
}
