// Package schema has configs, models and shared types for all parts of pulseboard.
package schema

import (
	"encoding/json"
	"math"
	"time"
)

// MetricRecord represents one calendar day of support metrics.
// Raw counts come straight from the metrics source; TicketRate and MSAT are
// derived at load time and carry NaN when the denominator is zero, which
// consumers must treat as "no data" rather than zero.
type MetricRecord struct {
	Date           time.Time `json:"date"`            // Calendar day, UTC midnight
	ActiveSessions int       `json:"active_sessions"` // Sessions seen that day
	FDTickets      int       `json:"fd_tickets"`      // Support tickets filed that day
	FeedbackGiven  int       `json:"feedback_given"`  // Feedback responses received
	Happy          int       `json:"happy"`           // Positive feedback responses

	TicketRate float64 `json:"ticket_rate"` // fd_tickets / active_sessions * 100, NaN if no sessions
	MSAT       float64 `json:"msat"`        // happy / feedback_given * 100, NaN if no feedback
}

// HasTicketRate reports whether the day has a defined ticket rate.
func (r MetricRecord) HasTicketRate() bool {
	return !math.IsNaN(r.TicketRate)
}

// HasMSAT reports whether the day has a defined satisfaction score.
func (r MetricRecord) HasMSAT() bool {
	return !math.IsNaN(r.MSAT)
}

// MetricValue returns the derived value for the selected metric.
// The result may be NaN when the underlying denominator was zero.
func (r MetricRecord) MetricValue(m Metric) float64 {
	if m == MSATMetric {
		return r.MSAT
	}
	return r.TicketRate
}

// metricRecordJSON mirrors MetricRecord with nullable derived fields.
// JSON cannot represent NaN, so an undefined ticket rate or MSAT is encoded
// as null and decoded back to NaN.
type metricRecordJSON struct {
	Date           time.Time `json:"date"`
	ActiveSessions int       `json:"active_sessions"`
	FDTickets      int       `json:"fd_tickets"`
	FeedbackGiven  int       `json:"feedback_given"`
	Happy          int       `json:"happy"`
	TicketRate     *float64  `json:"ticket_rate"`
	MSAT           *float64  `json:"msat"`
}

// MarshalJSON encodes NaN derived values as null.
func (r MetricRecord) MarshalJSON() ([]byte, error) {
	out := metricRecordJSON{
		Date:           r.Date,
		ActiveSessions: r.ActiveSessions,
		FDTickets:      r.FDTickets,
		FeedbackGiven:  r.FeedbackGiven,
		Happy:          r.Happy,
	}
	if r.HasTicketRate() {
		v := r.TicketRate
		out.TicketRate = &v
	}
	if r.HasMSAT() {
		v := r.MSAT
		out.MSAT = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes null derived values back to NaN.
func (r *MetricRecord) UnmarshalJSON(data []byte) error {
	var in metricRecordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Date = in.Date
	r.ActiveSessions = in.ActiveSessions
	r.FDTickets = in.FDTickets
	r.FeedbackGiven = in.FeedbackGiven
	r.Happy = in.Happy
	r.TicketRate = math.NaN()
	r.MSAT = math.NaN()
	if in.TicketRate != nil {
		r.TicketRate = *in.TicketRate
	}
	if in.MSAT != nil {
		r.MSAT = *in.MSAT
	}
	return nil
}

// ReleaseEvent represents one release/issue from the releases source.
// Updated is the timestamp used for placement on the dashboard timeline.
type ReleaseEvent struct {
	IssueKey  string    `json:"issue_key"`
	Summary   string    `json:"summary"`
	IssueType string    `json:"issue_type"`
	Status    string    `json:"status"`
	JiraLink  string    `json:"jira_link"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}
