package schema

// Custom string types for type safety.
type (
	// Granularity represents the calendar resolution used for bucketing.
	Granularity string

	// Metric represents the derived metric plotted on the dashboard.
	Metric string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// AxisKind tells the rendering layer how to type the time axis.
	AxisKind string
)

// All granularities supported.
const (
	DayGranularity   Granularity = "day" // default
	WeekGranularity  Granularity = "week"
	MonthGranularity Granularity = "month"
	YearGranularity  Granularity = "year"
)

// All metrics supported.
const (
	TicketRateMetric Metric = "ticket_rate" // default
	MSATMetric       Metric = "msat"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Axis kinds handed to the rendering layer. Daily buckets plot on a
// temporal axis; coarser buckets plot as ordered categories.
const (
	TemporalAxis AxisKind = "temporal"
	OrdinalAxis  AxisKind = "ordinal"
)

// AllGranularities returns a list of all supported granularities.
var AllGranularities = []Granularity{DayGranularity, WeekGranularity, MonthGranularity, YearGranularity}

// ValidGranularities lists all valid granularities.
var ValidGranularities = map[Granularity]struct{}{
	DayGranularity:   {},
	WeekGranularity:  {},
	MonthGranularity: {},
	YearGranularity:  {},
}

// ValidMetrics lists all valid metrics.
var ValidMetrics = map[Metric]struct{}{
	TicketRateMetric: {},
	MSATMetric:       {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DisplayName returns the human-readable name of a metric for chart titles.
func (m Metric) DisplayName() string {
	switch m {
	case MSATMetric:
		return "MSAT"
	default:
		return "Ticket Rate"
	}
}

// Axis returns the axis kind the rendering layer should use for a granularity.
func (g Granularity) Axis() AxisKind {
	if g == DayGranularity {
		return TemporalAxis
	}
	return OrdinalAxis
}
