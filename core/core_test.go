package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/internal/iocache"
	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const pipelineMetricsCSV = `date_,active_sessions,fd_tickets,feedback_given,happy
2025-06-16,200,10,20,17
2025-06-17,100,10,10,9
2025-06-24,0,0,0,0
`

const pipelineReleasesCSV = `issue_key,summary,issue_type,status,jira_link,created,updated
REL-1,June rollout,Release,Done,https://jira.example.com/REL-1,2025-05-20,2025-06-18
REL-2,Hotfix,Release,Done,https://jira.example.com/REL-2,2025-06-20,2025-06-24
`

func pipelineConfig(t *testing.T) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "metrics_data.csv")
	releasesPath := filepath.Join(dir, "release_data.csv")
	require.NoError(t, os.WriteFile(metricsPath, []byte(pipelineMetricsCSV), 0o644))
	require.NoError(t, os.WriteFile(releasesPath, []byte(pipelineReleasesCSV), 0o644))
	return &contract.Config{
		DataDir:      dir,
		MetricsPath:  metricsPath,
		ReleasesPath: releasesPath,
		Granularity:  schema.WeekGranularity,
		Metric:       schema.TicketRateMetric,
		StartTime:    time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetDashboardResults(t *testing.T) {
	cfg := pipelineConfig(t)

	view, err := GetDashboardResults(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, schema.TicketRateMetric, view.Metric)
	assert.Equal(t, schema.WeekGranularity, view.Granularity)
	assert.False(t, view.NoData)

	// The first week has two defined days at 5% and 10%. The second week
	// has one row with zero sessions, so its bucket carries no point.
	require.Len(t, view.Points, 1)
	assert.InDelta(t, 7.5, view.Points[0].Value, 1e-9)
	assert.Equal(t, 2, view.Points[0].Samples)

	// Both release weeks appear, so the shared axis spans two buckets.
	require.Len(t, view.Releases, 2)
	assert.Equal(t, "REL-1", view.Releases[0].Keys)
	assert.Equal(t, "REL-2", view.Releases[1].Keys)
	assert.Equal(t, []string{"Jun 15 - Jun 21", "Jun 22 - Jun 28"}, view.Axis)

	assert.Len(t, view.RawMetrics, 3)
	assert.Len(t, view.RawReleases, 2)
}

func TestGetDashboardResultsLoadError(t *testing.T) {
	cfg := pipelineConfig(t)
	cfg.MetricsPath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := GetDashboardResults(cfg, nil)
	assert.Error(t, err)
}

func TestRecordSnapshot(t *testing.T) {
	view := schema.DashboardView{
		Metric:      schema.MSATMetric,
		Granularity: schema.WeekGranularity,
		RangeStart:  time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
		RangeEnd:    time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC),
		Points: []schema.AggregatedPoint{
			{
				Period: schema.Period{
					Start: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
					End:   time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC),
				},
				Label:   "Jun 15 - Jun 21",
				Value:   87.5,
				Samples: 2,
			},
		},
		Releases: []schema.AggregatedEvents{{Count: 1}},
	}

	store := &iocache.MockSnapshotStore{}
	store.On("BeginRun", mock.Anything, "week", "msat", view.RangeStart, view.RangeEnd).Return(int64(7), nil).Once()
	store.On("RecordPoint", int64(7), mock.MatchedBy(func(p schema.SnapshotPointRecord) bool {
		return p.SnapshotID == 7 && p.Label == "Jun 15 - Jun 21" && p.Samples == 2
	})).Return(nil).Once()
	store.On("EndRun", int64(7), mock.Anything, int32(1), int32(1), false).Return(nil).Once()

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(store).Once()

	recordSnapshot(mgr, view, 42*time.Millisecond)

	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestRecordSnapshotNilManager(t *testing.T) {
	// Must not panic and must not touch any store
	recordSnapshot(nil, schema.DashboardView{}, time.Second)
}

func TestRecordSnapshotNilStore(t *testing.T) {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(nil).Once()

	recordSnapshot(mgr, schema.DashboardView{}, time.Second)

	mgr.AssertExpectations(t)
}

func TestRecordSnapshotBeginRunFailure(t *testing.T) {
	store := &iocache.MockSnapshotStore{}
	store.On("BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), assert.AnError).Once()

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(store).Once()

	// The failure is logged and swallowed; no points or EndRun follow.
	recordSnapshot(mgr, schema.DashboardView{Points: []schema.AggregatedPoint{{Label: "x"}}}, time.Second)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "RecordPoint", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
