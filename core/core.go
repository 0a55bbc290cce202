// Package core has core logic for deriving, bucketing, aggregating and
// assembling dashboard views.
package core

import (
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/internal/loader"
	"github.com/huangsam/pulseboard/internal/outwriter"
	"github.com/huangsam/pulseboard/schema"
)

// ExecuteChart computes the full dashboard view and prints it using the
// configured output format. It serves as the main entry point for the
// 'chart' command.
func ExecuteChart(cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	view, err := GetDashboardResults(cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	recordSnapshot(mgr, view, duration)
	return outwriter.NewOutWriter().WriteDashboard(view, cfg, duration)
}

// ExecuteSeries computes the aggregated metric series and prints it.
// It serves as the main entry point for the 'series' command.
func ExecuteSeries(cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	view, err := GetDashboardResults(cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	recordSnapshot(mgr, view, duration)
	result := schema.SeriesResult{
		Metric:      view.Metric,
		Granularity: view.Granularity,
		Points:      view.Points,
	}
	return outwriter.NewOutWriter().WriteSeries(result, cfg, duration)
}

// ExecuteReleases computes the aligned release buckets and prints them.
// It serves as the main entry point for the 'releases' command.
func ExecuteReleases(cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	view, err := GetDashboardResults(cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	result := schema.ReleasesResult{
		Granularity: view.Granularity,
		Buckets:     view.Releases,
	}
	return outwriter.NewOutWriter().WriteReleases(result, cfg, duration)
}

// ExecuteRaw prints the two raw filtered tables for the current selection.
// It serves as the main entry point for the 'raw' command.
func ExecuteRaw(cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	view, err := GetDashboardResults(cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteRaw(view, cfg, duration)
}

// GetDashboardResults runs the full pipeline for one selection: load,
// derive, resolve the window, aggregate and align. Exposed for the MCP
// server as well as the CLI commands.
func GetDashboardResults(cfg *contract.Config, mgr contract.CacheManager) (schema.DashboardView, error) {
	ds, err := loader.Load(cfg, mgr)
	if err != nil {
		return schema.DashboardView{}, err
	}
	DeriveMetrics(ds.Metrics)

	start, end := ResolveWindow(cfg.StartTime, cfg.EndTime, cfg.Granularity, LatestMetricDate(ds.Metrics))
	return BuildDashboardView(ds.Metrics, ds.Releases, cfg.Metric, cfg.Granularity, start, end), nil
}

// recordSnapshot persists one snapshot run for the recomputation, when a
// snapshot store is configured. Snapshot failures never fail the command.
func recordSnapshot(mgr contract.CacheManager, view schema.DashboardView, duration time.Duration) {
	if mgr == nil {
		return
	}
	store := mgr.GetSnapshotStore()
	if store == nil {
		return
	}

	id, err := store.BeginRun(time.Now(), string(view.Granularity), string(view.Metric), view.RangeStart, view.RangeEnd)
	if err != nil {
		contract.LogWarn("could not record snapshot run", err)
		return
	}

	for _, p := range view.Points {
		point := schema.SnapshotPointRecord{
			SnapshotID:  id,
			Label:       p.Label,
			PeriodStart: p.Period.Start,
			PeriodEnd:   p.Period.End,
			Value:       p.Value,
			Samples:     int32(p.Samples),
		}
		if err := store.RecordPoint(id, point); err != nil {
			contract.LogWarn("could not record snapshot point", err)
			return
		}
	}

	durationMs := int32(duration.Milliseconds())
	if err := store.EndRun(id, durationMs, int32(len(view.Points)), int32(len(view.Releases)), view.NoData); err != nil {
		contract.LogWarn("could not finalize snapshot run", err)
	}
}
