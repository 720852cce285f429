// Package services runs a render pass: load the ledger, derive the report
// entities, then hand them to the chart builders.
package services

import (
	"context"
	"errors"
	"fmt"

	"ledgerviz/internal/chart"
	"ledgerviz/internal/core"
	"ledgerviz/internal/ledger"
	applog "ledgerviz/internal/log"
	"ledgerviz/internal/report"
)

// Report is everything derived from one ledger snapshot.
type Report struct {
	Ledger  core.Ledger
	Buckets []report.MonthlyBucket
	Summary report.Summary
	Cells   []report.DailyCell
}

// VisualizationService builds the dashboard views. It holds no derived state:
// every call recomputes from the ledger the reader returns.
type VisualizationService struct {
	reader  ledger.Reader
	heatmap chart.HeatmapOptions
}

func NewVisualizationService(reader ledger.Reader, heatmap chart.HeatmapOptions) *VisualizationService {
	return &VisualizationService{reader: reader, heatmap: heatmap}
}

// load returns ledger.ErrNoLedger for both a missing and an empty ledger.
func (s *VisualizationService) load(ctx context.Context) (core.Ledger, error) {
	l, err := s.reader.Load(ctx)
	if ledger.IsAbsent(l, err) {
		return nil, ledger.ErrNoLedger
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return l, nil
}

// CashFlow renders the monthly income/expenses/savings chart and its metrics.
func (s *VisualizationService) CashFlow(ctx context.Context) (chart.CashFlowView, error) {
	l, err := s.load(ctx)
	if err != nil {
		return chart.CashFlowView{}, err
	}
	buckets := report.Aggregate(l)
	view, err := chart.RenderCashFlow(buckets)
	if err != nil {
		return chart.CashFlowView{}, fmt.Errorf("render cash flow: %w", err)
	}
	applog.NewStructuredLogger(applog.FromContext(ctx)).
		LogRender(ctx, "cashflow", len(l), applog.LogFields{applog.FieldBuckets: len(buckets)})
	return view, nil
}

// Heatmap renders one daily heatmap panel per calendar month.
func (s *VisualizationService) Heatmap(ctx context.Context) (chart.HeatmapView, error) {
	l, err := s.load(ctx)
	if err != nil {
		return chart.HeatmapView{}, err
	}
	cells, err := report.BuildGrid(l)
	if err != nil {
		return chart.HeatmapView{}, fmt.Errorf("build calendar grid: %w", err)
	}
	view, err := chart.RenderHeatmaps(cells, s.heatmap)
	if err != nil {
		return chart.HeatmapView{}, fmt.Errorf("render heatmaps: %w", err)
	}
	applog.NewStructuredLogger(applog.FromContext(ctx)).
		LogRender(ctx, "heatmap", len(l), applog.LogFields{applog.FieldCells: len(cells), applog.FieldPanels: view.Panels})
	return view, nil
}

// Report derives the tabular entities used by exports.
func (s *VisualizationService) Report(ctx context.Context) (Report, error) {
	l, err := s.load(ctx)
	if err != nil {
		return Report{}, err
	}
	buckets := report.Aggregate(l)
	cells, err := report.BuildGrid(l)
	if err != nil {
		return Report{}, fmt.Errorf("build calendar grid: %w", err)
	}
	return Report{
		Ledger:  l,
		Buckets: buckets,
		Summary: report.Summarize(buckets),
		Cells:   cells,
	}, nil
}

// Ready reports whether the ledger source answers. Absence is not a failure.
func (s *VisualizationService) Ready(ctx context.Context) error {
	_, err := s.reader.Load(ctx)
	if err != nil && !errors.Is(err, ledger.ErrNoLedger) {
		return err
	}
	return nil
}
