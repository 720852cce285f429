package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"ledgerviz/internal/report"
)

const (
	panelColumns      = 12
	horizontalSpacing = 0.01
	verticalSpacing   = 0.05
	rowHeight         = 300
)

// HeatmapOptions fixes the value range and gradient of every panel.
type HeatmapOptions struct {
	Min     float64
	Max     float64
	Anchors []report.Anchor
}

func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		Min:     report.HeatmapMin,
		Max:     report.HeatmapMax,
		Anchors: report.DefaultAnchors(),
	}
}

// HeatmapView is a drawn heatmap grid.
type HeatmapView struct {
	Figure json.RawMessage `json:"figure"`
	Panels int             `json:"panels"`
}

// HeatmapFigure draws one panel per (year, month), years as rows and months
// as columns. Values outside [Min, Max] are left for plotly.js to clamp.
func HeatmapFigure(cells []report.DailyCell, opts HeatmapOptions) (Figure, error) {
	scale, err := report.ColorScale(opts.Min, opts.Max, opts.Anchors)
	if err != nil {
		return Figure{}, err
	}

	panels := report.BuildPanels(cells)
	rows := len(panels) / panelColumns
	grid := newSubplotGrid(rows, panelColumns)

	fig := Figure{
		Data: make([]Trace, 0, len(panels)),
		Layout: Layout{
			Title:  &Title{Text: "Monthly Heatmaps"},
			Height: rowHeight * max(rows, 1),
			Axes:   make(map[string]Axis, 2*len(panels)),
		},
	}

	for i, p := range panels {
		row, col := i/panelColumns, i%panelColumns
		suffix := ""
		if i > 0 {
			suffix = strconv.Itoa(i + 1)
		}
		xName, yName := "x"+suffix, "y"+suffix

		fig.Data = append(fig.Data, panelTrace(p, scale, opts, xName, yName, i == 0))

		xDomain, yDomain := grid.domains(row, col)
		fig.Layout.Axes["xaxis"+suffix] = Axis{
			Title:  &Title{Text: "Day of Week"},
			Domain: xDomain,
			Anchor: yName,
		}
		fig.Layout.Axes["yaxis"+suffix] = Axis{
			Domain:         yDomain,
			Anchor:         xName,
			ShowGrid:       boolPtr(false),
			ShowTickLabels: boolPtr(false),
			ScaleAnchor:    xName,
			ScaleRatio:     1,
		}
		fig.Layout.Annotations = append(fig.Layout.Annotations, Annotation{
			Text:      p.Title(),
			X:         (xDomain[0] + xDomain[1]) / 2,
			Y:         yDomain[1],
			XRef:      "paper",
			YRef:      "paper",
			XAnchor:   "center",
			YAnchor:   "bottom",
			ShowArrow: false,
			Font:      &Font{Size: 12},
		})
	}
	return fig, nil
}

func panelTrace(p report.HeatmapPanel, scale []report.ColorStop, opts HeatmapOptions, xName, yName string, showScale bool) Trace {
	weeks := make([]string, len(p.Weeks))
	z := make([][]float64, len(p.Values))
	for i, w := range p.Weeks {
		weeks[i] = "Week " + strconv.Itoa(w)
		row := make([]float64, len(p.Values[i]))
		for j, v := range p.Values[i] {
			row[j] = v.InexactFloat64()
		}
		z[i] = row
	}
	return Trace{
		Type:       "heatmap",
		Name:       p.Title(),
		X:          report.Weekdays[:],
		Y:          weeks,
		Z:          z,
		ColorScale: scale,
		ZMin:       floatPtr(opts.Min),
		ZMax:       floatPtr(opts.Max),
		XGap:       1,
		YGap:       1,
		ShowScale:  boolPtr(showScale),
		XAxis:      xName,
		YAxis:      yName,
	}
}

// RenderHeatmaps draws the heatmap grid for a dense daily series.
func RenderHeatmaps(cells []report.DailyCell, opts HeatmapOptions) (HeatmapView, error) {
	fig, err := HeatmapFigure(cells, opts)
	if err != nil {
		return HeatmapView{}, err
	}
	encoded, err := json.Marshal(fig)
	if err != nil {
		return HeatmapView{}, fmt.Errorf("encode heatmap figure: %w", err)
	}
	return HeatmapView{Figure: encoded, Panels: len(fig.Data)}, nil
}

// subplotGrid computes paper-coordinate domains for a rows x cols layout,
// row 0 at the top.
type subplotGrid struct {
	rows, cols     int
	hSpace, vSpace float64
	width, height  float64
}

func newSubplotGrid(rows, cols int) subplotGrid {
	g := subplotGrid{rows: max(rows, 1), cols: cols, hSpace: horizontalSpacing, vSpace: verticalSpacing}
	if g.rows > 1 {
		g.vSpace = math.Min(verticalSpacing, 0.5/float64(g.rows-1))
	}
	g.width = (1 - g.hSpace*float64(g.cols-1)) / float64(g.cols)
	g.height = (1 - g.vSpace*float64(g.rows-1)) / float64(g.rows)
	return g
}

func (g subplotGrid) domains(row, col int) (x, y []float64) {
	x0 := float64(col) * (g.width + g.hSpace)
	top := 1 - float64(row)*(g.height+g.vSpace)
	return []float64{x0, math.Min(x0+g.width, 1)}, []float64{math.Max(top-g.height, 0), top}
}
