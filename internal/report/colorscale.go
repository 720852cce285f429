package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Bounds of the heatmap value range. Cells outside it are clamped by the
// charting layer, never in code.
const (
	HeatmapMin = -1000.0
	HeatmapMax = 1000.0
)

var (
	ErrDegenerateRange  = errors.New("color scale range is empty")
	ErrAnchorOrder      = errors.New("color anchors must be strictly increasing")
	ErrAnchorOutOfRange = errors.New("color anchor outside of scale range")
)

// Anchor is one stop of the piecewise color gradient, in data units.
type Anchor struct {
	Value float64
	Color string
}

// ColorStop is an anchor whose value has been normalized into [0, 1].
type ColorStop struct {
	Position float64
	Color    string
}

// MarshalJSON encodes the stop as a [position, color] pair.
func (s ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Position, s.Color})
}

// DefaultAnchors maps large losses to dark red and large gains to dark green,
// with finer resolution around zero.
func DefaultAnchors() []Anchor {
	return []Anchor{
		{Value: -1000, Color: "rgb(139,0,0)"},   // dark red
		{Value: -100, Color: "rgb(255,0,0)"},    // medium red
		{Value: -10, Color: "rgb(255,200,200)"}, // light red
		{Value: 0, Color: "rgb(255,255,255)"},   // white
		{Value: 10, Color: "rgb(200,255,200)"},  // light green
		{Value: 100, Color: "rgb(0,255,0)"},     // medium green
		{Value: 1000, Color: "rgb(0,100,0)"},    // dark green
	}
}

// Normalize maps v linearly so that minVal becomes 0 and maxVal becomes 1.
// The caller guarantees minVal < maxVal.
func Normalize(v, minVal, maxVal float64) float64 {
	return (v - minVal) / (maxVal - minVal)
}

// ColorScale normalizes anchors against [minVal, maxVal].
func ColorScale(minVal, maxVal float64, anchors []Anchor) ([]ColorStop, error) {
	if !(minVal < maxVal) {
		return nil, fmt.Errorf("%w: min=%v max=%v", ErrDegenerateRange, minVal, maxVal)
	}
	stops := make([]ColorStop, 0, len(anchors))
	for i, a := range anchors {
		if i > 0 && a.Value <= anchors[i-1].Value {
			return nil, fmt.Errorf("%w: %v after %v", ErrAnchorOrder, a.Value, anchors[i-1].Value)
		}
		if a.Value < minVal || a.Value > maxVal {
			return nil, fmt.Errorf("%w: %v not in [%v, %v]", ErrAnchorOutOfRange, a.Value, minVal, maxVal)
		}
		stops = append(stops, ColorStop{Position: Normalize(a.Value, minVal, maxVal), Color: a.Color})
	}
	return stops, nil
}

// ParseAnchors reads an anchor table written as "value:color;value:color".
// Colors may contain commas, e.g. "-1000:rgb(139,0,0);0:white;1000:#006400".
func ParseAnchors(s string) ([]Anchor, error) {
	var anchors []Anchor
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, color, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("anchor %q: expected value:color", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("anchor %q: %w", part, err)
		}
		color = strings.TrimSpace(color)
		if color == "" {
			return nil, fmt.Errorf("anchor %q: empty color", part)
		}
		anchors = append(anchors, Anchor{Value: v, Color: color})
	}
	if len(anchors) < 2 {
		return nil, errors.New("at least two color anchors are required")
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].Value <= anchors[i-1].Value {
			return nil, fmt.Errorf("%w: %v after %v", ErrAnchorOrder, anchors[i].Value, anchors[i-1].Value)
		}
	}
	return anchors, nil
}
