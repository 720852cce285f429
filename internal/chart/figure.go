// Package chart turns report data into Plotly figure documents.
//
// The server never draws pixels: a figure is encoded to JSON and handed to
// plotly.js on the page, the same way the dashboard feeds its other widgets.
package chart

import (
	"encoding/json"

	"ledgerviz/internal/report"
)

type (
	Figure struct {
		Data   []Trace `json:"data"`
		Layout Layout  `json:"layout"`
	}

	Trace struct {
		Type        string             `json:"type"`
		Name        string             `json:"name,omitempty"`
		X           []string           `json:"x,omitempty"`
		Y           any                `json:"y,omitempty"`
		Z           [][]float64        `json:"z,omitempty"`
		Mode        string             `json:"mode,omitempty"`
		Marker      *Marker            `json:"marker,omitempty"`
		Line        *Line              `json:"line,omitempty"`
		Text        []string           `json:"text,omitempty"`
		HoverText   []string           `json:"hovertext,omitempty"`
		HoverInfo   string             `json:"hoverinfo,omitempty"`
		OffsetGroup string             `json:"offsetgroup,omitempty"`
		ColorScale  []report.ColorStop `json:"colorscale,omitempty"`
		ZMin        *float64           `json:"zmin,omitempty"`
		ZMax        *float64           `json:"zmax,omitempty"`
		XGap        int                `json:"xgap,omitempty"`
		YGap        int                `json:"ygap,omitempty"`
		ShowScale   *bool              `json:"showscale,omitempty"`
		XAxis       string             `json:"xaxis,omitempty"`
		YAxis       string             `json:"yaxis,omitempty"`
	}

	Marker struct {
		Color        string `json:"color,omitempty"`
		CornerRadius int    `json:"cornerradius,omitempty"`
	}

	Line struct {
		Color string `json:"color,omitempty"`
		Width int    `json:"width,omitempty"`
	}

	Font struct {
		Size  int    `json:"size,omitempty"`
		Color string `json:"color,omitempty"`
	}

	Title struct {
		Text string `json:"text"`
		Font *Font  `json:"font,omitempty"`
	}

	Axis struct {
		Title          *Title    `json:"title,omitempty"`
		Domain         []float64 `json:"domain,omitempty"`
		Anchor         string    `json:"anchor,omitempty"`
		ShowGrid       *bool     `json:"showgrid,omitempty"`
		ShowTickLabels *bool     `json:"showticklabels,omitempty"`
		DTick          string    `json:"dtick,omitempty"`
		TickFormat     string    `json:"tickformat,omitempty"`
		ZeroLine       *bool     `json:"zeroline,omitempty"`
		ZeroLineColor  string    `json:"zerolinecolor,omitempty"`
		ZeroLineWidth  int       `json:"zerolinewidth,omitempty"`
		ScaleAnchor    string    `json:"scaleanchor,omitempty"`
		ScaleRatio     float64   `json:"scaleratio,omitempty"`
	}

	Annotation struct {
		Text      string  `json:"text"`
		X         float64 `json:"x"`
		Y         float64 `json:"y"`
		XRef      string  `json:"xref"`
		YRef      string  `json:"yref"`
		XAnchor   string  `json:"xanchor,omitempty"`
		YAnchor   string  `json:"yanchor,omitempty"`
		ShowArrow bool    `json:"showarrow"`
		Font      *Font   `json:"font,omitempty"`
	}

	// Layout carries the fixed layout attributes. Axes holds the per-subplot
	// axes keyed by their Plotly names ("xaxis", "yaxis2", ...).
	Layout struct {
		Title       *Title          `json:"title,omitempty"`
		BarMode     string          `json:"barmode,omitempty"`
		BarGap      float64         `json:"bargap,omitempty"`
		HoverMode   string          `json:"hovermode,omitempty"`
		ShowLegend  *bool           `json:"showlegend,omitempty"`
		Height      int             `json:"height,omitempty"`
		Width       int             `json:"width,omitempty"`
		Annotations []Annotation    `json:"annotations,omitempty"`
		Axes        map[string]Axis `json:"-"`
	}
)

// MarshalJSON flattens Axes next to the other layout attributes.
func (l Layout) MarshalJSON() ([]byte, error) {
	type plain Layout
	base, err := json.Marshal(plain(l))
	if err != nil || len(l.Axes) == 0 {
		return base, err
	}

	fields := make(map[string]json.RawMessage, len(l.Axes)+8)
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for name, axis := range l.Axes {
		raw, err := json.Marshal(axis)
		if err != nil {
			return nil, err
		}
		fields[name] = raw
	}
	return json.Marshal(fields)
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
