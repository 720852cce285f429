package report

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestColorScaleDefault(t *testing.T) {
	stops, err := ColorScale(HeatmapMin, HeatmapMax, DefaultAnchors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 0.45, 0.495, 0.5, 0.505, 0.55, 1}
	if len(stops) != len(want) {
		t.Fatalf("got %d stops, want %d", len(stops), len(want))
	}
	for i, s := range stops {
		if diff := s.Position - want[i]; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("stop %d position = %v, want %v", i, s.Position, want[i])
		}
		if i > 0 && s.Position <= stops[i-1].Position {
			t.Errorf("stop %d not strictly increasing", i)
		}
	}
	if stops[0].Color != "rgb(139,0,0)" || stops[3].Color != "rgb(255,255,255)" || stops[6].Color != "rgb(0,100,0)" {
		t.Errorf("unexpected colors: %+v", stops)
	}
}

func TestNormalizeBounds(t *testing.T) {
	if got := Normalize(-50, -50, 150); got != 0 {
		t.Errorf("normalize(min) = %v", got)
	}
	if got := Normalize(150, -50, 150); got != 1 {
		t.Errorf("normalize(max) = %v", got)
	}
}

func TestColorScaleErrors(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		anchors  []Anchor
		want     error
	}{
		{"degenerate range", 5, 5, DefaultAnchors(), ErrDegenerateRange},
		{"inverted range", 10, -10, DefaultAnchors(), ErrDegenerateRange},
		{"unordered anchors", -10, 10, []Anchor{{0, "a"}, {0, "b"}}, ErrAnchorOrder},
		{"anchor outside range", -100, 100, DefaultAnchors(), ErrAnchorOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ColorScale(tt.min, tt.max, tt.anchors)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestColorStopJSON(t *testing.T) {
	b, err := json.Marshal([]ColorStop{{Position: 0.5, Color: "white"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `[[0.5,"white"]]` {
		t.Fatalf("got %s", b)
	}
}

func TestParseAnchors(t *testing.T) {
	anchors, err := ParseAnchors("-1000:rgb(139,0,0); 0:white ;1000:#006400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(anchors) != 3 || anchors[0].Color != "rgb(139,0,0)" || anchors[1].Value != 0 || anchors[2].Color != "#006400" {
		t.Fatalf("unexpected anchors: %+v", anchors)
	}

	for _, bad := range []string{"", "0:white", "x:white;1:black", "0:;1:black", "1:a;0:b", "nocolon;1:b"} {
		if _, err := ParseAnchors(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
