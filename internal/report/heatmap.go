package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Weekdays are the fixed heatmap columns.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// HeatmapPanel is the week-by-weekday pivot of one calendar month.
//
// Rows follow Weeks, which is sorted with the most recent week first. Every
// row has seven columns, Monday first. A week that crosses a month boundary
// appears partially in both months' panels.
type HeatmapPanel struct {
	Year   int
	Month  int
	Weeks  []int
	Values [][]decimal.Decimal
}

// Title is "{year}-{month:02d}".
func (p HeatmapPanel) Title() string {
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

func (p HeatmapPanel) IsEmpty() bool {
	return len(p.Weeks) == 0
}

// Years returns the distinct years of the cells in ascending order.
func Years(cells []DailyCell) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, c := range cells {
		if _, ok := seen[c.Year]; ok {
			continue
		}
		seen[c.Year] = struct{}{}
		years = append(years, c.Year)
	}
	sort.Ints(years)
	return years
}

// BuildPanels lays the cells out as one panel per (year, month), years in
// ascending order and twelve months per year. Months without cells yield an
// empty panel.
func BuildPanels(cells []DailyCell) []HeatmapPanel {
	type ym struct{ year, month int }
	grouped := make(map[ym][]DailyCell)
	for _, c := range cells {
		k := ym{c.Year, c.Month}
		grouped[k] = append(grouped[k], c)
	}

	years := Years(cells)
	panels := make([]HeatmapPanel, 0, len(years)*12)
	for _, y := range years {
		for m := 1; m <= 12; m++ {
			panels = append(panels, Pivot(y, m, grouped[ym{y, m}]))
		}
	}
	return panels
}

// Pivot arranges cells of one month by ISO week (descending) and weekday.
// Missing weekday cells are zero; an empty input gives an empty panel.
func Pivot(year, month int, cells []DailyCell) HeatmapPanel {
	p := HeatmapPanel{Year: year, Month: month}
	if len(cells) == 0 {
		return p
	}

	rows := make(map[int]*[7]decimal.Decimal)
	for _, c := range cells {
		row, ok := rows[c.ISOWeek]
		if !ok {
			row = &[7]decimal.Decimal{}
			for i := range row {
				row[i] = decimal.Zero
			}
			rows[c.ISOWeek] = row
			p.Weeks = append(p.Weeks, c.ISOWeek)
		}
		row[c.Weekday] = row[c.Weekday].Add(c.Amount)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(p.Weeks)))
	p.Values = make([][]decimal.Decimal, len(p.Weeks))
	for i, w := range p.Weeks {
		p.Values[i] = rows[w][:]
	}
	return p
}
