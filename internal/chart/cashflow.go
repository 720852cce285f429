package chart

import (
	"encoding/json"
	"errors"
	"fmt"

	"ledgerviz/internal/core"
	"ledgerviz/internal/report"
)

const (
	IncomeColor   = "#00CEAA"
	ExpensesColor = "#F63366"
	DefaultColor  = "#262730"
)

var ErrNoBuckets = errors.New("no monthly buckets to chart")

// Metric is one headline number rendered under the cash-flow chart.
type Metric struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	TitleColor string `json:"title_color"`
	ValueColor string `json:"value_color"`
}

// CashFlowView is a drawn cash-flow chart plus its summary metrics.
type CashFlowView struct {
	Figure  json.RawMessage `json:"figure"`
	Metrics []Metric        `json:"metrics"`
}

// CashFlowFigure draws income as positive bars, expenses as negative bars in
// the same offset group, and savings as a line on top.
func CashFlowFigure(buckets []report.MonthlyBucket) (Figure, error) {
	if len(buckets) == 0 {
		return Figure{}, ErrNoBuckets
	}

	n := len(buckets)
	months := make([]string, n)
	income := make([]float64, n)
	expenses := make([]float64, n)
	savings := make([]float64, n)
	incomeText := make([]string, n)
	expensesText := make([]string, n)
	savingsText := make([]string, n)
	for i, b := range buckets {
		months[i] = b.MonthStart.Key()
		income[i] = b.Income.InexactFloat64()
		expenses[i] = -b.Expenses.InexactFloat64()
		savings[i] = b.Savings().InexactFloat64()
		incomeText[i] = core.FormatDollarsCents(income[i])
		expensesText[i] = core.FormatDollarsCents(b.Expenses.InexactFloat64())
		savingsText[i] = core.FormatDollarsCents(savings[i])
	}

	return Figure{
		Data: []Trace{
			{
				Type:        "bar",
				Name:        "Income",
				X:           months,
				Y:           income,
				Marker:      &Marker{Color: IncomeColor, CornerRadius: 10},
				HoverText:   incomeText,
				HoverInfo:   "text+name",
				OffsetGroup: "0",
			},
			{
				Type:        "bar",
				Name:        "Expenses",
				X:           months,
				Y:           expenses,
				Marker:      &Marker{Color: ExpensesColor, CornerRadius: 10},
				HoverText:   expensesText,
				HoverInfo:   "text+name",
				OffsetGroup: "0",
			},
			{
				Type:      "scatter",
				Name:      "Savings",
				X:         months,
				Y:         savings,
				Mode:      "lines",
				Line:      &Line{Color: "black", Width: 4},
				Text:      savingsText,
				HoverInfo: "text+name",
			},
		},
		Layout: Layout{
			Title:      &Title{Text: "Cash Flow", Font: &Font{Size: 26}},
			BarMode:    "relative",
			BarGap:     0.5,
			HoverMode:  "x unified",
			ShowLegend: boolPtr(false),
			Axes: map[string]Axis{
				"xaxis": {
					Title:    &Title{Text: "Month"},
					ShowGrid: boolPtr(false),
					DTick:    "M1",
				},
				"yaxis": {
					Title:         &Title{Text: "Amount"},
					ShowGrid:      boolPtr(false),
					ZeroLine:      boolPtr(true),
					ZeroLineColor: "#EFEFEF",
					ZeroLineWidth: 2,
					TickFormat:    "$,.1s",
				},
			},
		},
	}, nil
}

// SummaryMetrics formats the four headline numbers.
func SummaryMetrics(s report.Summary) []Metric {
	return []Metric{
		{Title: "Income", Value: core.FormatWholeDollars(s.Income), TitleColor: DefaultColor, ValueColor: IncomeColor},
		{Title: "Expenses", Value: core.FormatWholeDollars(s.Expenses), TitleColor: DefaultColor, ValueColor: ExpensesColor},
		{Title: "Total Savings", Value: core.FormatWholeDollars(s.Savings), TitleColor: DefaultColor, ValueColor: DefaultColor},
		{Title: "Savings Rate", Value: s.FormattedSavingsRate(), TitleColor: DefaultColor, ValueColor: DefaultColor},
	}
}

// RenderCashFlow draws the chart and, only once drawing succeeded, computes
// the summary metrics.
func RenderCashFlow(buckets []report.MonthlyBucket) (CashFlowView, error) {
	fig, err := CashFlowFigure(buckets)
	if err != nil {
		return CashFlowView{}, err
	}
	encoded, err := json.Marshal(fig)
	if err != nil {
		return CashFlowView{}, fmt.Errorf("encode cash flow figure: %w", err)
	}
	return CashFlowView{
		Figure:  encoded,
		Metrics: SummaryMetrics(report.Summarize(buckets)),
	}, nil
}
