package report

import (
	"errors"

	"github.com/shopspring/decimal"

	"ledgerviz/internal/core"
)

var ErrEmptyLedger = errors.New("ledger has no transactions")

// DailyCell is the net amount of one calendar day together with the
// coordinates used to place it on a heatmap.
type DailyCell struct {
	Date    core.Date
	Year    int
	Month   int // 1-12
	ISOWeek int
	Weekday int // 0=Mon .. 6=Sun
	Amount  decimal.Decimal
}

// NewDailyCell derives the heatmap coordinates of d.
func NewDailyCell(d core.Date, amount decimal.Decimal) DailyCell {
	return DailyCell{
		Date:    d,
		Year:    d.Year(),
		Month:   int(d.Month()),
		ISOWeek: d.ISOWeek(),
		Weekday: d.Weekday(),
		Amount:  amount,
	}
}

// SumByDate collapses same-day transactions into one signed total per date.
func SumByDate(ledger core.Ledger) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal, len(ledger))
	for _, t := range ledger {
		k := t.Date.Key()
		if prev, ok := sums[k]; ok {
			sums[k] = prev.Add(t.Amount)
		} else {
			sums[k] = t.Amount
		}
	}
	return sums
}

// BuildGrid returns one cell per day from January 1st of the earliest year in
// the ledger to December 31st of the latest one. Days without transactions
// have a zero amount. ISO week numbers are not adjusted at year boundaries,
// so early January days may carry week 52 or 53.
func BuildGrid(ledger core.Ledger) ([]DailyCell, error) {
	if ledger.IsEmpty() {
		return nil, ErrEmptyLedger
	}

	sums := SumByDate(ledger)
	minYear, maxYear := ledger[0].Date.Year(), ledger[0].Date.Year()
	for _, t := range ledger[1:] {
		y := t.Date.Year()
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}

	start := core.NewDate(minYear, 1, 1)
	end := core.NewDate(maxYear, 12, 31)
	cells := make([]DailyCell, 0, int(end.Sub(start.Time).Hours()/24)+1)
	for t := start.Time; !t.After(end.Time); t = t.AddDate(0, 0, 1) {
		d := core.Date{Time: t}
		amount, ok := sums[d.Key()]
		if !ok {
			amount = decimal.Zero
		}
		cells = append(cells, NewDailyCell(d, amount))
	}
	return cells, nil
}
