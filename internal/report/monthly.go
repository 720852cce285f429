package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"ledgerviz/internal/core"
)

// MonthlyBucket sums the income and expenses of one calendar month.
type MonthlyBucket struct {
	MonthStart core.Date
	// Bank of the last transaction seen for the month; buckets are not split per bank.
	Bank     string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Savings is income minus expenses.
func (b MonthlyBucket) Savings() decimal.Decimal {
	return b.Income.Sub(b.Expenses)
}

// SplitAmount returns the income and expense parts of a signed amount.
// Both results are non-negative and at most one of them is non-zero.
func SplitAmount(amount decimal.Decimal) (income, expenses decimal.Decimal) {
	switch amount.Sign() {
	case 1:
		return amount, decimal.Zero
	case -1:
		return decimal.Zero, amount.Abs()
	}
	return decimal.Zero, decimal.Zero
}

// Aggregate buckets the ledger by month start, one bucket per month that has
// at least one transaction, in chronological order.
func Aggregate(ledger core.Ledger) []MonthlyBucket {
	byMonth := make(map[string]*MonthlyBucket)
	for _, t := range ledger {
		start := t.Date.MonthStart()
		b, ok := byMonth[start.Key()]
		if !ok {
			b = &MonthlyBucket{MonthStart: start, Income: decimal.Zero, Expenses: decimal.Zero}
			byMonth[start.Key()] = b
		}
		income, expenses := SplitAmount(t.Amount)
		b.Income = b.Income.Add(income)
		b.Expenses = b.Expenses.Add(expenses)
		b.Bank = t.Bank
	}

	buckets := make([]MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].MonthStart.Before(buckets[j].MonthStart.Time)
	})
	return buckets
}
