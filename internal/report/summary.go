package report

import (
	"github.com/shopspring/decimal"

	"ledgerviz/internal/core"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the cash-flow totals shown under the chart. Totals are
// rounded to whole units before the savings rate is derived from them.
type Summary struct {
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Savings     decimal.Decimal
	SavingsRate decimal.Decimal // percent
}

// Summarize totals the buckets. The savings rate is zero when there is no income.
func Summarize(buckets []MonthlyBucket) Summary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, b := range buckets {
		income = income.Add(b.Income)
		expenses = expenses.Add(b.Expenses)
	}

	s := Summary{
		Income:      core.RoundWhole(income),
		Expenses:    core.RoundWhole(expenses),
		Savings:     core.RoundWhole(income.Sub(expenses)),
		SavingsRate: decimal.Zero,
	}
	if s.Income.IsPositive() {
		s.SavingsRate = s.Savings.Div(s.Income).Mul(hundred)
	}
	return s
}

// FormattedSavingsRate renders the rate with two decimals, e.g. "86.67%".
// Halves round to even.
func (s Summary) FormattedSavingsRate() string {
	return s.SavingsRate.RoundBank(2).StringFixed(2) + "%"
}
