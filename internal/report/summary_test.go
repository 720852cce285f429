package report

import (
	"testing"

	"ledgerviz/internal/core"
)

func TestSummarizeScenario(t *testing.T) {
	s := Summarize(Aggregate(core.Ledger{
		tx(2024, 1, 15, "1000"),
		tx(2024, 1, 20, "-200"),
		tx(2024, 2, 1, "500"),
	}))
	if !s.Income.Equal(dec("1500")) || !s.Expenses.Equal(dec("200")) || !s.Savings.Equal(dec("1300")) {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if got := s.FormattedSavingsRate(); got != "86.67%" {
		t.Fatalf("savings rate = %q, want 86.67%%", got)
	}
}

func TestSummarizeZeroIncome(t *testing.T) {
	s := Summarize([]MonthlyBucket{{Income: dec("0"), Expenses: dec("50")}})
	if got := s.FormattedSavingsRate(); got != "0.00%" {
		t.Fatalf("savings rate = %q, want 0.00%%", got)
	}
	if !s.Savings.Equal(dec("-50")) {
		t.Fatalf("savings = %s", s.Savings)
	}
	if got := core.FormatWholeDollars(s.Savings); got != "-$50" {
		t.Fatalf("formatted savings = %q", got)
	}
}

func TestSummarizeRoundsBeforeRate(t *testing.T) {
	s := Summarize([]MonthlyBucket{{Income: dec("100.4"), Expenses: dec("50.6")}})
	if !s.Income.Equal(dec("100")) || !s.Expenses.Equal(dec("51")) || !s.Savings.Equal(dec("50")) {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if got := s.FormattedSavingsRate(); got != "50.00%" {
		t.Fatalf("savings rate = %q", got)
	}
}

func TestFormattedSavingsRateRoundsHalfToEven(t *testing.T) {
	cases := []struct {
		income, expenses string
		want             string
	}{
		{"800", "799", "0.12%"},   // 0.125
		{"800", "797", "0.38%"},   // 0.375
		{"1500", "200", "86.67%"}, // 86.666...
	}
	for _, tc := range cases {
		s := Summarize([]MonthlyBucket{{Income: dec(tc.income), Expenses: dec(tc.expenses)}})
		if got := s.FormattedSavingsRate(); got != tc.want {
			t.Errorf("income=%s expenses=%s: got %q want %q", tc.income, tc.expenses, got, tc.want)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.Income.IsZero() || !s.Savings.IsZero() || s.FormattedSavingsRate() != "0.00%" {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
