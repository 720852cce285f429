package report

import (
	"testing"

	"ledgerviz/internal/core"
)

func TestAggregateScenario(t *testing.T) {
	ledger := core.Ledger{
		tx(2024, 1, 15, "1000"),
		tx(2024, 1, 20, "-200"),
		tx(2024, 2, 1, "500"),
	}
	buckets := Aggregate(ledger)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}

	jan, feb := buckets[0], buckets[1]
	if jan.MonthStart.Key() != "2024-01-01" || !jan.Income.Equal(dec("1000")) || !jan.Expenses.Equal(dec("200")) {
		t.Errorf("unexpected january bucket: %s income=%s expenses=%s", jan.MonthStart.Key(), jan.Income, jan.Expenses)
	}
	if feb.MonthStart.Key() != "2024-02-01" || !feb.Income.Equal(dec("500")) || !feb.Expenses.IsZero() {
		t.Errorf("unexpected february bucket: %s income=%s expenses=%s", feb.MonthStart.Key(), feb.Income, feb.Expenses)
	}
	if !jan.Savings().Equal(dec("800")) {
		t.Errorf("january savings = %s", jan.Savings())
	}
}

func TestAggregateSortsAndConservesTotals(t *testing.T) {
	ledger := core.Ledger{
		tx(2025, 3, 9, "-12.34"),
		tx(2023, 12, 31, "99.99"),
		tx(2025, 3, 1, "0"),
		tx(2024, 7, 4, "-0.01"),
		tx(2023, 12, 1, "-50"),
	}
	buckets := Aggregate(ledger)

	var keys []string
	income, expenses := dec("0"), dec("0")
	for _, b := range buckets {
		keys = append(keys, b.MonthStart.Key())
		income = income.Add(b.Income)
		expenses = expenses.Add(b.Expenses)
		if b.Income.IsNegative() || b.Expenses.IsNegative() {
			t.Errorf("bucket %s has negative parts", b.MonthStart.Key())
		}
	}
	want := []string{"2023-12-01", "2024-07-01", "2025-03-01"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if !income.Sub(expenses).Equal(ledger.Total()) {
		t.Fatalf("income-expenses = %s, ledger total = %s", income.Sub(expenses), ledger.Total())
	}
}

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Fatalf("expected no buckets, got %d", len(got))
	}
}

func TestAggregateCarriesLastBank(t *testing.T) {
	a := tx(2024, 5, 1, "10")
	a.Bank = "First"
	b := tx(2024, 5, 2, "10")
	b.Bank = "Second"
	buckets := Aggregate(core.Ledger{a, b})
	if len(buckets) != 1 || buckets[0].Bank != "Second" {
		t.Fatalf("unexpected buckets: %+v", buckets)
	}
}

func TestSplitAmount(t *testing.T) {
	in, ex := SplitAmount(dec("-3.5"))
	if !in.IsZero() || !ex.Equal(dec("3.5")) {
		t.Errorf("negative split = %s/%s", in, ex)
	}
	in, ex = SplitAmount(dec("2"))
	if !in.Equal(dec("2")) || !ex.IsZero() {
		t.Errorf("positive split = %s/%s", in, ex)
	}
	in, ex = SplitAmount(dec("0"))
	if !in.IsZero() || !ex.IsZero() {
		t.Errorf("zero split = %s/%s", in, ex)
	}
}
