package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"ledgerviz/internal/core"
	"ledgerviz/internal/report"
)

func TestWriteReport(t *testing.T) {
	l := core.Ledger{
		{Date: core.NewDate(2024, 1, 15), Bank: "Chase", Amount: decimal.NewFromInt(1000)},
		{Date: core.NewDate(2024, 1, 20), Bank: "Chase", Amount: decimal.NewFromInt(-200)},
		{Date: core.NewDate(2024, 2, 10), Bank: "Chase", Amount: decimal.NewFromInt(500)},
	}
	buckets := report.Aggregate(l)
	cells, err := report.BuildGrid(l)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, buckets, report.Summarize(buckets), cells); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != CashFlowSheet || sheets[1] != DailySheet {
		t.Fatalf("sheets: %v", sheets)
	}

	rows, err := f.GetRows(CashFlowSheet)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][0] != "Month" || rows[1][0] != "2024-01" || rows[2][0] != "2024-02" {
		t.Fatalf("cash flow rows: %v", rows[:3])
	}
	if got, _ := f.GetCellValue(CashFlowSheet, "E5"); got != "$1,500" {
		t.Fatalf("income metric: got %q", got)
	}
	if got, _ := f.GetCellValue(CashFlowSheet, "E8"); got != "86.67%" {
		t.Fatalf("savings rate metric: got %q", got)
	}

	daily, err := f.GetRows(DailySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(daily) != 367 {
		t.Fatalf("daily rows: got %d want 367", len(daily))
	}
	if daily[1][0] != "2024-01-01" || daily[1][4] != "Mon" {
		t.Fatalf("first day: %v", daily[1])
	}
}
