// Package export writes the derived report as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"ledgerviz/internal/chart"
	"ledgerviz/internal/report"
)

const (
	CashFlowSheet = "Cash Flow"
	DailySheet    = "Daily"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	Filename      = "ledger-report.xlsx"
)

var (
	cashFlowHeader = []any{"Month", "Bank", "Income", "Expenses", "Savings"}
	dailyHeader    = []any{"Date", "Year", "Month", "ISO Week", "Weekday", "Amount"}
)

// WriteReport writes a two-sheet workbook: monthly buckets with the summary
// metrics underneath, and the dense daily grid.
func WriteReport(w io.Writer, buckets []report.MonthlyBucket, summary report.Summary, cells []report.DailyCell) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CashFlowSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(DailySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := writeCashFlow(f, styles, buckets, summary); err != nil {
		return fmt.Errorf("write %s: %w", CashFlowSheet, err)
	}
	if err := writeDaily(f, styles, cells); err != nil {
		return fmt.Errorf("write %s: %w", DailySheet, err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type styles struct {
	header, money, income, expenses, label int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{chart.DefaultColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	// NumFmt 4 is "#,##0.00".
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		return s, fmt.Errorf("money style: %w", err)
	}
	if s.income, err = f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Color: chart.IncomeColor}}); err != nil {
		return s, fmt.Errorf("income style: %w", err)
	}
	if s.expenses, err = f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Color: chart.ExpensesColor}}); err != nil {
		return s, fmt.Errorf("expenses style: %w", err)
	}
	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "right"}}); err != nil {
		return s, fmt.Errorf("label style: %w", err)
	}
	return s, nil
}

func writeCashFlow(f *excelize.File, st styles, buckets []report.MonthlyBucket, summary report.Summary) error {
	sheet := CashFlowSheet
	if err := f.SetSheetRow(sheet, "A1", &cashFlowHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", st.header); err != nil {
		return err
	}
	row := 2
	for _, b := range buckets {
		values := []any{
			b.MonthStart.Format("2006-01"),
			b.Bank,
			b.Income.InexactFloat64(),
			b.Expenses.InexactFloat64(),
			b.Savings().InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
			return err
		}
		row++
	}
	if len(buckets) > 0 {
		last := row - 1
		_ = f.SetCellStyle(sheet, "C2", cell(3, last), st.income)
		_ = f.SetCellStyle(sheet, "D2", cell(4, last), st.expenses)
		_ = f.SetCellStyle(sheet, "E2", cell(5, last), st.money)
	}

	row++
	for _, m := range chart.SummaryMetrics(summary) {
		if err := f.SetCellValue(sheet, cell(4, row), m.Title); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell(5, row), m.Value); err != nil {
			return err
		}
		_ = f.SetCellStyle(sheet, cell(4, row), cell(4, row), st.label)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "B", 14)
	_ = f.SetColWidth(sheet, "C", "E", 16)
	return nil
}

func writeDaily(f *excelize.File, st styles, cells []report.DailyCell) error {
	sheet := DailySheet
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	header := make([]any, len(dailyHeader))
	for i, h := range dailyHeader {
		header[i] = excelize.Cell{StyleID: st.header, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, c := range cells {
		values := []any{
			c.Date.Key(),
			c.Year,
			c.Month,
			c.ISOWeek,
			report.Weekdays[c.Weekday],
			excelize.Cell{StyleID: st.money, Value: c.Amount.InexactFloat64()},
		}
		if err := sw.SetRow(cell(1, i+2), values); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
