package ledger

import (
	"fmt"
	"strings"

	"ledgerviz/internal/core"
)

// Header names understood in CSV files and sheets, case-insensitive.
const (
	ColumnDate        = "date"
	ColumnBank        = "bank"
	ColumnDescription = "description"
	ColumnAmount      = "amount"
)

// Header is the canonical column order written by exporters and publishers.
var Header = []string{ColumnDate, ColumnBank, ColumnDescription, ColumnAmount}

// ParseRows converts a header row plus data rows into a ledger. Columns are
// located by name; date and amount are required. Blank rows are skipped.
func ParseRows(header []string, rows [][]string) (core.Ledger, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, required := range []string{ColumnDate, ColumnAmount} {
		if _, ok := idx[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected ledger header: missing %s; got headers=%v", strings.Join(missing, ","), header)
	}

	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make(core.Ledger, 0, len(rows))
	for n, row := range rows {
		if isBlank(row) {
			continue
		}
		date, err := core.ParseDate(get(row, ColumnDate))
		if err != nil {
			return nil, &core.RowError{Row: n + 1, Err: fmt.Errorf("%w %q", err, get(row, ColumnDate))}
		}
		amount, err := core.ParseAmount(get(row, ColumnAmount))
		if err != nil {
			return nil, &core.RowError{Row: n + 1, Err: fmt.Errorf("%w %q", err, get(row, ColumnAmount))}
		}
		t := core.Transaction{
			Date:        date,
			Bank:        get(row, ColumnBank),
			Description: get(row, ColumnDescription),
			Amount:      amount,
		}
		if err := t.Validate(); err != nil {
			return nil, &core.RowError{Row: n + 1, Err: err}
		}
		out = append(out, t)
	}
	return out, nil
}

// FormatRow is the inverse of ParseRows for one transaction in Header order.
func FormatRow(t core.Transaction) []string {
	return []string{t.Date.Key(), t.Bank, t.Description, t.Amount.String()}
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
