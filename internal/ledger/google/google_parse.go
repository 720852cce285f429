package google

import (
	"fmt"
	"strings"

	"ledgerviz/internal/core"
	"ledgerviz/internal/ledger"
)

// parseValues converts a values matrix as returned by the Sheets API into a
// ledger. The first row is the header.
func parseValues(values [][]any) (core.Ledger, error) {
	if len(values) == 0 {
		return core.Ledger{}, nil
	}
	rows := make([][]string, 0, len(values)-1)
	for _, v := range values[1:] {
		rows = append(rows, toStrings(v))
	}
	return ledger.ParseRows(toStrings(values[0]), rows)
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
