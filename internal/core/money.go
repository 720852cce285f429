// Package core provides the ledger domain types and amount handling.
//
// Amounts are kept as shopspring decimals so that sums over a ledger stay
// exact; conversion to float64 happens only at the charting boundary.
package core

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a signed decimal string into a decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. When both
// appear, the right-most one is the decimal separator and the other one is a
// thousands separator. Commas alone are thousands separators when they split
// the integer into groups of three (1,234 or 1,234,567); otherwise a single
// comma is the decimal separator. Currency symbols, spaces and a leading plus
// sign are ignored, and an amount wrapped in parentheses is negative.
//
// Examples:
//
//	ParseAmount("-12.34")    -> -12.34
//	ParseAmount("12,34")     -> 12.34
//	ParseAmount("$1,234.50") -> 1234.5
//	ParseAmount("$1,234")    -> 1234
//	ParseAmount("(80.00)")   -> -80
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', ' ', '\u00a0', '+':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		switch {
		case groupedByThousands(s, ","):
			s = strings.ReplaceAll(s, ",", "")
		case strings.Count(s, ",") > 1:
			return decimal.Zero, ErrInvalidAmount
		default:
			s = strings.Replace(s, ",", ".", 1)
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// groupedByThousands reports whether sep splits the unsigned integer s into a
// leading group of one to three digits followed by groups of exactly three.
func groupedByThousands(s, sep string) bool {
	groups := strings.Split(strings.TrimPrefix(s, "-"), sep)
	if len(groups) < 2 || len(groups[0]) < 1 || len(groups[0]) > 3 {
		return false
	}
	for i, g := range groups {
		if i > 0 && len(g) != 3 {
			return false
		}
		for _, r := range g {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// RoundWhole rounds half to even, matching how report totals are shown.
func RoundWhole(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(0)
}

// FormatWholeDollars renders d rounded to whole dollars with thousands
// separators, e.g. "$1,300" or "-$1,300".
func FormatWholeDollars(d decimal.Decimal) string {
	n := RoundWhole(d).IntPart()
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

// FormatDollarsCents renders a chart value with two decimals, e.g. "$1,234.56".
func FormatDollarsCents(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
