package report

import (
	"github.com/shopspring/decimal"

	"ledgerviz/internal/core"
)

func tx(y, m, d int, amount string) core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(y, m, d),
		Bank:        "Test Bank",
		Description: "t",
		Amount:      decimal.RequireFromString(amount),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
