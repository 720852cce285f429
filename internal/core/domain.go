package core

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Date is a calendar day. The wall clock is always midnight UTC.
	Date struct {
		time.Time
	}

	// Transaction is one row of a bank statement ledger. Positive amounts are
	// income, negative amounts are expenses.
	Transaction struct {
		Date        Date
		Bank        string
		Description string
		Amount      decimal.Decimal
	}

	// Ledger is the ordered set of transactions for one session.
	Ledger []Transaction
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrDescriptionTooLong = errors.New("description too long (max 500 characters)")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day, keeping the day as seen in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate accepts ISO dates (with or without a time part).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, ErrInvalidDate
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Key is the ISO representation used for grouping and wire formats.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), int(d.Month()), 1)
}

// Weekday returns the day of the week with Monday as 0 and Sunday as 6.
func (d Date) Weekday() int {
	return (int(d.Time.Weekday()) + 6) % 7
}

// ISOWeek returns the ISO-8601 week number, ignoring the ISO week-year.
func (d Date) ISOWeek() int {
	_, w := d.Time.ISOWeek()
	return w
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 500 {
		return ErrDescriptionTooLong
	}
	return nil
}

// IsEmpty reports whether the ledger holds no transactions.
func (l Ledger) IsEmpty() bool {
	return len(l) == 0
}

// Total returns the signed sum of every amount in the ledger.
func (l Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, t := range l {
		total = total.Add(t.Amount)
	}
	return total
}

// Validate checks every transaction and reports the first offending row.
func (l Ledger) Validate() error {
	for i, t := range l {
		if err := t.Validate(); err != nil {
			return &RowError{Row: i, Err: err}
		}
	}
	return nil
}

// RowError ties a validation failure to its position in the ledger.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return "row " + strconv.Itoa(e.Row) + ": " + e.Err.Error()
}

func (e *RowError) Unwrap() error { return e.Err }
