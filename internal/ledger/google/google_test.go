package google

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ledgerviz/internal/ledger"
)

func TestParseValues(t *testing.T) {
	values := [][]any{
		{"Date", "Bank", "Description", "Amount"},
		{"2024-01-15", "Chase", "Salary", 1500.0},
		{"2024-01-20", "Chase", "Rent", "-800"},
		{},
		{"2024-02-01", "Chase", "Coffee", "(4.50)"},
	}
	l, err := parseValues(values)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(l) != 3 {
		t.Fatalf("len: got %d want 3", len(l))
	}
	if !l.Total().Equal(decimal.RequireFromString("695.5")) {
		t.Fatalf("total: %s", l.Total())
	}
}

func TestParseValues_UnexpectedHeader(t *testing.T) {
	_, err := parseValues([][]any{{"When", "What"}, {"2024-01-01", "x"}})
	if err == nil || !strings.Contains(err.Error(), "unexpected ledger header") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReader_Load(t *testing.T) {
	var gotRange string
	r := &Reader{
		sheet: "Ledger",
		values: func(_ context.Context, rng string) ([][]any, error) {
			gotRange = rng
			return [][]any{{"date", "amount"}, {"2024-03-03", "12"}}, nil
		},
	}
	l, err := r.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if gotRange != "Ledger!A:Z" {
		t.Fatalf("range: %q", gotRange)
	}
	if len(l) != 1 {
		t.Fatalf("len: %d", len(l))
	}
}

func TestReader_LoadEmptySheetIsAbsent(t *testing.T) {
	r := &Reader{
		sheet: DefaultSheet,
		values: func(context.Context, string) ([][]any, error) {
			return [][]any{{"date", "amount"}}, nil
		},
	}
	if _, err := r.Load(context.Background()); !errors.Is(err, ledger.ErrNoLedger) {
		t.Fatalf("got %v", err)
	}
}

func TestReader_LoadPropagatesAPIError(t *testing.T) {
	boom := errors.New("quota exceeded")
	r := &Reader{
		sheet:  DefaultSheet,
		values: func(context.Context, string) ([][]any, error) { return nil, boom },
	}
	if _, err := r.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), "  ", "")
	if err == nil || err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewSheetsService_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := newSheetsService(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("unexpected error: %v", err)
	}
}
