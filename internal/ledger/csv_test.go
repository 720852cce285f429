package ledger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ledgerviz/internal/core"
)

func TestReadCSV(t *testing.T) {
	in := "date,bank,description,amount\n" +
		"2024-01-15,Chase,Salary,1000\n" +
		"2024-01-20,Chase,\"Rent, January\",-800.25\n"
	l, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(l) != 2 {
		t.Fatalf("len: %d", len(l))
	}
	if l[1].Description != "Rent, January" {
		t.Fatalf("description: %q", l[1].Description)
	}
	if !l.Total().Equal(decimal.RequireFromString("199.75")) {
		t.Fatalf("total: %s", l.Total())
	}
}

func TestReadCSV_Empty(t *testing.T) {
	l, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !l.IsEmpty() {
		t.Fatalf("expected empty ledger, got %d", len(l))
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	orig := core.Ledger{
		{Date: core.NewDate(2024, 3, 1), Bank: "Ally", Description: "Interest", Amount: decimal.RequireFromString("3.14")},
		{Date: core.NewDate(2024, 3, 2), Bank: "Ally", Description: "Groceries", Amount: decimal.RequireFromString("-56.78")},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, orig); err != nil {
		t.Fatalf("write: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != len(orig) {
		t.Fatalf("len: got %d", len(got))
	}
	for i := range orig {
		if got[i].Date != orig[i].Date || !got[i].Amount.Equal(orig[i].Amount) || got[i].Description != orig[i].Description {
			t.Fatalf("row %d: got %+v want %+v", i, got[i], orig[i])
		}
	}
}

func TestReadCSVFile_Missing(t *testing.T) {
	if _, err := ReadCSVFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
