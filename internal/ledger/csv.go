package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"ledgerviz/internal/core"
)

// ReadCSV parses a normalized ledger CSV (date,bank,description,amount).
// An empty input yields an empty ledger.
func ReadCSV(r io.Reader) (core.Ledger, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return core.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv records: %w", err)
	}
	return ParseRows(header, records)
}

// ReadCSVFile opens path and parses it with ReadCSV.
func ReadCSVFile(path string) (core.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger file %s: %w", path, err)
	}
	defer f.Close()
	l, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse ledger file %s: %w", path, err)
	}
	return l, nil
}

// WriteCSV writes the ledger with a header row.
func WriteCSV(w io.Writer, l core.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, t := range l {
		if err := cw.Write(FormatRow(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
