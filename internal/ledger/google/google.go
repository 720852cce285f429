// Package google reads the ledger from a Google Sheets tab whose first row
// names the date, bank, description and amount columns.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"ledgerviz/internal/core"
	"ledgerviz/internal/ledger"
	applog "ledgerviz/internal/log"
)

// DefaultSheet is the tab read when none is configured.
const DefaultSheet = "Transactions"

type valuesFunc func(ctx context.Context, rng string) ([][]any, error)

type Reader struct {
	spreadsheetID string
	sheet         string
	values        valuesFunc
}

var _ ledger.Reader = (*Reader)(nil)

// New creates a Sheets reader authenticated with service account credentials
// from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheet string) (*Reader, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	if strings.TrimSpace(sheet) == "" {
		sheet = DefaultSheet
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Reader{
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		values: func(ctx context.Context, rng string) ([][]any, error) {
			resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
			if err != nil {
				return nil, err
			}
			return resp.Values, nil
		},
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentials []byte
	switch {
	case inline != "":
		credentials = []byte(inline)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentials = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service",
		applog.FieldComponent, applog.ComponentLedger,
		"credentials_size", len(credentials),
		"scope", gsheet.SpreadsheetsReadonlyScope)
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// Load reads the whole tab. A tab with no data rows is reported as
// ledger.ErrNoLedger.
func (r *Reader) Load(ctx context.Context) (core.Ledger, error) {
	if r.values == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:Z", r.sheet)
	values, err := r.values(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	l, err := parseValues(values)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rng, err)
	}
	if l.IsEmpty() {
		return nil, ledger.ErrNoLedger
	}
	return l, nil
}
