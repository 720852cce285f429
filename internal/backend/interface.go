// Package backend picks and wires the ledger source named by DATA_BACKEND.
package backend

import (
	"context"
	"time"

	"ledgerviz/internal/ledger"
)

type CleanupFunc func() error

// BackendResult is a ready ledger source. Writer is nil for read-only
// sources. Invalidate drops any cached snapshot after a write.
type BackendResult struct {
	Type       BackendType
	Reader     ledger.Reader
	Writer     ledger.Writer
	Invalidate func()
	Cleanup    CleanupFunc
}

// Close runs Cleanup when set.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

type Config struct {
	Type BackendType

	// memory
	LedgerFile string

	// sqlite
	SQLiteDBPath string

	// sheets
	GoogleSpreadsheetID string
	GoogleLedgerSheet   string

	// CacheTTL wraps the reader in a ledger.CachedReader when positive.
	CacheTTL time.Duration
}

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
