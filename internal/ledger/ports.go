// Package ledger defines where the transaction ledger comes from.
//
// The dashboard never owns the ledger: a backend (CSV seed, SQLite, Google
// Sheets) supplies it read-only for each render pass.
package ledger

import (
	"context"
	"errors"

	"ledgerviz/internal/core"
)

// ErrNoLedger marks the absent-input state: nothing has been imported yet.
// It is not a failure; the page offers the statement conversion action instead.
var ErrNoLedger = errors.New("no ledger loaded")

// ErrMissingBatchID is returned by writers when a batch has no identity.
var ErrMissingBatchID = errors.New("batch id required")

// Ports for ledger adapters.
type (
	Reader interface {
		// Load returns the full ledger, or ErrNoLedger when none is available.
		Load(ctx context.Context) (core.Ledger, error)
	}

	Writer interface {
		// Append stores a batch of transactions once. Re-appending a known
		// batch id is a no-op that reports zero stored rows.
		Append(ctx context.Context, batchID string, txs []core.Transaction) (stored int, err error)
	}
)

// IsAbsent reports whether err or the ledger means there is nothing to render.
func IsAbsent(l core.Ledger, err error) bool {
	return errors.Is(err, ErrNoLedger) || (err == nil && l.IsEmpty())
}
