// Package memory is the in-process ledger backend, optionally seeded from a
// normalized CSV file.
package memory

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"ledgerviz/internal/core"
	"ledgerviz/internal/ledger"
)

type Store struct {
	mu      sync.RWMutex
	items   core.Ledger
	batches map[string]struct{}
}

var (
	_ ledger.Reader = (*Store)(nil)
	_ ledger.Writer = (*Store)(nil)
)

func New(seed core.Ledger) *Store {
	return &Store{
		items:   append(core.Ledger(nil), seed...),
		batches: map[string]struct{}{},
	}
}

// NewFromFile seeds the store from a ledger CSV. A missing file yields an
// empty store; a malformed one is an error.
func NewFromFile(path string) (*Store, error) {
	l, err := ledger.ReadCSVFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

// Load returns a copy of the stored ledger, or ErrNoLedger when empty.
func (s *Store) Load(_ context.Context) (core.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return nil, ledger.ErrNoLedger
	}
	return append(core.Ledger(nil), s.items...), nil
}

func (s *Store) Append(_ context.Context, batchID string, txs []core.Transaction) (int, error) {
	if batchID == "" {
		return 0, ledger.ErrMissingBatchID
	}
	if err := core.Ledger(txs).Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.batches[batchID]; seen {
		return 0, nil
	}
	s.batches[batchID] = struct{}{}
	s.items = append(s.items, txs...)
	return len(txs), nil
}
