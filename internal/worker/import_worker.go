// Package worker stores transaction batches received from the import queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledgerviz/internal/amqp"
	"ledgerviz/internal/core"
	"ledgerviz/internal/ledger"
	applog "ledgerviz/internal/log"
)

// Counter is implemented by writers that can report their size.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// ImportWorker appends queued batches to the ledger store.
type ImportWorker struct {
	writer ledger.Writer
	// onStored runs after a batch adds rows, e.g. to drop cached snapshots.
	onStored func()
}

func NewImportWorker(writer ledger.Writer, onStored func()) *ImportWorker {
	return &ImportWorker{writer: writer, onStored: onStored}
}

// HandleBatch decodes and stores one batch. Malformed batches are wrapped in
// amqp.ErrDrop so they are not redelivered; storage failures are retried.
// Replaying a stored batch is a no-op.
func (w *ImportWorker) HandleBatch(ctx context.Context, msg *amqp.TransactionBatchMessage) error {
	logger := slog.With(
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldBatchID, msg.BatchID)

	txs, err := msg.Ledger()
	if err != nil {
		return fmt.Errorf("%w: decode batch %s: %v", amqp.ErrDrop, msg.BatchID, err)
	}
	if err := txs.Validate(); err != nil {
		return fmt.Errorf("%w: validate batch %s: %v", amqp.ErrDrop, msg.BatchID, err)
	}

	stored, err := w.writer.Append(ctx, msg.BatchID, txs)
	switch {
	case errors.Is(err, ledger.ErrMissingBatchID), errors.Is(err, core.ErrInvalidDate):
		return fmt.Errorf("%w: %v", amqp.ErrDrop, err)
	case err != nil:
		return fmt.Errorf("append batch %s: %w", msg.BatchID, err)
	}

	if stored == 0 {
		logger.InfoContext(ctx, "Batch already imported", "source", msg.Source)
		return nil
	}
	if w.onStored != nil {
		w.onStored()
	}
	logger.InfoContext(ctx, "Batch imported",
		"source", msg.Source,
		applog.FieldTransactions, stored,
		"total", txs.Total().StringFixed(2))
	return nil
}

// StartupCheck logs the current store size when the writer can report it.
func (w *ImportWorker) StartupCheck(ctx context.Context) error {
	c, ok := w.writer.(Counter)
	if !ok {
		return nil
	}
	n, err := c.Count(ctx)
	if err != nil {
		return fmt.Errorf("count stored transactions: %w", err)
	}
	slog.InfoContext(ctx, "Import worker ready",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldOperation, applog.OpStartup,
		applog.FieldTransactions, n)
	return nil
}
