package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ledgerviz/internal/amqp"
	"ledgerviz/internal/core"
	"ledgerviz/internal/ledger"
	applog "ledgerviz/internal/log"
)

// Publisher is the queue side of an import.
type Publisher interface {
	PublishBatch(ctx context.Context, msg *amqp.TransactionBatchMessage) error
}

// ImportService hands a parsed statement to the store, through the queue when
// one is configured and directly otherwise.
type ImportService struct {
	publisher Publisher
	writer    ledger.Writer
}

func NewImportService(publisher Publisher, writer ledger.Writer) *ImportService {
	return &ImportService{publisher: publisher, writer: writer}
}

// Import returns the batch id assigned to txs.
func (s *ImportService) Import(ctx context.Context, source string, txs core.Ledger) (string, error) {
	if txs.IsEmpty() {
		return "", ledger.ErrNoLedger
	}
	if err := txs.Validate(); err != nil {
		return "", fmt.Errorf("validate %s: %w", source, err)
	}

	if s.publisher != nil {
		msg := amqp.NewTransactionBatchMessage(source, txs)
		if err := s.publisher.PublishBatch(ctx, msg); err != nil {
			return "", fmt.Errorf("publish %s: %w", source, err)
		}
		return msg.BatchID, nil
	}

	if s.writer == nil {
		return "", fmt.Errorf("import %s: no publisher or writer configured", source)
	}
	batchID := uuid.NewString()
	n, err := s.writer.Append(ctx, batchID, txs)
	if err != nil {
		return "", fmt.Errorf("append %s: %w", source, err)
	}
	slog.InfoContext(ctx, "Statement imported directly",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldBatchID, batchID,
		applog.FieldTransactions, n,
		"source", source)
	return batchID, nil
}
