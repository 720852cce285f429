package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ledgerviz/internal/amqp"
	"ledgerviz/internal/core"
	"ledgerviz/internal/ledger"
	"ledgerviz/internal/ledger/memory"
)

type failingWriter struct{ err error }

func (f failingWriter) Append(context.Context, string, []core.Transaction) (int, error) {
	return 0, f.err
}

func batch() *amqp.TransactionBatchMessage {
	return amqp.NewTransactionBatchMessage("test.csv", []core.Transaction{
		{Date: core.NewDate(2024, 1, 1), Bank: "B", Description: "Pay", Amount: decimal.NewFromInt(100)},
		{Date: core.NewDate(2024, 1, 2), Bank: "B", Description: "Food", Amount: decimal.NewFromInt(-30)},
	})
}

func TestImportWorker_HandleBatchIdempotent(t *testing.T) {
	store := memory.New(nil)
	notified := 0
	w := NewImportWorker(store, func() { notified++ })
	ctx := context.Background()
	msg := batch()

	for i := 0; i < 2; i++ {
		if err := w.HandleBatch(ctx, msg); err != nil {
			t.Fatalf("handle %d: %v", i, err)
		}
	}
	l, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(l) != 2 {
		t.Fatalf("stored rows: got %d want 2", len(l))
	}
	if notified != 1 {
		t.Fatalf("onStored calls: got %d want 1", notified)
	}
}

func TestImportWorker_MalformedBatchIsDropped(t *testing.T) {
	w := NewImportWorker(memory.New(nil), nil)
	msg := batch()
	msg.Transactions[1].Amount = "lots"
	if err := w.HandleBatch(context.Background(), msg); !errors.Is(err, amqp.ErrDrop) {
		t.Fatalf("got %v want ErrDrop", err)
	}
}

func TestImportWorker_StorageFailureIsRetried(t *testing.T) {
	boom := errors.New("disk full")
	w := NewImportWorker(failingWriter{err: boom}, nil)
	err := w.HandleBatch(context.Background(), batch())
	if !errors.Is(err, boom) || errors.Is(err, amqp.ErrDrop) {
		t.Fatalf("got %v", err)
	}
}

func TestImportWorker_MissingBatchIDIsDropped(t *testing.T) {
	w := NewImportWorker(failingWriter{err: ledger.ErrMissingBatchID}, nil)
	if err := w.HandleBatch(context.Background(), batch()); !errors.Is(err, amqp.ErrDrop) {
		t.Fatalf("got %v", err)
	}
}

func TestImportWorker_StartupCheckWithoutCounter(t *testing.T) {
	w := NewImportWorker(memory.New(nil), nil)
	if err := w.StartupCheck(context.Background()); err != nil {
		t.Fatal(err)
	}
}
