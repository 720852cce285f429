package amqp

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledgerviz/internal/core"
)

func TestNewTransactionBatchMessage(t *testing.T) {
	txs := []core.Transaction{
		{Date: core.NewDate(2024, 7, 4), Bank: "Chase", Description: "Fireworks", Amount: decimal.RequireFromString("-49.99")},
	}
	msg := NewTransactionBatchMessage("statement.csv", txs)

	if _, err := uuid.Parse(msg.BatchID); err != nil {
		t.Fatalf("batch id is not a uuid: %q", msg.BatchID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
	p := msg.Transactions[0]
	if p.Date != "2024-07-04" || p.Amount != "-49.99" || p.Bank != "Chase" {
		t.Fatalf("payload: %+v", p)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := TransactionBatchMessageFromJSON(body)
	if err != nil {
		t.Fatal(err)
	}
	l, err := decoded.Ledger()
	if err != nil {
		t.Fatal(err)
	}
	if len(l) != 1 || !l[0].Amount.Equal(txs[0].Amount) || l[0].Date != txs[0].Date {
		t.Fatalf("decoded ledger: %+v", l)
	}
}

func TestTransactionBatchMessageFromJSON_Rejects(t *testing.T) {
	tests := map[string]string{
		"not json":    `{`,
		"bad batchID": `{"batch_id":"nope","transactions":[]}`,
		"wrong type":  `{"batch_id":"6f1c1c0e-2f0a-4d7b-9a53-0a4c3c1d2e3f","transactions":"x"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := TransactionBatchMessageFromJSON([]byte(body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTransactionBatchMessage_LedgerBadRow(t *testing.T) {
	msg := &TransactionBatchMessage{Transactions: []TransactionPayload{
		{Date: "2024-01-01", Amount: "1"},
		{Date: "2024-01-02", Amount: "one"},
	}}
	_, err := msg.Ledger()
	var rowErr *core.RowError
	if !errors.As(err, &rowErr) || rowErr.Row != 1 || !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v", err)
	}
}
