package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ledgerviz/internal/core"
)

// TransactionPayload is the wire form of one ledger row. Amounts travel as
// decimal strings so no precision is lost in JSON.
type TransactionPayload struct {
	Date        string `json:"date"`
	Bank        string `json:"bank"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// TransactionBatchMessage carries one statement import. BatchID makes
// redelivery harmless: writers store a batch at most once.
type TransactionBatchMessage struct {
	BatchID      string               `json:"batch_id"`
	Source       string               `json:"source"`
	Transactions []TransactionPayload `json:"transactions"`
	Timestamp    time.Time            `json:"timestamp"`
}

func NewTransactionBatchMessage(source string, txs []core.Transaction) *TransactionBatchMessage {
	payload := make([]TransactionPayload, len(txs))
	for i, t := range txs {
		payload[i] = TransactionPayload{
			Date:        t.Date.Key(),
			Bank:        t.Bank,
			Description: t.Description,
			Amount:      t.Amount.String(),
		}
	}
	return &TransactionBatchMessage{
		BatchID:      uuid.NewString(),
		Source:       source,
		Transactions: payload,
		Timestamp:    time.Now().UTC(),
	}
}

// Ledger decodes the payload rows, failing on the first malformed one.
func (m *TransactionBatchMessage) Ledger() (core.Ledger, error) {
	out := make(core.Ledger, 0, len(m.Transactions))
	for i, p := range m.Transactions {
		date, err := core.ParseDate(p.Date)
		if err != nil {
			return nil, &core.RowError{Row: i, Err: fmt.Errorf("%w %q", err, p.Date)}
		}
		amount, err := core.ParseAmount(p.Amount)
		if err != nil {
			return nil, &core.RowError{Row: i, Err: fmt.Errorf("%w %q", err, p.Amount)}
		}
		out = append(out, core.Transaction{Date: date, Bank: p.Bank, Description: p.Description, Amount: amount})
	}
	return out, nil
}

func (m *TransactionBatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionBatchMessageFromJSON(data []byte) (*TransactionBatchMessage, error) {
	var msg TransactionBatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(msg.BatchID); err != nil {
		return nil, fmt.Errorf("invalid batch id %q: %w", msg.BatchID, err)
	}
	return &msg, nil
}
