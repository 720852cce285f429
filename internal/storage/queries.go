package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type TransactionRow struct {
	ID          int64
	TxDate      string
	Bank        string
	Description string
	Amount      string
	BatchID     string
}

const claimBatch = `
INSERT OR IGNORE INTO import_batches (batch_id, row_count) VALUES (?, ?)
`

// ClaimBatch records batchID and reports whether it was new.
func (q *Queries) ClaimBatch(ctx context.Context, batchID string, rowCount int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, claimBatch, batchID, rowCount)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

const hasBatch = `
SELECT COUNT(*) FROM import_batches WHERE batch_id = ?
`

func (q *Queries) HasBatch(ctx context.Context, batchID string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, hasBatch, batchID).Scan(&n)
	return n > 0, err
}

const createTransaction = `
INSERT INTO transactions (tx_date, bank, description, amount, batch_id)
VALUES (?, ?, ?, ?, ?)
`

type CreateTransactionParams struct {
	TxDate      string
	Bank        string
	Description string
	Amount      string
	BatchID     string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.ExecContext(ctx, createTransaction,
		arg.TxDate, arg.Bank, arg.Description, arg.Amount, arg.BatchID)
	return err
}

const listTransactions = `
SELECT id, tx_date, bank, description, amount, batch_id
FROM transactions
ORDER BY tx_date, id
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TransactionRow
	for rows.Next() {
		var i TransactionRow
		if err := rows.Scan(&i.ID, &i.TxDate, &i.Bank, &i.Description, &i.Amount, &i.BatchID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countTransactions = `
SELECT COUNT(*) FROM transactions
`

func (q *Queries) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTransactions).Scan(&n)
	return n, err
}
