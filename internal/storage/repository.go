// Package storage persists imported transactions in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"ledgerviz/internal/core"
	"ledgerviz/internal/ledger"
	applog "ledgerviz/internal/log"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var (
	_ ledger.Reader = (*SQLiteRepository)(nil)
	_ ledger.Writer = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Debug("Ledger schema ready",
		applog.FieldComponent, applog.ComponentStorage,
		"path", dbPath,
		"schema_version", version)
	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks the database connection for readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Load implements ledger.Reader. Rows come back in date order.
func (r *SQLiteRepository) Load(ctx context.Context) (core.Ledger, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if len(rows) == 0 {
		return nil, ledger.ErrNoLedger
	}
	out := make(core.Ledger, 0, len(rows))
	for _, row := range rows {
		t, err := toTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", row.ID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Append implements ledger.Writer. The batch claim and its rows share one
// SQL transaction, so a batch is either fully stored or not at all.
func (r *SQLiteRepository) Append(ctx context.Context, batchID string, txs []core.Transaction) (int, error) {
	if batchID == "" {
		return 0, ledger.ErrMissingBatchID
	}
	if err := core.Ledger(txs).Validate(); err != nil {
		return 0, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	fresh, err := q.ClaimBatch(ctx, batchID, int64(len(txs)))
	if err != nil {
		return 0, fmt.Errorf("claim batch %s: %w", batchID, err)
	}
	if !fresh {
		slog.InfoContext(ctx, "Batch already imported, skipping",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldBatchID, batchID)
		return 0, nil
	}
	for _, t := range txs {
		err := q.CreateTransaction(ctx, CreateTransactionParams{
			TxDate:      t.Date.Key(),
			Bank:        t.Bank,
			Description: t.Description,
			Amount:      t.Amount.String(),
			BatchID:     batchID,
		})
		if err != nil {
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch %s: %w", batchID, err)
	}
	slog.InfoContext(ctx, "Batch saved to SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpAppend,
		applog.FieldBatchID, batchID,
		applog.FieldTransactions, len(txs))
	return len(txs), nil
}

// HasBatch reports whether batchID was already imported.
func (r *SQLiteRepository) HasBatch(ctx context.Context, batchID string) (bool, error) {
	ok, err := r.queries.HasBatch(ctx, batchID)
	if err != nil {
		return false, fmt.Errorf("has batch: %w", err)
	}
	return ok, nil
}

// Count returns the number of stored transactions.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountTransactions(ctx)
}

func toTransaction(row TransactionRow) (core.Transaction, error) {
	date, err := core.ParseDate(row.TxDate)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(row.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:        date,
		Bank:        row.Bank,
		Description: row.Description,
		Amount:      amount,
	}, nil
}
