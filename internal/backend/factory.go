package backend

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerviz/internal/ledger"
	"ledgerviz/internal/ledger/google"
	"ledgerviz/internal/ledger/memory"
	applog "ledgerviz/internal/log"
	"ledgerviz/internal/storage"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger.With(applog.FieldComponent, applog.ComponentBackend)}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		res *BackendResult
		err error
	)
	switch config.Type {
	case SQLiteBackend:
		res, err = f.createSQLiteBackend(config)
	case SheetsBackend:
		res, err = f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		res, err = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	res.Type = config.Type
	res.Invalidate = func() {}
	if config.CacheTTL > 0 {
		cached := ledger.NewCachedReader(res.Reader, config.CacheTTL)
		res.Reader = cached
		res.Invalidate = cached.Invalidate
	}
	return res, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return &BackendResult{Reader: repo, Writer: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	r, err := google.New(ctx, config.GoogleSpreadsheetID, config.GoogleLedgerSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets reader: %w", err)
	}
	f.logger.Info("Initialized Google Sheets backend", "sheet", config.GoogleLedgerSheet)
	return &BackendResult{Reader: r}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	store, err := memory.NewFromFile(config.LedgerFile)
	if err != nil {
		return nil, fmt.Errorf("failed to seed memory backend: %w", err)
	}
	f.logger.Info("Initialized memory backend", "ledger_file", config.LedgerFile)
	return &BackendResult{Reader: store, Writer: store}, nil
}
