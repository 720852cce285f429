package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"ledgerviz/internal/backend"
	"ledgerviz/internal/cache"
	"ledgerviz/internal/cli"
	apphttp "ledgerviz/internal/http"
	"ledgerviz/internal/ledger"
	applog "ledgerviz/internal/log"
	"ledgerviz/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	heatmap, err := cfg.HeatmapOptions()
	if err != nil {
		logger.Error("Invalid heatmap anchors", applog.FieldError, err)
		os.Exit(1)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.Logger).CreateBackend(context.Background(), bcfg)
	if err != nil {
		logger.Error("Failed to initialize ledger backend", applog.FieldError, err, applog.FieldBackend, bcfg.Type)
		os.Exit(1)
	}

	var janitor *cache.Janitor
	if cached, ok := res.Reader.(*ledger.CachedReader); ok {
		janitor = cache.NewJanitor(cached.Cleaner())
		janitor.Start(context.Background(), cfg.LedgerCacheTTL)
	}

	viz := services.NewVisualizationService(res.Reader, heatmap)
	srv, err := apphttp.NewServer(cfg.Addr(), viz, apphttp.Options{
		ConvertURL:       cfg.ConvertURL,
		Logger:           logger,
		ExportsPerMinute: 30,
	})
	if err != nil {
		logger.Error("Failed to create HTTP server", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		if janitor != nil {
			janitor.Stop()
		}
		if err := res.Close(); err != nil {
			logger.Error("Backend close error", applog.FieldError, err)
		}
	})

	logger.InfoContext(ctx, "Starting ledgerviz server",
		applog.FieldOperation, applog.OpStartup,
		"addr", cfg.Addr(),
		applog.FieldBackend, res.Type)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "addr", cfg.Addr())
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
