package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerviz/internal/amqp"
	"ledgerviz/internal/backend"
	"ledgerviz/internal/cli"
	applog "ledgerviz/internal/log"
	"ledgerviz/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	// The worker only writes; snapshots are cached by the dashboard process.
	bcfg.CacheTTL = 0
	res, err := backend.NewFactory(logger.Logger).CreateBackend(context.Background(), bcfg)
	if err != nil {
		logger.Error("Failed to initialize ledger backend", applog.FieldError, err, applog.FieldBackend, bcfg.Type)
		os.Exit(1)
	}
	defer res.Close()
	if res.Writer == nil {
		logger.Error("Backend is read-only; the import worker needs sqlite or memory", applog.FieldBackend, res.Type)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	importer := worker.NewImportWorker(res.Writer, res.Invalidate)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	if err := importer.StartupCheck(ctx); err != nil {
		logger.Error("Startup check failed", applog.FieldError, err)
	}

	health := &http.Server{
		Addr:              cfg.WorkerHealthAddr(),
		Handler:           healthMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "Consuming transaction batches", "queue", cfg.AMQPQueue)
		return client.Consume(gctx, importer.HandleBatch)
	})
	g.Go(func() error {
		if err := health.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return health.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Import worker stopped", applog.FieldError, err)
		os.Exit(1)
	}
	cli.WaitForShutdown(ctx, done)
}

func healthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})
	return mux
}
