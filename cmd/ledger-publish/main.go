// Command ledger-publish sends a normalized CSV ledger
// (date,bank,description,amount) to the import queue as one batch.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"ledgerviz/internal/amqp"
	"ledgerviz/internal/backend"
	"ledgerviz/internal/cli"
	"ledgerviz/internal/ledger"
	applog "ledgerviz/internal/log"
	"ledgerviz/internal/services"
)

func main() {
	file := flag.String("file", "", "normalized CSV ledger to import")
	source := flag.String("source", "", "batch source label (defaults to the file name)")
	direct := flag.Bool("direct", false, "append through DATA_BACKEND instead of publishing to AMQP")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentLedger)
	cfg := cli.LoadAndValidateConfig(logger)

	if *file == "" {
		logger.Error("Missing -file")
		flag.Usage()
		os.Exit(2)
	}
	if *source == "" {
		*source = filepath.Base(*file)
	}

	txs, err := ledger.ReadCSVFile(*file)
	if err != nil {
		logger.Error("Failed to read ledger", applog.FieldError, err, "file", *file)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var svc *services.ImportService
	if *direct {
		bcfg, err := backend.FromAppConfig(cfg)
		if err != nil {
			logger.Error("Invalid backend configuration", applog.FieldError, err)
			os.Exit(1)
		}
		bcfg.CacheTTL = 0
		res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, bcfg)
		if err != nil {
			logger.Error("Failed to initialize ledger backend", applog.FieldError, err)
			os.Exit(1)
		}
		defer res.Close()
		if res.Writer == nil {
			logger.Error("Backend is read-only", applog.FieldBackend, res.Type)
			os.Exit(1)
		}
		svc = services.NewImportService(nil, res.Writer)
	} else {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		svc = services.NewImportService(client, nil)
	}

	batchID, err := svc.Import(ctx, *source, txs)
	if err != nil {
		logger.ErrorContext(ctx, "Import failed", applog.FieldError, err, "file", *file)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Ledger submitted",
		applog.FieldOperation, applog.OpImport,
		applog.FieldBatchID, batchID,
		applog.FieldTransactions, len(txs),
		"direct", *direct)
}
