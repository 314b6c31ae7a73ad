// ledger-migrate copies the full ledger from one backend to another, e.g.
// from the local workbook into SQLite. Backend settings (file paths,
// spreadsheet IDs) come from the same environment variables the server uses.
package main

import (
	"context"
	"flag"
	"os"

	"kharcha/internal/backend"
	"kharcha/internal/cli"
)

func main() {
	from := flag.String("from", "xlsx", "source backend (xlsx, memory, sqlite, sheets)")
	to := flag.String("to", "sqlite", "destination backend (xlsx, memory, sqlite, sheets)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger("ledger-migrate")
	cfg := cli.LoadAndValidateConfig(logger)

	if *from == *to {
		logger.Error("Source and destination backends must differ", "backend", *from)
		os.Exit(1)
	}

	ctx := context.Background()

	srcCfg := *cfg
	srcCfg.LedgerBackend = *from
	src, err := backend.Open(ctx, &srcCfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to open source backend", "error", err, "backend", *from)
		os.Exit(1)
	}
	if src.Cleanup != nil {
		defer src.Cleanup()
	}

	dstCfg := *cfg
	dstCfg.LedgerBackend = *to
	dst, err := backend.Open(ctx, &dstCfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to open destination backend", "error", err, "backend", *to)
		os.Exit(1)
	}
	if dst.Cleanup != nil {
		defer dst.Cleanup()
	}

	txns, err := src.Store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load source ledger", "error", err, "backend", *from)
		os.Exit(1)
	}
	if err := dst.Store.Save(ctx, txns); err != nil {
		logger.Error("Failed to save destination ledger", "error", err, "backend", *to)
		os.Exit(1)
	}

	logger.Info("Ledger migrated", "from", *from, "to", *to, "rows", len(txns))
}
