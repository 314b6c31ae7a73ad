// Package backend selects and initializes the ledger store named by the
// configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kharcha/internal/config"
	"kharcha/internal/ledger"
	"kharcha/internal/ledger/gsheet"
	"kharcha/internal/ledger/memory"
	"kharcha/internal/ledger/sqlite"
	"kharcha/internal/ledger/xlsx"
)

// Result bundles the chosen store with an optional cleanup hook.
type Result struct {
	Store   ledger.Store
	Cleanup func() error
}

// Open initializes the store named by cfg.LedgerBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.LedgerBackend {
	case "xlsx":
		store := xlsx.New(cfg.LedgerFile, cfg.SheetName)
		if err := store.Init(ctx); err != nil {
			return nil, fmt.Errorf("initialize ledger file: %w", err)
		}
		logger.Info("Initialized xlsx backend", "path", cfg.LedgerFile, "sheet", cfg.SheetName)
		return &Result{Store: store}, nil

	case "sqlite":
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case "sheets":
		store, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets store: %w", err)
		}
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return &Result{Store: store}, nil

	case "memory":
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil
	}
	return nil, fmt.Errorf("unsupported ledger backend: %s", cfg.LedgerBackend)
}
