// Package xlsx persists the ledger as a spreadsheet workbook with a single
// sheet holding one header row and one row per transaction.
package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"kharcha/internal/core"
)

// DefaultSheetName is the sheet holding the ledger rows.
const DefaultSheetName = "Expenses"

// header defines the column set and order of the persisted sheet.
var header = []interface{}{"Date", "Category", "Amount (INR)", "Type", "Note"}

type Store struct {
	path  string
	sheet string
}

func New(path, sheet string) *Store {
	if sheet == "" {
		sheet = DefaultSheetName
	}
	return &Store{path: path, sheet: sheet}
}

// Init creates a header-only workbook when none exists yet. A ledger that
// already exists is left alone.
func (s *Store) Init(ctx context.Context) error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	slog.InfoContext(ctx, "Creating empty ledger file", "path", s.path, "sheet", s.sheet)
	return s.Save(ctx, nil)
}

// Load reads the whole sheet. Fail-soft: a missing, unreadable or corrupt
// file is indistinguishable from a fresh ledger, so it yields an empty
// sequence and no error. Rows whose amount cell cannot be parsed are
// skipped; date cells are carried verbatim and bucketed downstream.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Ledger file unreadable, treating as empty", "path", s.path, "error", err)
		}
		return nil, nil
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		slog.WarnContext(ctx, "Ledger sheet unreadable, treating as empty", "path", s.path, "sheet", s.sheet, "error", err)
		return nil, nil
	}

	var txns []core.Transaction
	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		t, ok := parseRow(row)
		if !ok {
			slog.WarnContext(ctx, "Skipping unparseable ledger row", "path", s.path, "row", i+1)
			continue
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// Save overwrites the whole workbook. The new content is written to a
// temporary file in the same directory and renamed over the old one, so a
// crash mid-write leaves either the previous ledger or the new one, never a
// torn file.
func (s *Store) Save(ctx context.Context, txns []core.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return fmt.Errorf("name sheet %s: %w", s.sheet, err)
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, t := range txns {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d cell name: %w", i, err)
		}
		row := []interface{}{t.Timestamp, t.Category, t.Amount.Rupees(), string(t.Kind), t.Note}
		if err := f.SetSheetRow(s.sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ledger-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace ledger: %w", err)
	}

	slog.DebugContext(ctx, "Ledger saved", "path", s.path, "rows", len(txns))
	return nil
}

func parseRow(row []string) (core.Transaction, bool) {
	if len(row) < 4 {
		return core.Transaction{}, false
	}
	paise, ok := core.ParseAmount(row[2])
	if !ok {
		return core.Transaction{}, false
	}
	t := core.Transaction{
		Timestamp: row[0],
		Category:  row[1],
		Amount:    core.Money{Paise: paise},
		Kind:      core.Kind(row[3]),
	}
	if len(row) >= 5 {
		t.Note = row[4]
	}
	return t, true
}
