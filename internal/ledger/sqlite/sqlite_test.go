package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"kharcha/internal/core"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "kharcha.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEmptyDatabaseLoadsEmptyLedger(t *testing.T) {
	s := newStore(t)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty ledger, got %+v", got)
	}
}

func TestSaveLoadPreservesOrderAndValues(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	want := []core.Transaction{
		{Timestamp: "2024-01-05 10:30", Category: "Food", Amount: core.Money{Paise: 25000}, Kind: core.Expense, Note: "lunch"},
		{Timestamp: "2024-01-04 09:00", Category: "Housing", Amount: core.Money{Paise: 1500000}, Kind: core.Expense},
		{Timestamp: "2024-02-01 12:00", Category: "Savings & Investments", Amount: core.Money{Paise: 500000}, Kind: core.IncomeSavings},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveReplacesWholeTable(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := []core.Transaction{
		{Timestamp: "2024-01-05 10:30", Category: "Food", Amount: core.Money{Paise: 100}, Kind: core.Expense},
		{Timestamp: "2024-01-06 10:30", Category: "Food", Amount: core.Money{Paise: 200}, Kind: core.Expense},
	}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := first[:1]
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0] != second[0] {
		t.Fatalf("expected full replace, got %+v", got)
	}
}

func TestUnknownKindRoundTrips(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	odd := []core.Transaction{
		{Timestamp: "2024-01-05 10:30", Category: "Food", Amount: core.Money{Paise: 100}, Kind: core.Kind("Transfer")},
	}
	if err := s.Save(ctx, odd); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Kind != core.Kind("Transfer") {
		t.Fatalf("kind not preserved: %+v", got)
	}
}
