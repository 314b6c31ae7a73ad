package core

import "testing"

func TestKindValidate(t *testing.T) {
	if err := Expense.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := IncomeSavings.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Kind("Transfer").Validate(); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Paise: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Paise: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Paise: -100}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestCategoriesCatalog(t *testing.T) {
	cats := Categories()
	if len(cats) != 12 {
		t.Fatalf("unexpected catalog size: %d", len(cats))
	}
	if cats[0] != "Housing" || cats[len(cats)-1] != "Miscellaneous" {
		t.Fatalf("unexpected catalog order: %v", cats)
	}
	// Returned slice is a copy, mutating it must not leak into the catalog.
	cats[0] = "Mutated"
	if !IsCategory("Housing") {
		t.Fatalf("catalog mutated through returned slice")
	}
	if IsCategory("Mutated") {
		t.Fatalf("catalog mutated through returned slice")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Timestamp: "2024-01-05 10:30",
		Category:  "Food",
		Amount:    Money{Paise: 25000},
		Kind:      Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Category: "Food", Amount: Money{Paise: 0}, Kind: Expense},
		{Category: "Groceries", Amount: Money{Paise: 100}, Kind: Expense},
		{Category: "Food", Amount: Money{Paise: 100}, Kind: Kind("Other")},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
