package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// TimestampLayout is the canonical layout for a transaction's Date cell.
	TimestampLayout = "2006-01-02 15:04"
	// DateOnlyLayout is accepted as a fallback when parsing stored timestamps.
	DateOnlyLayout = "2006-01-02"
)

const (
	Expense       Kind = "Expense"
	IncomeSavings Kind = "Income/Savings"
)

type (
	// Kind distinguishes money going out from money set aside.
	Kind string

	Money struct {
		Paise int64
	}

	// Transaction is one recorded money movement. Identity is purely
	// positional: a transaction is addressed by its index in the loaded
	// ledger, never by a stable key.
	Transaction struct {
		Timestamp string
		Category  string
		Amount    Money
		Kind      Kind
		Note      string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownKind     = errors.New("unknown transaction kind")
)

// categories is the fixed household-budget catalog offered by the entry form.
// The order here is the order shown to the user.
var categories = []string{
	"Housing",
	"Utilities",
	"Food",
	"Transportation",
	"Insurance",
	"Healthcare",
	"Debt Payments",
	"Savings & Investments",
	"Personal Care",
	"Entertainment",
	"Clothing",
	"Miscellaneous",
}

// Categories returns the ordered category catalog.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// IsCategory reports whether name belongs to the fixed catalog.
func IsCategory(name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}

func (k Kind) Validate() error {
	switch k {
	case Expense, IncomeSavings:
		return nil
	}
	return ErrUnknownKind
}

// Now returns the current time formatted as a transaction timestamp.
func Now() string {
	return time.Now().Format(TimestampLayout)
}

func (m Money) Validate() error {
	if m.Paise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate enforces entry-creation rules. Stores never call it: the ledger
// persists whatever it is given, including rows that would not validate.
func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !IsCategory(strings.TrimSpace(t.Category)) {
		return ErrUnknownCategory
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return nil
}
