package report

import (
	"testing"

	"kharcha/internal/core"
)

func txn(ts, cat string, paise int64, kind core.Kind) core.Transaction {
	return core.Transaction{Timestamp: ts, Category: cat, Amount: core.Money{Paise: paise}, Kind: kind}
}

func TestMonthOf(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-15 09:30", "2024-03", true},
		{"2024-03-15", "2024-03", true},
		{"2024-12-31 23:59", "2024-12", true},
		{"", "", false},
		{"yesterday", "", false},
		{"2024-13-01 00:00", "", false},
	}
	for _, tc := range cases {
		got, ok := MonthOf(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("MonthOf(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAvailableMonthsSortedDescending(t *testing.T) {
	txns := []core.Transaction{
		txn("2024-01-05 10:00", "Food", 100, core.Expense),
		txn("2024-03-01 08:00", "Housing", 100, core.Expense),
		txn("2024-03-20 18:00", "Food", 100, core.Expense),
		txn("not a date", "Food", 100, core.Expense),
		txn("2023-12-24 12:00", "Entertainment", 100, core.Expense),
	}
	got := AvailableMonths(txns)
	want := []string{"2024-03", "2024-01", "2023-12"}
	if len(got) != len(want) {
		t.Fatalf("AvailableMonths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AvailableMonths = %v, want %v", got, want)
		}
	}
}

func TestSavingsOnlyMatchesAnythingButExpense(t *testing.T) {
	// The filter is deliberately "not Expense", so a kind outside the
	// closed set still shows up in the savings view.
	txns := []core.Transaction{
		txn("2024-03-01 08:00", "Food", 100, core.Expense),
		txn("2024-03-02 08:00", "Food", 200, core.IncomeSavings),
		txn("2024-03-03 08:00", "Food", 300, core.Kind("Transfer")),
	}
	rows := FilterByMonthAndType(txns, "2024-03", SavingsOnly)
	if len(rows) != 2 {
		t.Fatalf("expected 2 savings rows, got %d", len(rows))
	}
	if rows[0].Index != 1 || rows[1].Index != 2 {
		t.Fatalf("unexpected indices: %d, %d", rows[0].Index, rows[1].Index)
	}
}

func TestFilterByMonthAndTypeKeepsLedgerIndices(t *testing.T) {
	txns := []core.Transaction{
		txn("2024-02-01 08:00", "Food", 100, core.Expense),
		txn("2024-03-01 08:00", "Food", 200, core.Expense),
		txn("bad", "Food", 300, core.Expense),
		txn("2024-03-02 08:00", "Housing", 400, core.IncomeSavings),
		txn("2024-03-03 08:00", "Food", 500, core.Expense),
	}
	rows := FilterByMonthAndType(txns, "2024-03", ExpensesOnly)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Index != 1 || rows[1].Index != 4 {
		t.Fatalf("unexpected indices: %d, %d", rows[0].Index, rows[1].Index)
	}

	all := FilterByMonthAndType(txns, "2024-03", AllKinds)
	if len(all) != 3 {
		t.Fatalf("expected 3 rows for AllKinds, got %d", len(all))
	}
}

func TestTotalsByCategory(t *testing.T) {
	// Three Food expenses (100+200+50) and one Food income (500) in the
	// same month: the expense view must not include the income.
	txns := []core.Transaction{
		txn("2024-03-01 08:00", "Food", 10000, core.Expense),
		txn("2024-03-02 08:00", "Food", 20000, core.Expense),
		txn("2024-03-03 08:00", "Food", 5000, core.Expense),
		txn("2024-03-04 08:00", "Food", 50000, core.IncomeSavings),
	}
	exp := TotalsByCategory(FilterByMonthAndType(txns, "2024-03", ExpensesOnly))
	if len(exp) != 1 || exp[0].Category != "Food" || exp[0].Total.Paise != 35000 {
		t.Fatalf("unexpected expense totals: %+v", exp)
	}
	sav := TotalsByCategory(FilterByMonthAndType(txns, "2024-03", SavingsOnly))
	if len(sav) != 1 || sav[0].Category != "Food" || sav[0].Total.Paise != 50000 {
		t.Fatalf("unexpected savings totals: %+v", sav)
	}
}

func TestTotalsByCategorySortAndGrandTotal(t *testing.T) {
	txns := []core.Transaction{
		txn("2024-03-01 08:00", "Food", 100, core.Expense),
		txn("2024-03-01 09:00", "Housing", 900, core.Expense),
		txn("2024-03-01 10:00", "Utilities", 900, core.Expense),
		txn("2024-03-01 11:00", "Food", 300, core.Expense),
	}
	rows := FilterByMonthAndType(txns, "2024-03", ExpensesOnly)
	totals := TotalsByCategory(rows)

	var grand, filtered int64
	for _, ct := range totals {
		grand += ct.Total.Paise
	}
	for _, r := range rows {
		filtered += r.Txn.Amount.Paise
	}
	if grand != filtered {
		t.Fatalf("grand total %d != filtered sum %d", grand, filtered)
	}

	// Descending by total; the Housing/Utilities tie keeps first-seen order.
	want := []string{"Housing", "Utilities", "Food"}
	for i, ct := range totals {
		if ct.Category != want[i] {
			t.Fatalf("unexpected order: %+v", totals)
		}
	}
}

func TestTotalsByCategoryEmpty(t *testing.T) {
	if got := TotalsByCategory(nil); len(got) != 0 {
		t.Fatalf("expected no totals, got %+v", got)
	}
}
