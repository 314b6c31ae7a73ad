// Package report derives monthly views from a loaded ledger without
// mutating it.
package report

import (
	"sort"
	"time"

	"kharcha/internal/core"
)

const (
	ExpensesOnly TypeFilter = "expenses"
	SavingsOnly  TypeFilter = "savings"
	AllKinds     TypeFilter = "all"
)

type (
	// TypeFilter narrows a month view by transaction kind.
	TypeFilter string

	// Row pairs a transaction with its position in the full ledger, so a
	// selection made against a filtered view can be mapped back to the
	// indices RemoveAt expects.
	Row struct {
		Index int
		Txn   core.Transaction
	}

	CategoryTotal struct {
		Category string
		Total    core.Money
	}
)

// MonthLayout is the bucket key format, e.g. "2024-03".
const MonthLayout = "2006-01"

// MonthOf maps a stored timestamp to its year-month bucket. Timestamps that
// fail to parse are excluded from all monthly views rather than erroring.
func MonthOf(timestamp string) (string, bool) {
	for _, layout := range []string{core.TimestampLayout, core.DateOnlyLayout} {
		if ts, err := time.Parse(layout, timestamp); err == nil {
			return ts.Format(MonthLayout), true
		}
	}
	return "", false
}

// AvailableMonths returns the distinct month buckets present in the ledger,
// most recent first. The UI defaults to the first entry.
func AvailableMonths(txns []core.Transaction) []string {
	seen := map[string]struct{}{}
	var months []string
	for _, t := range txns {
		m, ok := MonthOf(t.Timestamp)
		if !ok {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Matches reports whether a kind passes the filter. SavingsOnly matches
// everything that is not an expense, not only Income/Savings; the original
// tracker behaved this way and callers rely on it.
func (f TypeFilter) Matches(k core.Kind) bool {
	switch f {
	case ExpensesOnly:
		return k == core.Expense
	case SavingsOnly:
		return k != core.Expense
	default:
		return true
	}
}

// FilterByMonthAndType returns the transactions in the given month bucket
// whose kind passes the filter, each paired with its full-ledger index.
func FilterByMonthAndType(txns []core.Transaction, month string, filter TypeFilter) []Row {
	var rows []Row
	for i, t := range txns {
		m, ok := MonthOf(t.Timestamp)
		if !ok || m != month {
			continue
		}
		if !filter.Matches(t.Kind) {
			continue
		}
		rows = append(rows, Row{Index: i, Txn: t})
	}
	return rows
}

// TotalsByCategory sums amounts per category over a filtered view, sorted by
// total descending. Equal totals keep first-seen order; categories with no
// matching rows are omitted.
func TotalsByCategory(rows []Row) []CategoryTotal {
	sums := map[string]int64{}
	var order []string
	for _, r := range rows {
		if _, seen := sums[r.Txn.Category]; !seen {
			order = append(order, r.Txn.Category)
		}
		sums[r.Txn.Category] += r.Txn.Amount.Paise
	}
	totals := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		totals = append(totals, CategoryTotal{Category: name, Total: core.Money{Paise: sums[name]}})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.Paise > totals[j].Total.Paise
	})
	return totals
}
