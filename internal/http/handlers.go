package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
	"kharcha/internal/report"
)

type (
	entryView struct {
		Timestamp string
		Category  string
		Amount    string
		Kind      string
		Note      string
	}

	barRow struct {
		Name   string
		Amount string
		Width  int
	}

	itemView struct {
		Index     int
		Timestamp string
		Category  string
		Amount    string
		Kind      string
		Note      string
	}

	summaryView struct {
		Months  []string
		Month   string
		Filter  string
		Total   string
		MaxName string
		Max     string
		Rows    []barRow
		Items   []itemView
	}
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	txns, err := s.svc.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger load error", "error", err)
	}
	// Ten most recent entries, oldest of them first.
	start := len(txns) - 10
	if start < 0 {
		start = 0
	}
	var recent []entryView
	for _, t := range txns[start:] {
		recent = append(recent, entryView{
			Timestamp: t.Timestamp,
			Category:  t.Category,
			Amount:    formatRupees(t.Amount.Paise),
			Kind:      string(t.Kind),
			Note:      t.Note,
		})
	}

	data := struct {
		Categories []string
		Kinds      []string
		Recent     []entryView
	}{
		Categories: core.Categories(),
		Kinds:      []string{string(core.Expense), string(core.IncomeSavings)},
		Recent:     recent,
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	category := sanitizeInput(r.Form.Get("category"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	kind := sanitizeInput(r.Form.Get("kind"))
	note := sanitizeInput(r.Form.Get("note"))

	paise, err := core.ParseDecimalToPaise(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Amount must be greater than ₹0</div>`))
		return
	}

	txn := core.Transaction{
		Timestamp: core.Now(),
		Category:  category,
		Amount:    core.Money{Paise: paise},
		Kind:      core.Kind(kind),
		Note:      note,
	}
	if err := txn.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid entry: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	if err := s.svc.Append(r.Context(), txn); err != nil {
		slog.ErrorContext(r.Context(), "Entry append error", "error", err, "category", txn.Category, "amount_paise", txn.Amount.Paise)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to save entry</div>`))
		return
	}

	s.summaryCache.Purge()
	w.Header().Set("HX-Trigger", "ledger:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Added ` + template.HTMLEscapeString(strings.ToLower(kind)) +
		` in '` + template.HTMLEscapeString(category) + `': ` +
		template.HTMLEscapeString(formatRupees(paise)) + `</div>`))
}

func (s *Server) handleRemoveLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	removed, err := s.svc.RemoveLast(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Remove last error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to remove last entry</div>`))
		return
	}
	if removed == nil {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="info">No entries to remove.</div>`))
		return
	}

	s.summaryCache.Purge()
	w.Header().Set("HX-Trigger", "ledger:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="warning">Removed last entry: ` +
		template.HTMLEscapeString(removed.Category) + ` ` +
		template.HTMLEscapeString(formatRupees(removed.Amount.Paise)) + `</div>`))
}

func (s *Server) handleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	raw := r.Form["index"]
	if len(raw) == 0 {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="info">No rows selected.</div>`))
		return
	}
	indices := make([]int, 0, len(raw))
	for _, v := range raw {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`<div class="error">Invalid row selection</div>`))
			return
		}
		indices = append(indices, i)
	}

	n, err := s.svc.RemoveAt(r.Context(), indices)
	if err != nil {
		if errors.Is(err, ledger.ErrIndexOutOfRange) {
			// The rendered view is stale: the ledger changed between
			// render and submit. Nothing was deleted.
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`<div class="error">Selection no longer matches the ledger, refresh and try again</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Delete selected error", "error", err, "indices", indices)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to delete entries</div>`))
		return
	}

	s.summaryCache.Purge()
	w.Header().Set("HX-Trigger", "ledger:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Deleted ` + strconv.Itoa(n) + ` entries.</div>`))
}

// handleMonthSummary renders the monthly summary partial.
func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	month := strings.TrimSpace(r.URL.Query().Get("month"))
	filter := report.TypeFilter(strings.TrimSpace(r.URL.Query().Get("filter")))
	switch filter {
	case report.ExpensesOnly, report.SavingsOnly, report.AllKinds:
	default:
		filter = report.ExpensesOnly
	}

	if month != "" {
		if view, found := s.summaryCache.Get(summaryKey(month, filter)); found {
			slog.DebugContext(r.Context(), "Summary cache hit", "month", month, "filter", string(filter))
			s.renderSummary(w, r, view)
			return
		}
	}

	txns, err := s.svc.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger load error", "error", err, "month", month)
		_, _ = w.Write([]byte(`<section id="month-summary" class="month-summary"><div class="placeholder">Failed to load summary</div></section>`))
		return
	}

	view := buildSummary(txns, month, filter)
	if view.Month != "" {
		s.summaryCache.Set(summaryKey(view.Month, filter), view)
	}
	s.renderSummary(w, r, view)
}

func summaryKey(month string, filter report.TypeFilter) string {
	return month + "|" + string(filter)
}

// buildSummary assembles the month view: bucket list, per-category totals
// with bar widths scaled against the largest category, and the filtered row
// list with full-ledger indices for selection-based deletion.
func buildSummary(txns []core.Transaction, month string, filter report.TypeFilter) summaryView {
	months := report.AvailableMonths(txns)
	if month == "" && len(months) > 0 {
		month = months[0]
	}

	view := summaryView{
		Months: months,
		Month:  month,
		Filter: string(filter),
	}

	rows := report.FilterByMonthAndType(txns, month, filter)
	totals := report.TotalsByCategory(rows)

	var grand, maxPaise int64
	for _, ct := range totals {
		grand += ct.Total.Paise
		if ct.Total.Paise > maxPaise {
			maxPaise = ct.Total.Paise
			view.MaxName = ct.Category
		}
	}
	view.Total = formatRupees(grand)
	view.Max = formatRupees(maxPaise)

	for _, ct := range totals {
		width := 0
		if maxPaise > 0 && ct.Total.Paise > 0 {
			width = int((ct.Total.Paise*100 + maxPaise/2) / maxPaise) // rounded percent
			if width < 2 {                                            // keep tiny bars visible
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		view.Rows = append(view.Rows, barRow{Name: ct.Category, Amount: formatRupees(ct.Total.Paise), Width: width})
	}

	for _, row := range rows {
		view.Items = append(view.Items, itemView{
			Index:     row.Index,
			Timestamp: row.Txn.Timestamp,
			Category:  row.Txn.Category,
			Amount:    formatRupees(row.Txn.Amount.Paise),
			Kind:      string(row.Txn.Kind),
			Note:      row.Txn.Note,
		})
	}
	return view
}

func (s *Server) renderSummary(w http.ResponseWriter, r *http.Request, view summaryView) {
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="month-summary" class="month-summary"><div class="placeholder">Total: ` + template.HTMLEscapeString(view.Total) + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "month_summary.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "month_summary.html")
		_, _ = w.Write([]byte(`<section id="month-summary" class="month-summary"><div class="placeholder">Failed to render summary</div></section>`))
	}
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
