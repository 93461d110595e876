package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"finanze/internal/core"
	"finanze/internal/ledger"
	"finanze/internal/report"
)

// txRow is one rendered line of the transaction history.
type txRow struct {
	Date        string
	Wallet      string
	Kind        string
	Category    string
	Description string
	Amount      string
	IsExpense   bool
}

// walletRow is one wallet balance line.
type walletRow struct {
	Name    string
	Balance string
}

// overviewView feeds the dashboard fragment: overall metrics, wallet
// balances and the transaction history, newest first.
type overviewView struct {
	HasData      bool
	TotalIncome  string
	TotalSavings string
	MonthSavings string
	WalletRows   []walletRow
	Rows         []txRow
}

func buildOverview(txs []core.Transaction) overviewView {
	now := time.Now()
	currentMonth := core.MonthKey{Year: now.Year(), Month: now.Month()}
	totals := ledger.Totals(txs)
	monthTotals := ledger.Totals(ledger.FilterMonth(txs, currentMonth))

	view := overviewView{
		HasData:      len(txs) > 0,
		TotalIncome:  totals.Income.FormatEuros(),
		TotalSavings: totals.Savings.FormatEuros(),
		MonthSavings: monthTotals.Savings.FormatEuros(),
		Rows:         historyRows(txs),
	}
	for _, wallet := range core.Wallets {
		view.WalletRows = append(view.WalletRows, walletRow{
			Name:    string(wallet),
			Balance: ledger.WalletBalance(txs, wallet).FormatEuros(),
		})
	}
	return view
}

// handleIndex renders the dashboard: the overview fragment, the
// add-transaction form and the monthly analysis section.
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

	txs, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot error", "error", err)
		http.Error(w, "errore caricando i dati", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	data := struct {
		Overview     overviewView
		HasData      bool
		Wallets      []core.Wallet
		Categories   []core.Category
		Today        string
		CurrentYear  int
		CurrentMonth int
		Months       []string
	}{
		Overview:     buildOverview(txs),
		Wallets:      core.Wallets,
		Categories:   core.Categories,
		Today:        now.Format(core.DateLayout),
		CurrentYear:  now.Year(),
		CurrentMonth: int(now.Month()),
	}
	data.HasData = data.Overview.HasData
	for _, p := range ledger.MonthlySeries(txs) {
		data.Months = append(data.Months, p.Month.String())
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleOverview re-renders the dashboard fragment; the fragment itself
// requests it whenever a transaction is accepted.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Overview snapshot error", "error", err)
		http.Error(w, "errore caricando i dati", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "overview.html", buildOverview(txs)); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "overview.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// historyRows orders the table newest-first for display.
func historyRows(txs []core.Transaction) []txRow {
	ordered := make([]core.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[j].Date.Time.Before(ordered[i].Date.Time)
	})
	rows := make([]txRow, 0, len(ordered))
	for _, t := range ordered {
		rows = append(rows, txRow{
			Date:        t.Date.String(),
			Wallet:      string(t.Wallet),
			Kind:        string(t.Kind),
			Category:    string(t.Category),
			Description: t.Description,
			Amount:      t.Amount.FormatEuros(),
			IsExpense:   t.Kind == core.Expense,
		})
	}
	return rows
}

// handleCreateTransaction accepts the add-transaction form. Invalid input is
// rejected with a user-visible warning and no state change.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato richiesta non valido</div>`))
		return
	}

	date, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		now := time.Now()
		date = core.NewDate(now.Year(), now.Month(), now.Day())
	}

	desc := sanitizeInput(r.Form.Get("description"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Compila tutti i campi correttamente.</div>`))
		return
	}

	tx := core.Transaction{
		Date:        date,
		Wallet:      core.Wallet(sanitizeInput(r.Form.Get("wallet"))),
		Kind:        core.Kind(sanitizeInput(r.Form.Get("kind"))),
		Category:    core.Category(sanitizeInput(r.Form.Get("category"))),
		Description: desc,
		Amount:      core.Money{Cents: cents},
	}
	if err := tx.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Compila tutti i campi correttamente: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	ref, err := s.svc.Add(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction append error", "error", err, "description", tx.Description, "amount_cents", tx.Amount.Cents)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Errore nel salvataggio</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"transaction:created": {"year": `+strconv.Itoa(date.Year())+`, "month": `+strconv.Itoa(int(date.Month()))+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Operazione registrata (#` + template.HTMLEscapeString(ref) + `): ` +
		template.HTMLEscapeString(tx.Description) +
		` — €` + template.HTMLEscapeString(amountStr) +
		` (` + template.HTMLEscapeString(string(tx.Wallet)) + ` / ` + template.HTMLEscapeString(string(tx.Category)) + `)</div>`))
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// handleMonthOverview renders the monthly analysis partial: totals, category
// breakdown rows and the salary-vs-expenses split for the requested month.
func (s *Server) handleMonthOverview(w http.ResponseWriter, r *http.Request) {
	month := monthFromQuery(r)

	txs, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Month overview error", "error", err, "year", month.Year, "month", int(month.Month))
		http.Error(w, "errore caricando i dati", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	monthTxs := ledger.FilterMonth(txs, month)
	if len(monthTxs) == 0 {
		_, _ = w.Write([]byte(`<section id="month-overview" class="month-overview"><div class="placeholder">Nessuna operazione registrata per questo mese.</div></section>`))
		return
	}

	totals := ledger.Totals(monthTxs)
	breakdown := ledger.CategoryBreakdown(txs, month)
	split := ledger.IncomeVsExpense(txs, month, core.SalaryCategory)

	type row struct {
		Name, Amount string
		Width        int
	}
	var maxCents int64
	for _, b := range breakdown {
		if b.Amount.Cents > maxCents {
			maxCents = b.Amount.Cents
		}
	}
	data := struct {
		Year      int
		Month     int
		Label     string
		Income    string
		Expense   string
		Savings   string
		Rows      []row
		HasSalary bool
		Salary    string
		Remainder string
	}{
		Year:      month.Year,
		Month:     int(month.Month),
		Label:     month.Label(),
		Income:    totals.Income.FormatEuros(),
		Expense:   totals.Expense.FormatEuros(),
		Savings:   totals.Savings.FormatEuros(),
		HasSalary: split.Income.Cents > 0,
		Salary:    split.Income.FormatEuros(),
		Remainder: split.Remainder.FormatEuros(),
	}
	for _, b := range breakdown {
		width := 0
		if maxCents > 0 && b.Amount.Cents > 0 {
			width = int((b.Amount.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width > 0 && width < 2 {                               // keep tiny slices visible
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, row{Name: string(b.Category), Amount: b.Amount.FormatEuros(), Width: width})
	}

	if err := s.templates.ExecuteTemplate(w, "month_overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "month_overview.html", "year", month.Year, "month", int(month.Month))
		_, _ = w.Write([]byte(`<section id="month-overview" class="month-overview"><div class="placeholder">Errore rendering panoramica</div></section>`))
	}
}

// monthFromQuery reads the period parameter ("2006-01") or the year/month
// pair, defaulting to the current month.
func monthFromQuery(r *http.Request) core.MonthKey {
	if v := strings.TrimSpace(r.URL.Query().Get("period")); v != "" {
		if t, err := time.Parse("2006-01", v); err == nil {
			return core.MonthKey{Year: t.Year(), Month: t.Month()}
		}
	}
	now := time.Now()
	month := core.MonthKey{Year: now.Year(), Month: now.Month()}
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			month.Year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month.Month = time.Month(m)
		}
	}
	return month
}

func (s *Server) handleSavingsChart(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, r, func(txs []core.Transaction) ([]byte, error) {
		return report.SavingsChart(ledger.MonthlySeries(txs))
	})
}

func (s *Server) handleWalletsChart(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, r, func(txs []core.Transaction) ([]byte, error) {
		return report.WalletsChart(ledger.WalletSeries(txs))
	})
}

func (s *Server) renderChart(w http.ResponseWriter, r *http.Request, render func([]core.Transaction) ([]byte, error)) {
	txs, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart snapshot error", "error", err)
		http.Error(w, "errore caricando i dati", http.StatusInternalServerError)
		return
	}
	png, err := render(txs)
	if errors.Is(err, report.ErrNotEnoughData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart render error", "error", err)
		http.Error(w, "errore generando il grafico", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// handleExportCSV streams the full transaction table as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export snapshot error", "error", err)
		http.Error(w, "errore caricando i dati", http.StatusInternalServerError)
		return
	}
	data, err := report.CSV(txs)
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
		http.Error(w, "errore generando il CSV", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.CSVFileName+`"`)
	_, _ = w.Write(data)
}

// handleExportPDF streams the monthly report; an empty month is a normal
// outcome and answers with a message instead of a document.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	month := monthFromQuery(r)

	txs, err := s.svc.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "PDF export snapshot error", "error", err)
		http.Error(w, "errore caricando i dati", http.StatusInternalServerError)
		return
	}
	doc, err := report.Monthly(txs, month)
	if errors.Is(err, report.ErrNoData) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Nessuna operazione registrata per questo mese."))
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "PDF export error", "error", err, "year", month.Year, "month", int(month.Month))
		http.Error(w, "errore generando il report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName(month)+`"`)
	_, _ = w.Write(doc)
}
