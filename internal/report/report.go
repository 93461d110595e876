// Package report composes the fixed-layout monthly PDF and the CSV export.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"finanze/internal/core"
	"finanze/internal/ledger"
)

// ErrNoData signals that the requested month has no transactions and no
// document was produced. Callers treat it as a normal outcome.
var ErrNoData = errors.New("no transactions for the requested month")

// Monthly renders the single-page A4 report for the given month: title,
// wallet balances, income/expense/savings summary and up to two pie charts
// side by side. Returns ErrNoData when the month is empty.
func Monthly(txs []core.Transaction, month core.MonthKey) ([]byte, error) {
	monthTxs := ledger.FilterMonth(txs, month)
	if len(monthTxs) == 0 {
		return nil, ErrNoData
	}

	totals := ledger.Totals(monthTxs)
	breakdown := ledger.CategoryBreakdown(txs, month)
	split := ledger.IncomeVsExpense(txs, month, core.SalaryCategory)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(30, 20, tr("Report Finanze Personali - "+month.Label()))

	pdf.SetFont("Helvetica", "", 12)
	y := 30.0
	pdf.Text(30, y, tr("Saldi portafogli:"))
	y += 7
	for _, w := range core.Wallets {
		balance := ledger.WalletBalance(monthTxs, w)
		pdf.Text(40, y, tr(fmt.Sprintf("- %s: %s €", w, balance.DecimalString())))
		y += 5
	}

	y += 3
	pdf.Text(30, y, tr(fmt.Sprintf("Entrate totali: %s €", totals.Income.DecimalString())))
	y += 5
	pdf.Text(30, y, tr(fmt.Sprintf("Uscite totali: %s €", totals.Expense.DecimalString())))
	y += 5
	pdf.Text(30, y, tr(fmt.Sprintf("Risparmio mese: %s €", totals.Savings.DecimalString())))
	y += 10

	// Pie charts side by side; each is omitted when it has nothing to show.
	if png, err := CategoryPie(breakdown); err == nil {
		placeImage(pdf, "categories", png, 30, y)
	} else if !errors.Is(err, ErrNotEnoughData) {
		slog.Warn("Category pie skipped", "error", err)
	}
	if png, err := SalaryPie(split); err == nil {
		placeImage(pdf, "salary", png, 110, y)
	} else if !errors.Is(err, ErrNotEnoughData) {
		slog.Warn("Salary pie skipped", "error", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func placeImage(pdf *fpdf.Fpdf, name string, png []byte, x, y float64) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, 80, 80, false, opts, 0, "")
}

// FileName encodes month name and year, e.g. Report_Finanze_January_2024.pdf.
func FileName(month core.MonthKey) string {
	return fmt.Sprintf("Report_Finanze_%s_%d.pdf", month.Month.String(), month.Year)
}
