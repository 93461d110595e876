package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"finanze/internal/core"
	"finanze/internal/ledger"
)

func sampleTxs() []core.Transaction {
	return []core.Transaction{
		{
			Date:        core.NewDate(2024, time.January, 5),
			Wallet:      "Isybank",
			Kind:        core.Income,
			Category:    "Stipendio",
			Description: "paycheck",
			Amount:      core.Money{Cents: 200000},
		},
		{
			Date:        core.NewDate(2024, time.January, 10),
			Wallet:      "Isybank",
			Kind:        core.Expense,
			Category:    "Spesa alimentare",
			Description: "groceries",
			Amount:      core.Money{Cents: 15050},
		},
		{
			Date:        core.NewDate(2024, time.February, 1),
			Wallet:      "Postepay",
			Kind:        core.Expense,
			Category:    "Trasporti",
			Description: "metro",
			Amount:      core.Money{Cents: 4000},
		},
	}
}

func TestMonthlyEmptyMonth(t *testing.T) {
	_, err := Monthly(sampleTxs(), core.MonthKey{Year: 2023, Month: time.June})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestMonthlyProducesPDF(t *testing.T) {
	pdf, err := Monthly(sampleTxs(), core.MonthKey{Year: 2024, Month: time.January})
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", pdf[:8])
	}
}

func TestFileName(t *testing.T) {
	got := FileName(core.MonthKey{Year: 2024, Month: time.January})
	if got != "Report_Finanze_January_2024.pdf" {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestCSV(t *testing.T) {
	out, err := CSV(sampleTxs())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "date,wallet,kind,category,description,amount" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "2024-01-05,Isybank,Income,Stipendio,paycheck,2000.00" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestCSVEmpty(t *testing.T) {
	out, err := CSV(nil)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if strings.TrimSpace(string(out)) != "date,wallet,kind,category,description,amount" {
		t.Fatalf("empty export must be header only, got %q", out)
	}
}

func TestChartsGuardAgainstThinData(t *testing.T) {
	if _, err := CategoryPie(nil); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("category pie: expected ErrNotEnoughData, got %v", err)
	}
	if _, err := SalaryPie(ledger.Split{}); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("salary pie: expected ErrNotEnoughData, got %v", err)
	}
	one := []ledger.MonthlyPoint{{Month: core.MonthKey{Year: 2024, Month: time.January}}}
	if _, err := SavingsChart(one); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("savings chart: expected ErrNotEnoughData, got %v", err)
	}
	if _, err := WalletsChart(nil); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("wallets chart: expected ErrNotEnoughData, got %v", err)
	}
}

func TestChartsRenderPNG(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}

	breakdown := ledger.CategoryBreakdown(sampleTxs(), core.MonthKey{Year: 2024, Month: time.January})
	out, err := CategoryPie(breakdown)
	if err != nil || !bytes.HasPrefix(out, pngMagic) {
		t.Fatalf("category pie: err=%v", err)
	}

	series := ledger.MonthlySeries(sampleTxs())
	out, err = SavingsChart(series)
	if err != nil || !bytes.HasPrefix(out, pngMagic) {
		t.Fatalf("savings chart: err=%v", err)
	}

	wallets := ledger.WalletSeries(sampleTxs())
	out, err = WalletsChart(wallets)
	if err != nil || !bytes.HasPrefix(out, pngMagic) {
		t.Fatalf("wallets chart: err=%v", err)
	}
}
