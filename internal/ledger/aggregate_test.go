package ledger

import (
	"testing"
	"time"

	"finanze/internal/core"
)

var (
	jan24 = core.MonthKey{Year: 2024, Month: time.January}
	feb24 = core.MonthKey{Year: 2024, Month: time.February}
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

func TestFilterMonth(t *testing.T) {
	txs := sampleTxs()
	jan := FilterMonth(txs, jan24)
	if len(jan) != 2 {
		t.Fatalf("january expected 2 transactions, got %d", len(jan))
	}
	feb := FilterMonth(txs, feb24)
	if len(feb) != 1 || feb[0].Description != "metro" {
		t.Fatalf("unexpected february set: %+v", feb)
	}
	if got := FilterMonth(txs, core.MonthKey{Year: 2023, Month: time.January}); len(got) != 0 {
		t.Fatalf("expected empty set for untouched month, got %d", len(got))
	}
}

func TestTotals(t *testing.T) {
	s := Totals(sampleTxs())
	if s.Income.Cents != 200000 {
		t.Fatalf("income=%d", s.Income.Cents)
	}
	if s.Expense.Cents != 19050 {
		t.Fatalf("expense=%d", s.Expense.Cents)
	}
	if s.Savings.Cents != 180950 {
		t.Fatalf("savings=%d", s.Savings.Cents)
	}
	if s.Savings != s.Income.Sub(s.Expense) {
		t.Fatalf("savings must equal income minus expense")
	}
}

func TestTotalsEmpty(t *testing.T) {
	s := Totals(nil)
	if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Savings.Cents != 0 {
		t.Fatalf("empty set must yield zero summary, got %+v", s)
	}
}

func TestWalletBalance(t *testing.T) {
	txs := sampleTxs()
	cases := []struct {
		wallet core.Wallet
		cents  int64
	}{
		{"Isybank", 184950},
		{"Postepay", -4000},
		{"Paypal", 0},
		{"Contanti", 0},
	}
	for _, tc := range cases {
		if got := WalletBalance(txs, tc.wallet); got.Cents != tc.cents {
			t.Fatalf("%s balance=%d, want %d", tc.wallet, got.Cents, tc.cents)
		}
	}
}

func TestMonthlySeries(t *testing.T) {
	points := MonthlySeries(sampleTxs())
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	jan := points[0]
	if jan.Month != jan24 || jan.Income.Cents != 200000 || jan.Expense.Cents != 15050 {
		t.Fatalf("unexpected january point: %+v", jan)
	}
	if jan.Savings.Cents != 184950 || jan.CumulativeSavings.Cents != 184950 {
		t.Fatalf("january savings: %+v", jan)
	}

	feb := points[1]
	if feb.Month != feb24 || feb.Income.Cents != 0 || feb.Expense.Cents != 4000 {
		t.Fatalf("unexpected february point: %+v", feb)
	}
	if feb.Savings.Cents != -4000 || feb.CumulativeSavings.Cents != 180950 {
		t.Fatalf("february savings: %+v", feb)
	}

	// Per-month savings reconcile with the grand totals.
	var sum int64
	for _, p := range points {
		if p.Savings != p.Income.Sub(p.Expense) {
			t.Fatalf("point %s savings mismatch", p.Month)
		}
		sum += p.Savings.Cents
	}
	total := Totals(sampleTxs())
	if sum != total.Savings.Cents {
		t.Fatalf("monthly savings sum=%d, total=%d", sum, total.Savings.Cents)
	}
	if points[len(points)-1].CumulativeSavings != total.Savings {
		t.Fatalf("final cumulative must equal all-time savings")
	}
}

func TestMonthlySeriesChronological(t *testing.T) {
	// Input deliberately out of order, spanning a year boundary.
	txs := []core.Transaction{
		{Date: core.NewDate(2024, time.March, 1), Kind: core.Expense, Wallet: "Contanti", Category: "Trasporti", Description: "a", Amount: core.Money{Cents: 100}},
		{Date: core.NewDate(2023, time.December, 1), Kind: core.Income, Wallet: "Contanti", Category: "Bonus", Description: "b", Amount: core.Money{Cents: 100}},
		{Date: core.NewDate(2024, time.January, 1), Kind: core.Expense, Wallet: "Contanti", Category: "Bollette", Description: "c", Amount: core.Money{Cents: 100}},
	}
	points := MonthlySeries(txs)
	want := []core.MonthKey{
		{Year: 2023, Month: time.December},
		{Year: 2024, Month: time.January},
		{Year: 2024, Month: time.March},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, p := range points {
		if p.Month != want[i] {
			t.Fatalf("point %d: got %s, want %s", i, p.Month, want[i])
		}
	}
}

func TestMonthlySeriesEmpty(t *testing.T) {
	if got := MonthlySeries(nil); len(got) != 0 {
		t.Fatalf("expected empty series, got %d points", len(got))
	}
}

func TestWalletSeriesCarriesBalancesForward(t *testing.T) {
	points := WalletSeries(sampleTxs())
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	jan := points[0]
	if jan.Balances["Isybank"].Cents != 184950 || jan.Balances["Postepay"].Cents != 0 {
		t.Fatalf("unexpected january balances: %+v", jan.Balances)
	}

	feb := points[1]
	// Isybank untouched in february keeps its january value.
	if feb.Balances["Isybank"].Cents != 184950 {
		t.Fatalf("isybank not carried forward: %+v", feb.Balances)
	}
	if feb.Balances["Postepay"].Cents != -4000 {
		t.Fatalf("unexpected postepay balance: %+v", feb.Balances)
	}
	for _, p := range points {
		for _, w := range core.Wallets {
			if _, ok := p.Balances[w]; !ok {
				t.Fatalf("point %s missing wallet %s", p.Month, w)
			}
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := sampleTxs()
	jan := CategoryBreakdown(txs, jan24)
	if len(jan) != 1 || jan[0].Category != "Spesa alimentare" || jan[0].Amount.Cents != 15050 {
		t.Fatalf("unexpected january breakdown: %+v", jan)
	}
	feb := CategoryBreakdown(txs, feb24)
	if len(feb) != 1 || feb[0].Category != "Trasporti" || feb[0].Amount.Cents != 4000 {
		t.Fatalf("unexpected february breakdown: %+v", feb)
	}
	if got := CategoryBreakdown(txs, core.MonthKey{Year: 2023, Month: time.June}); got != nil {
		t.Fatalf("expected nil breakdown for empty month, got %+v", got)
	}
}

func TestCategoryBreakdownSortOrder(t *testing.T) {
	txs := []core.Transaction{
		{Date: core.NewDate(2024, time.January, 1), Kind: core.Expense, Wallet: "Contanti", Category: "Trasporti", Description: "a", Amount: core.Money{Cents: 500}},
		{Date: core.NewDate(2024, time.January, 2), Kind: core.Expense, Wallet: "Contanti", Category: "Bollette", Description: "b", Amount: core.Money{Cents: 900}},
		{Date: core.NewDate(2024, time.January, 3), Kind: core.Expense, Wallet: "Contanti", Category: "Salute", Description: "c", Amount: core.Money{Cents: 500}},
		{Date: core.NewDate(2024, time.January, 4), Kind: core.Income, Wallet: "Contanti", Category: "Bonus", Description: "d", Amount: core.Money{Cents: 9999}},
	}
	got := CategoryBreakdown(txs, jan24)
	want := []CategoryAmount{
		{Category: "Bollette", Amount: core.Money{Cents: 900}},
		{Category: "Salute", Amount: core.Money{Cents: 500}},
		{Category: "Trasporti", Amount: core.Money{Cents: 500}},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIncomeVsExpense(t *testing.T) {
	txs := sampleTxs()

	jan := IncomeVsExpense(txs, jan24, core.SalaryCategory)
	if jan.Income.Cents != 200000 || jan.Expense.Cents != 15050 || jan.Remainder.Cents != 184950 {
		t.Fatalf("unexpected january split: %+v", jan)
	}

	// February has expenses but no salary: remainder floored at zero.
	feb := IncomeVsExpense(txs, feb24, core.SalaryCategory)
	if feb.Income.Cents != 0 || feb.Expense.Cents != 4000 || feb.Remainder.Cents != 0 {
		t.Fatalf("unexpected february split: %+v", feb)
	}
}

func TestIncomeVsExpenseIgnoresOtherIncome(t *testing.T) {
	txs := []core.Transaction{
		{Date: core.NewDate(2024, time.January, 1), Kind: core.Income, Wallet: "Contanti", Category: "Bonus", Description: "a", Amount: core.Money{Cents: 50000}},
		{Date: core.NewDate(2024, time.January, 2), Kind: core.Expense, Wallet: "Contanti", Category: "Trasporti", Description: "b", Amount: core.Money{Cents: 1000}},
	}
	split := IncomeVsExpense(txs, jan24, core.SalaryCategory)
	if split.Income.Cents != 0 {
		t.Fatalf("bonus income must not count as salary: %+v", split)
	}
	if split.Expense.Cents != 1000 || split.Remainder.Cents != 0 {
		t.Fatalf("unexpected split: %+v", split)
	}
}
