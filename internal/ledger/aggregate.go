// Package ledger derives aggregate views from a transaction snapshot.
//
// Every function here is pure: it takes the working set as an argument,
// holds no state, and returns zero values or empty slices for empty input.
// Callers decide whether the working set is month-scoped or all-time.
package ledger

import (
	"sort"

	"finanze/internal/core"
)

type (
	// Summary is the income/expense/savings triple for a working set.
	// Savings is income minus expense and may be negative.
	Summary struct {
		Income  core.Money
		Expense core.Money
		Savings core.Money
	}

	// CategoryAmount is an amount aggregated under a category label.
	CategoryAmount struct {
		Category core.Category
		Amount   core.Money
	}

	// MonthlyPoint is one month of the savings series.
	MonthlyPoint struct {
		Month             core.MonthKey
		Income            core.Money
		Expense           core.Money
		Savings           core.Money
		CumulativeSavings core.Money
	}

	// WalletPoint carries, for one month, the cumulative signed balance of
	// every wallet up to and including that month.
	WalletPoint struct {
		Month    core.MonthKey
		Balances map[core.Wallet]core.Money
	}

	// Split compares the designated income category against total expenses
	// for a month. Remainder is floored at zero.
	Split struct {
		Income    core.Money
		Expense   core.Money
		Remainder core.Money
	}
)

// FilterMonth returns the transactions dated inside the given month.
// This is the single month filter used everywhere, dashboard and report alike.
func FilterMonth(txs []core.Transaction, month core.MonthKey) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if month.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// WalletBalance sums income minus expense for one wallet over the working set.
func WalletBalance(txs []core.Transaction, wallet core.Wallet) core.Money {
	var cents int64
	for _, t := range txs {
		if t.Wallet == wallet {
			cents += t.Signed().Cents
		}
	}
	return core.Money{Cents: cents}
}

// Totals computes the income/expense/savings triple over the working set.
func Totals(txs []core.Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Kind {
		case core.Income:
			s.Income = s.Income.Add(t.Amount)
		case core.Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Savings = s.Income.Sub(s.Expense)
	return s
}

// MonthlySeries groups by calendar month, sums income and expense per group,
// derives per-month savings and the running savings total in chronological
// order. Months with no transactions of one kind contribute zero for it.
func MonthlySeries(txs []core.Transaction) []MonthlyPoint {
	type bucket struct {
		income  int64
		expense int64
	}
	buckets := make(map[core.MonthKey]*bucket)
	for _, t := range txs {
		key := core.MonthOf(t.Date)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		switch t.Kind {
		case core.Income:
			b.income += t.Amount.Cents
		case core.Expense:
			b.expense += t.Amount.Cents
		}
	}

	months := sortedMonths(buckets)
	out := make([]MonthlyPoint, 0, len(months))
	var running int64
	for _, m := range months {
		b := buckets[m]
		savings := b.income - b.expense
		running += savings
		out = append(out, MonthlyPoint{
			Month:             m,
			Income:            core.Money{Cents: b.income},
			Expense:           core.Money{Cents: b.expense},
			Savings:           core.Money{Cents: savings},
			CumulativeSavings: core.Money{Cents: running},
		})
	}
	return out
}

// WalletSeries computes, per chronological month, the cumulative signed
// balance of every wallet. Wallets with no activity in a month carry their
// prior value forward.
func WalletSeries(txs []core.Transaction) []WalletPoint {
	deltas := make(map[core.MonthKey]map[core.Wallet]int64)
	for _, t := range txs {
		key := core.MonthOf(t.Date)
		d := deltas[key]
		if d == nil {
			d = make(map[core.Wallet]int64)
			deltas[key] = d
		}
		d[t.Wallet] += t.Signed().Cents
	}

	months := sortedMonths(deltas)
	running := make(map[core.Wallet]int64, len(core.Wallets))
	out := make([]WalletPoint, 0, len(months))
	for _, m := range months {
		for w, delta := range deltas[m] {
			running[w] += delta
		}
		balances := make(map[core.Wallet]core.Money, len(core.Wallets))
		for _, w := range core.Wallets {
			balances[w] = core.Money{Cents: running[w]}
		}
		out = append(out, WalletPoint{Month: m, Balances: balances})
	}
	return out
}

// CategoryBreakdown sums Expense-kind amounts per category for the given
// month, sorted by amount descending. Ties order by category name so the
// result is stable. Empty when the month has no expenses.
func CategoryBreakdown(txs []core.Transaction, month core.MonthKey) []CategoryAmount {
	sums := make(map[core.Category]int64)
	for _, t := range txs {
		if t.Kind == core.Expense && month.Contains(t.Date) {
			sums[t.Category] += t.Amount.Cents
		}
	}
	out := make([]CategoryAmount, 0, len(sums))
	for c, cents := range sums {
		out = append(out, CategoryAmount{Category: c, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

// IncomeVsExpense totals one designated income category against all expenses
// for the month. The remainder never goes below zero, even when expenses
// exceed that category's income.
func IncomeVsExpense(txs []core.Transaction, month core.MonthKey, category core.Category) Split {
	var split Split
	for _, t := range txs {
		if !month.Contains(t.Date) {
			continue
		}
		switch {
		case t.Kind == core.Income && t.Category == category:
			split.Income = split.Income.Add(t.Amount)
		case t.Kind == core.Expense:
			split.Expense = split.Expense.Add(t.Amount)
		}
	}
	if rem := split.Income.Sub(split.Expense); rem.Cents > 0 {
		split.Remainder = rem
	}
	return split
}

func sortedMonths[V any](buckets map[core.MonthKey]V) []core.MonthKey {
	months := make([]core.MonthKey, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}
