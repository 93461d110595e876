package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

type (
	// Kind distinguishes money coming in from money going out.
	Kind string

	// Wallet is a named cash-holding account.
	Wallet string

	// Category is a classification label from the fixed taxonomy.
	Category string

	// Date is a calendar date; the time-of-day carries no meaning.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single immutable income or expense record.
	// Corrections are made by adding an offsetting transaction.
	Transaction struct {
		Date        Date
		Wallet      Wallet
		Kind        Kind
		Category    Category
		Description string
		Amount      Money
	}
)

// Wallets is the fixed set of cash accounts.
var Wallets = []Wallet{"Isybank", "Postepay", "Paypal", "Contanti"}

// Categories is the fixed taxonomy: the first three are conventionally
// income labels, the rest expense labels, but membership is not enforced
// per kind.
var Categories = []Category{
	"Stipendio", "Bonus", "Regali o entrate occasionali",
	"Affitto", "Canone di Amministrazione", "Bollette",
	"Mutuo", "Debito", "Assicurazioni",
	"Spesa alimentare", "Trasporti", "Tempo libero",
	"Abbigliamento", "Cura personale",
	"Salute", "Educazione / Formazione", "Investimenti",
	"Varie ed eventuali",
}

// SalaryCategory is the designated income category used for the
// income-vs-expense comparison.
const SalaryCategory Category = "Stipendio"

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidWallet    = errors.New("unknown wallet")
	ErrInvalidCategory  = errors.New("unknown category")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
)

// DateLayout is the wire format for calendar dates, sortable and unambiguous.
const DateLayout = "2006-01-02"

// NewDate creates a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date. Full RFC 3339 timestamps are
// accepted too, with the time-of-day truncated.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t.Year(), t.Month(), t.Day()), nil
	}
	return Date{}, ErrInvalidDate
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the wire representation.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	}
	return ErrInvalidKind
}

func (w Wallet) Validate() error {
	for _, known := range Wallets {
		if w == known {
			return nil
		}
	}
	return ErrInvalidWallet
}

func (c Category) Validate() error {
	for _, known := range Categories {
		if c == known {
			return nil
		}
	}
	return ErrInvalidCategory
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Wallet.Validate(); err != nil {
		return err
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Category.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return t.Amount.Validate()
}

// Signed returns the amount with Income positive and Expense negative.
func (t Transaction) Signed() Money {
	if t.Kind == Expense {
		return Money{Cents: -t.Amount.Cents}
	}
	return t.Amount
}
