package storage

import (
	"encoding/json"
	"fmt"

	"finanze/internal/core"
)

// record is the wire form of one transaction in the JSON file: ISO-8601 date
// string, enum names as strings, amount as a plain decimal number. Field
// order matches the file layout used by exports.
type record struct {
	Date        string      `json:"date"`
	Wallet      string      `json:"wallet"`
	Kind        string      `json:"kind"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
}

func toRecord(t core.Transaction) record {
	return record{
		Date:        t.Date.String(),
		Wallet:      string(t.Wallet),
		Kind:        string(t.Kind),
		Category:    string(t.Category),
		Description: t.Description,
		Amount:      json.Number(t.Amount.DecimalString()),
	}
}

// fromRecord converts a stored row back into a Transaction. Rows with an
// unparseable date or amount are reported as errors; the loader drops them
// rather than repairing.
func fromRecord(r record) (core.Transaction, error) {
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", r.Date, err)
	}
	cents, err := core.ParseDecimalToCents(r.Amount.String())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", r.Amount, err)
	}
	return core.Transaction{
		Date:        date,
		Wallet:      core.Wallet(r.Wallet),
		Kind:        parseKind(r.Kind),
		Category:    core.Category(r.Category),
		Description: r.Description,
		Amount:      core.Money{Cents: cents},
	}, nil
}

// parseKind accepts the canonical names plus the legacy Italian labels found
// in files written by the first version of the tracker.
func parseKind(s string) core.Kind {
	switch s {
	case "Entrata":
		return core.Income
	case "Uscita":
		return core.Expense
	}
	return core.Kind(s)
}
