package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"finanze/internal/core"
)

// csvHeader mirrors the field names of the durable storage format.
var csvHeader = []string{"date", "wallet", "kind", "category", "description", "amount"}

// CSV serializes the full transaction table, one row per transaction with a
// header row, UTF-8 encoded.
func CSV(txs []core.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		row := []string{
			t.Date.String(),
			string(t.Wallet),
			string(t.Kind),
			string(t.Category),
			t.Description,
			t.Amount.DecimalString(),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// CSVFileName is the download name for the tabular export.
const CSVFileName = "finanze.csv"
