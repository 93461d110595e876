package amqp

import (
	"encoding/json"
	"time"

	"finanze/internal/core"
)

// TransactionRecordedMessage mirrors one accepted transaction to consumers
// (the sheets sync worker). It carries the full record so the worker never
// has to re-read the store.
type TransactionRecordedMessage struct {
	Ref         string    `json:"ref"`
	Date        string    `json:"date"`
	Wallet      string    `json:"wallet"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewTransactionRecordedMessage(ref string, tx core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		Ref:         ref,
		Date:        tx.Date.String(),
		Wallet:      string(tx.Wallet),
		Kind:        string(tx.Kind),
		Category:    string(tx.Category),
		Description: tx.Description,
		AmountCents: tx.Amount.Cents,
		Timestamp:   time.Now(),
	}
}

func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
