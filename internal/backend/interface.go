package backend

import (
	"finanze/internal/services"
)

// Result bundles a ready LedgerService with its cleanup function.
type Result struct {
	Service *services.LedgerService
	Cleanup func() error
}

// Type selects the durable backend.
type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
)

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type Type

	// json backend
	JSONDataFile string

	// sqlite backend
	SQLiteDBPath string

	// optional mirror queue
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}
