package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"finanze/internal/core"
)

// JSONFileStore keeps the whole transaction table in a single JSON file.
// Every save rewrites the file; a missing or corrupt file reads as an empty
// table and is never surfaced as an error.
type JSONFileStore struct {
	mu   sync.Mutex
	path string
}

func NewJSONFileStore(path string) (*JSONFileStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &JSONFileStore{path: path}, nil
}

// Load reads the full table. Absent or malformed storage yields an empty
// table; rows whose date or amount fails to parse are silently excluded.
func (s *JSONFileStore) Load(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *JSONFileStore) loadLocked(ctx context.Context) ([]core.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Data file unreadable, starting empty", "path", s.path, "error", err)
		}
		return nil, nil
	}
	var rows []record
	if err := json.Unmarshal(data, &rows); err != nil {
		slog.WarnContext(ctx, "Data file malformed, starting empty", "path", s.path, "error", err)
		return nil, nil
	}
	txs := make([]core.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := fromRecord(row)
		if err != nil {
			slog.WarnContext(ctx, "Dropping unparseable row", "path", s.path, "row", i, "error", err)
			continue
		}
		txs = append(txs, tx)
	}
	if len(txs) == 0 {
		return nil, nil
	}
	return txs, nil
}

// Save serializes the whole table in insertion order, overwriting the file.
func (s *JSONFileStore) Save(ctx context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, txs)
}

func (s *JSONFileStore) saveLocked(ctx context.Context, txs []core.Transaction) error {
	rows := make([]record, len(txs))
	for i, tx := range txs {
		rows[i] = toRecord(tx)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	slog.DebugContext(ctx, "Transactions saved", "path", s.path, "count", len(txs))
	return nil
}

// Append validates the transaction, reloads the table, appends and rewrites
// the file. The returned reference is the 1-based row position.
func (s *JSONFileStore) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, err := s.loadLocked(ctx)
	if err != nil {
		return "", err
	}
	txs = append(txs, tx)
	if err := s.saveLocked(ctx, txs); err != nil {
		return "", err
	}
	return fmt.Sprintf("json:%d", len(txs)), nil
}
