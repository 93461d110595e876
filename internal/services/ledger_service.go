package services

import (
	"context"
	"fmt"
	"log/slog"

	"finanze/internal/amqp"
	"finanze/internal/core"
	"finanze/internal/storage"
)

// LedgerService orchestrates transaction writes across the durable store and
// the optional AMQP mirror queue.
type LedgerService struct {
	store      storage.TransactionStore
	amqpClient *amqp.Client
}

func NewLedgerService(store storage.TransactionStore, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// Add validates and persists one transaction, then publishes a mirror
// message. A failed publish never fails the write: the transaction is
// already durable locally.
func (s *LedgerService) Add(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}

	ref, err := s.store.Append(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishRecorded(ctx, ref, tx); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction message",
			"ref", ref, "error", err)
	}

	return ref, nil
}

// Snapshot returns the full transaction table for aggregation.
func (s *LedgerService) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return txs, nil
}

func (s *LedgerService) publishRecorded(ctx context.Context, ref string, tx core.Transaction) error {
	if s.amqpClient == nil {
		return nil
	}
	return s.amqpClient.PublishTransactionRecorded(ctx, ref, tx)
}

// Close closes the AMQP connection and, when the store holds one, the
// underlying database handle.
func (s *LedgerService) Close() error {
	var errs []error

	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
