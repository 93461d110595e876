package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finanze/internal/core"
)

type fakeStore struct {
	txs       []core.Transaction
	appendErr error
	loadErr   error
	closed    bool
}

func (f *fakeStore) Load(ctx context.Context) ([]core.Transaction, error) {
	return f.txs, f.loadErr
}

func (f *fakeStore) Save(ctx context.Context, txs []core.Transaction) error {
	f.txs = txs
	return nil
}

func (f *fakeStore) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if f.appendErr != nil {
		return "", f.appendErr
	}
	f.txs = append(f.txs, tx)
	return "fake:1", nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

func validTx() core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(2024, time.January, 5),
		Wallet:      "Isybank",
		Kind:        core.Income,
		Category:    "Stipendio",
		Description: "paycheck",
		Amount:      core.Money{Cents: 200000},
	}
}

func TestAddValidatesBeforeStoring(t *testing.T) {
	store := &fakeStore{}
	svc := NewLedgerService(store, nil)

	bad := validTx()
	bad.Amount = core.Money{}
	if _, err := svc.Add(context.Background(), bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(store.txs) != 0 {
		t.Fatalf("invalid transaction must never reach the store")
	}
}

func TestAddPersists(t *testing.T) {
	store := &fakeStore{}
	svc := NewLedgerService(store, nil)

	ref, err := svc.Add(context.Background(), validTx())
	if err != nil || ref != "fake:1" {
		t.Fatalf("unexpected add: ref=%q err=%v", ref, err)
	}
	if len(store.txs) != 1 {
		t.Fatalf("expected 1 stored transaction, got %d", len(store.txs))
	}
}

func TestAddWrapsStoreError(t *testing.T) {
	sentinel := errors.New("disk full")
	svc := NewLedgerService(&fakeStore{appendErr: sentinel}, nil)

	if _, err := svc.Add(context.Background(), validTx()); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	store := &fakeStore{txs: []core.Transaction{validTx()}}
	svc := NewLedgerService(store, nil)

	txs, err := svc.Snapshot(context.Background())
	if err != nil || len(txs) != 1 {
		t.Fatalf("unexpected snapshot: txs=%d err=%v", len(txs), err)
	}

	sentinel := errors.New("io error")
	svc = NewLedgerService(&fakeStore{loadErr: sentinel}, nil)
	if _, err := svc.Snapshot(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped load error, got %v", err)
	}
}

func TestCloseClosesStore(t *testing.T) {
	store := &fakeStore{}
	svc := NewLedgerService(store, nil)
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !store.closed {
		t.Fatalf("store not closed")
	}
}
