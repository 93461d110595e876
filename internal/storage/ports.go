package storage

import (
	"context"

	"finanze/internal/core"
)

// TransactionStore is the port every durable backend implements.
//
// Load tolerates absent or unreadable storage by returning an empty table;
// Save rewrites the whole table (last writer wins); Append is the
// load-append-save cycle used by the interactive surface and returns an
// opaque row reference.
type TransactionStore interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, txs []core.Transaction) error
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
