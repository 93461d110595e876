package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"finanze/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the alternate durable backend: one table holding the
// transaction rows, schema managed by embedded migrations.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load returns all rows in insertion order. Rows whose date fails to parse
// are dropped, matching the flat-file loader's recovery behavior.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, wallet, kind, category, description, amount_cents
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			dateStr, wallet, kind, category, description string
			cents                                        int64
		)
		if err := rows.Scan(&dateStr, &wallet, &kind, &category, &description, &cents); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			slog.WarnContext(ctx, "Dropping row with unparseable date", "date", dateStr)
			continue
		}
		txs = append(txs, core.Transaction{
			Date:        date,
			Wallet:      core.Wallet(wallet),
			Kind:        parseKind(kind),
			Category:    core.Category(category),
			Description: description,
			Amount:      core.Money{Cents: cents},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// Save replaces the whole table, mirroring the flat file's full rewrite.
func (r *SQLiteRepository) Save(ctx context.Context, txs []core.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, t := range txs {
		if _, err := insertTransaction(ctx, dbTx, t); err != nil {
			return err
		}
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}
	return nil
}

// Append inserts one row and returns its database id as the row reference.
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	id, err := insertTransaction(ctx, r.db, t)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"description", t.Description,
		"amount_cents", t.Amount.Cents,
		"wallet", t.Wallet,
		"kind", t.Kind)
	return strconv.FormatInt(id, 10), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, db execer, t core.Transaction) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO transactions (date, wallet, kind, category, description, amount_cents)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Date.String(), string(t.Wallet), string(t.Kind), string(t.Category),
		t.Description, t.Amount.Cents)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}
