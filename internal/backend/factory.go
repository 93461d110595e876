package backend

import (
	"fmt"
	"log/slog"

	"finanze/internal/amqp"
	"finanze/internal/services"
	"finanze/internal/storage"
)

// Factory creates the ledger service over the configured durable backend.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the store for the configured backend type, attaches the
// optional AMQP mirror client and returns the ready service.
func (f *Factory) Create(cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	var (
		store storage.TransactionStore
		err   error
	)
	switch cfg.Type {
	case SQLiteBackend:
		store, err = storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	default:
		store, err = storage.NewJSONFileStore(cfg.JSONDataFile)
		if err != nil {
			return nil, fmt.Errorf("initialize JSON file store: %w", err)
		}
		f.logger.Info("Initialized JSON file backend", "data_file", cfg.JSONDataFile)
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without mirror", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	svc := services.NewLedgerService(store, amqpClient)
	return &Result{
		Service: svc,
		Cleanup: svc.Close,
	}, nil
}
