package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wealthfolio/internal/amqp"
	"wealthfolio/internal/config"
	"wealthfolio/internal/records/memory"
	"wealthfolio/internal/services"
	"wealthfolio/internal/storage"
)

// Factory creates data backends from application configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateBackend builds the store and transaction service selected by
// cfg.DataBackend.
func (f *Factory) CreateBackend(ctx context.Context, cfg *config.Config) (*Result, error) {
	switch cfg.DataBackend {
	case "sqlite":
		return f.createSQLiteBackend(cfg)
	case "memory":
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}

func (f *Factory) createSQLiteBackend(cfg *config.Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	// AMQP is optional. Without it writes still succeed, they just stay
	// pending until the worker's periodic sweep picks them up.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without sync notifications", "error", err)
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	var publisher services.SyncPublisher
	if amqpClient != nil {
		publisher = amqpClient
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &Result{
		Store:        repo,
		Transactions: services.NewTransactionService(repo, publisher),
		Cleanup: func() error {
			var errs []error
			if amqpClient != nil {
				errs = append(errs, amqpClient.Close())
			}
			errs = append(errs, repo.Close())
			return errors.Join(errs...)
		},
	}, nil
}

func (f *Factory) createMemoryBackend() (*Result, error) {
	store := memory.New()
	f.logger.Info("Initialized memory backend")

	return &Result{
		Store:        store,
		Transactions: services.NewTransactionService(store, nil),
		Cleanup:      func() error { return nil },
	}, nil
}
