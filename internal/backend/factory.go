package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/making/webfluxfn-handson/internal/amqp"
	"github.com/making/webfluxfn-handson/internal/memory"
	"github.com/making/webfluxfn-handson/internal/services"
	"github.com/making/webfluxfn-handson/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Kind {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case PostgresBackend:
		return f.createPostgresBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend kind: %s", config.Kind)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*Result, error) {
	if err := storage.MigrateSQLite(config.SQLiteDBPath); err != nil {
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}

	db, err := storage.OpenSQLite(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	backend := &Backend{
		Expenditures: storage.NewExpenditureRepository(db, storage.DialectSQLite),
		Incomes:      storage.NewIncomeRepository(db, storage.DialectSQLite),
	}

	cleanup, err := f.attachEventPublishing(backend, config)
	if err != nil {
		db.Close()
		return nil, err
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Backend: backend,
		Cleanup: func() error {
			if cleanup != nil {
				if err := cleanup(); err != nil {
					f.logger.Warn("Failed to close AMQP client", "error", err)
				}
			}
			return db.Close()
		},
	}, nil
}

func (f *DefaultFactory) createPostgresBackend(ctx context.Context, config Config) (*Result, error) {
	if err := storage.MigratePostgres(config.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to migrate Postgres database: %w", err)
	}

	db, err := storage.OpenPostgres(config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open Postgres database: %w", err)
	}

	backend := &Backend{
		Expenditures: storage.NewExpenditureRepository(db, storage.DialectPostgres),
		Incomes:      storage.NewIncomeRepository(db, storage.DialectPostgres),
	}

	cleanup, err := f.attachEventPublishing(backend, config)
	if err != nil {
		db.Close()
		return nil, err
	}

	f.logger.Info("Initialized Postgres backend")

	return &Result{
		Backend: backend,
		Cleanup: func() error {
			if cleanup != nil {
				if err := cleanup(); err != nil {
					f.logger.Warn("Failed to close AMQP client", "error", err)
				}
			}
			return db.Close()
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	backend := &Backend{
		Expenditures: memory.NewExpenditureRepository(),
		Incomes:      memory.NewIncomeRepository(),
	}

	f.logger.Info("Initialized memory backend")

	return &Result{
		Backend: backend,
		Cleanup: nil,
	}, nil
}

// attachEventPublishing wraps the repositories with record event publishing
// when an AMQP URL is configured. Publishing is best effort and never fails
// a request.
func (f *DefaultFactory) attachEventPublishing(backend *Backend, config Config) (CleanupFunc, error) {
	if config.AMQPURL == "" {
		return nil, nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without record events", "error", err)
		return nil, nil
	}

	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	backend.Expenditures = services.NewExpenditureService(backend.Expenditures, client, f.logger)
	backend.Incomes = services.NewIncomeService(backend.Incomes, client, f.logger)

	return client.Close, nil
}
