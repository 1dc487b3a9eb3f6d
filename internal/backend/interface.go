package backend

import (
	"context"

	"github.com/making/webfluxfn-handson/internal/core"
)

// ExpenditureRepository provides persistence for expenditures.
type ExpenditureRepository interface {
	// FindAll returns all expenditures ordered by id.
	FindAll(ctx context.Context) ([]core.Expenditure, error)
	// FindByID returns the expenditure with the given id, or nil when absent.
	FindByID(ctx context.Context, id int64) (*core.Expenditure, error)
	// Save persists a new expenditure and returns it with its assigned id.
	Save(ctx context.Context, e core.Expenditure) (core.Expenditure, error)
	// DeleteByID removes the expenditure with the given id. Deleting an
	// absent id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

// IncomeRepository provides persistence for incomes.
type IncomeRepository interface {
	FindAll(ctx context.Context) ([]core.Income, error)
	FindByID(ctx context.Context, id int64) (*core.Income, error)
	Save(ctx context.Context, i core.Income) (core.Income, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Backend bundles the repositories a running server needs.
type Backend struct {
	Expenditures ExpenditureRepository
	Incomes      IncomeRepository
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the backend instance and optional cleanup function.
type Result struct {
	Backend *Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
