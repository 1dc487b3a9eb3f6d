package memory

import (
	"context"
	"sync"

	"github.com/making/webfluxfn-handson/internal/core"
)

// IncomeRepository is an in-memory core.Income store.
type IncomeRepository struct {
	mu      sync.Mutex
	incomes []core.Income
	nextID  int64
}

// NewIncomeRepository creates an empty repository with ids starting at 1.
func NewIncomeRepository() *IncomeRepository {
	return &IncomeRepository{nextID: 1}
}

// Reset replaces the stored incomes and the next id. Intended for tests.
func (r *IncomeRepository) Reset(incomes []core.Income, nextID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incomes = append([]core.Income(nil), incomes...)
	r.nextID = nextID
}

func (r *IncomeRepository) FindAll(ctx context.Context) ([]core.Income, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Income, len(r.incomes))
	copy(out, r.incomes)
	return out, nil
}

func (r *IncomeRepository) FindByID(ctx context.Context, id int64) (*core.Income, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, in := range r.incomes {
		if in.IncomeID != nil && *in.IncomeID == id {
			found := in
			return &found, nil
		}
	}
	return nil, nil
}

func (r *IncomeRepository) Save(ctx context.Context, in core.Income) (core.Income, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := in.WithID(r.nextID)
	r.nextID++
	r.incomes = append(r.incomes, created)
	return created, nil
}

func (r *IncomeRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, in := range r.incomes {
		if in.IncomeID != nil && *in.IncomeID == id {
			r.incomes = append(r.incomes[:i], r.incomes[i+1:]...)
			return nil
		}
	}
	return nil
}
