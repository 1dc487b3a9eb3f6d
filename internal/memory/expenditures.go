// Package memory provides in-memory repositories backed by a mutex
// guarded slice. Each repository owns its own id counter, so independent
// instances never share state. The implementation is used by the demo
// backend and by handler tests.
package memory

import (
	"context"
	"sync"

	"github.com/making/webfluxfn-handson/internal/core"
)

// ExpenditureRepository is an in-memory core.Expenditure store.
type ExpenditureRepository struct {
	mu           sync.Mutex
	expenditures []core.Expenditure
	nextID       int64
}

// NewExpenditureRepository creates an empty repository with ids starting at 1.
func NewExpenditureRepository() *ExpenditureRepository {
	return &ExpenditureRepository{nextID: 1}
}

// Reset replaces the stored expenditures and the next id. Intended for tests.
func (r *ExpenditureRepository) Reset(expenditures []core.Expenditure, nextID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenditures = append([]core.Expenditure(nil), expenditures...)
	r.nextID = nextID
}

func (r *ExpenditureRepository) FindAll(ctx context.Context) ([]core.Expenditure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Expenditure, len(r.expenditures))
	copy(out, r.expenditures)
	return out, nil
}

func (r *ExpenditureRepository) FindByID(ctx context.Context, id int64) (*core.Expenditure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.expenditures {
		if e.ExpenditureID != nil && *e.ExpenditureID == id {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ExpenditureRepository) Save(ctx context.Context, e core.Expenditure) (core.Expenditure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := e.WithID(r.nextID)
	r.nextID++
	r.expenditures = append(r.expenditures, created)
	return created, nil
}

func (r *ExpenditureRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.expenditures {
		if e.ExpenditureID != nil && *e.ExpenditureID == id {
			r.expenditures = append(r.expenditures[:i], r.expenditures[i+1:]...)
			return nil
		}
	}
	return nil
}
