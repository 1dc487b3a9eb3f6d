// Package services wraps the repositories with record event publishing.
// Publishing is best effort: a failed publish is logged and never fails
// the request, the row is already committed.
package services

import (
	"context"
	"log/slog"

	"github.com/making/webfluxfn-handson/internal/core"
)

// EventPublisher publishes record change events.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, resource, action string, id int64) error
}

// ExpenditureStore is the persistence surface the decorator wraps.
type ExpenditureStore interface {
	FindAll(ctx context.Context) ([]core.Expenditure, error)
	FindByID(ctx context.Context, id int64) (*core.Expenditure, error)
	Save(ctx context.Context, e core.Expenditure) (core.Expenditure, error)
	DeleteByID(ctx context.Context, id int64) error
}

// IncomeStore is the persistence surface the decorator wraps.
type IncomeStore interface {
	FindAll(ctx context.Context) ([]core.Income, error)
	FindByID(ctx context.Context, id int64) (*core.Income, error)
	Save(ctx context.Context, i core.Income) (core.Income, error)
	DeleteByID(ctx context.Context, id int64) error
}

const (
	resourceExpenditure = "expenditure"
	resourceIncome      = "income"

	actionCreated = "created"
	actionDeleted = "deleted"
)

// ExpenditureService decorates an ExpenditureRepository with event publishing.
type ExpenditureService struct {
	repo      ExpenditureStore
	publisher EventPublisher
	logger    *slog.Logger
}

func NewExpenditureService(repo ExpenditureStore, publisher EventPublisher, logger *slog.Logger) *ExpenditureService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpenditureService{repo: repo, publisher: publisher, logger: logger}
}

func (s *ExpenditureService) FindAll(ctx context.Context) ([]core.Expenditure, error) {
	return s.repo.FindAll(ctx)
}

func (s *ExpenditureService) FindByID(ctx context.Context, id int64) (*core.Expenditure, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ExpenditureService) Save(ctx context.Context, e core.Expenditure) (core.Expenditure, error) {
	created, err := s.repo.Save(ctx, e)
	if err != nil {
		return core.Expenditure{}, err
	}
	s.publish(ctx, resourceExpenditure, actionCreated, *created.ExpenditureID)
	return created, nil
}

func (s *ExpenditureService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, resourceExpenditure, actionDeleted, id)
	return nil
}

func (s *ExpenditureService) publish(ctx context.Context, resource, action string, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecordEvent(ctx, resource, action, id); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish record event",
			"resource", resource, "action", action, "id", id, "error", err)
	}
}

// IncomeService decorates an IncomeRepository with event publishing.
type IncomeService struct {
	repo      IncomeStore
	publisher EventPublisher
	logger    *slog.Logger
}

func NewIncomeService(repo IncomeStore, publisher EventPublisher, logger *slog.Logger) *IncomeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IncomeService{repo: repo, publisher: publisher, logger: logger}
}

func (s *IncomeService) FindAll(ctx context.Context) ([]core.Income, error) {
	return s.repo.FindAll(ctx)
}

func (s *IncomeService) FindByID(ctx context.Context, id int64) (*core.Income, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *IncomeService) Save(ctx context.Context, in core.Income) (core.Income, error) {
	created, err := s.repo.Save(ctx, in)
	if err != nil {
		return core.Income{}, err
	}
	s.publish(ctx, resourceIncome, actionCreated, *created.IncomeID)
	return created, nil
}

func (s *IncomeService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, resourceIncome, actionDeleted, id)
	return nil
}

func (s *IncomeService) publish(ctx context.Context, resource, action string, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecordEvent(ctx, resource, action, id); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish record event",
			"resource", resource, "action", action, "id", id, "error", err)
	}
}
