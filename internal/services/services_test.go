package services

import (
	"context"
	"errors"
	"testing"

	"github.com/making/webfluxfn-handson/internal/core"
	"github.com/making/webfluxfn-handson/internal/memory"
)

type fakePublisher struct {
	events []string
	err    error
}

func (f *fakePublisher) PublishRecordEvent(ctx context.Context, resource, action string, id int64) error {
	f.events = append(f.events, resource+"/"+action)
	return f.err
}

func TestIncomeServicePublishesOnSave(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewIncomeService(memory.NewIncomeRepository(), pub, nil)

	created, err := svc.Save(ctx, core.Income{IncomeName: "給与", Amount: 200000, IncomeDate: core.NewDate(2019, 4, 15)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if created.IncomeID == nil {
		t.Fatal("expected an assigned id")
	}
	if len(pub.events) != 1 || pub.events[0] != "income/created" {
		t.Fatalf("unexpected events %v", pub.events)
	}
}

func TestIncomeServicePublishesOnDelete(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewIncomeService(memory.NewIncomeRepository(), pub, nil)

	if err := svc.DeleteByID(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0] != "income/deleted" {
		t.Fatalf("unexpected events %v", pub.events)
	}
}

func TestIncomeServiceSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewIncomeService(memory.NewIncomeRepository(), pub, nil)

	created, err := svc.Save(ctx, core.Income{IncomeName: "給与", Amount: 200000, IncomeDate: core.NewDate(2019, 4, 15)})
	if err != nil {
		t.Fatalf("a publish failure must not fail the save: %v", err)
	}

	found, err := svc.FindByID(ctx, *created.IncomeID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil {
		t.Fatal("expected the income to be stored")
	}
}

func TestIncomeServiceNilPublisher(t *testing.T) {
	ctx := context.Background()
	svc := NewIncomeService(memory.NewIncomeRepository(), nil, nil)

	if _, err := svc.Save(ctx, core.Income{IncomeName: "給与", Amount: 200000, IncomeDate: core.NewDate(2019, 4, 15)}); err != nil {
		t.Fatalf("save without publisher: %v", err)
	}
}

func TestExpenditureServicePublishes(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewExpenditureService(memory.NewExpenditureRepository(), pub, nil)

	created, err := svc.Save(ctx, core.Expenditure{ExpenditureName: "本", UnitPrice: 2000, Quantity: 1, ExpenditureDate: core.NewDate(2019, 4, 1)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.DeleteByID(ctx, *created.ExpenditureID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{"expenditure/created", "expenditure/deleted"}
	if len(pub.events) != len(want) {
		t.Fatalf("unexpected events %v", pub.events)
	}
	for i := range want {
		if pub.events[i] != want[i] {
			t.Fatalf("event %d: got %s, want %s", i, pub.events[i], want[i])
		}
	}
}
