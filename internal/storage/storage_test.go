package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/making/webfluxfn-handson/internal/core"
)

func openTestDB(t *testing.T) *ExpenditureRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := MigrateSQLite(dbPath); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewExpenditureRepository(db, DialectSQLite)
}

func TestExpenditureRepositorySQLite(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty table, got %v", all)
	}

	book, err := repo.Save(ctx, core.Expenditure{
		ExpenditureName: "本",
		UnitPrice:       2000,
		Quantity:        1,
		ExpenditureDate: core.NewDate(2019, 4, 1),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if book.ExpenditureID == nil || *book.ExpenditureID != 1 {
		t.Fatalf("expected id 1, got %v", book.ExpenditureID)
	}

	coffee, err := repo.Save(ctx, core.Expenditure{
		ExpenditureName: "コーヒー",
		UnitPrice:       300,
		Quantity:        2,
		ExpenditureDate: core.NewDate(2019, 4, 2),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if *coffee.ExpenditureID != 2 {
		t.Fatalf("expected id 2, got %d", *coffee.ExpenditureID)
	}

	all, err = repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}
	if *all[0].ExpenditureID != 1 || *all[1].ExpenditureID != 2 {
		t.Fatalf("expected rows ordered by id, got %v", all)
	}
	if all[0].ExpenditureDate.String() != "2019-04-01" {
		t.Fatalf("date round trip failed: %s", all[0].ExpenditureDate)
	}

	found, err := repo.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found == nil || found.ExpenditureName != "本" || found.UnitPrice != 2000 {
		t.Fatalf("unexpected expenditure %v", found)
	}

	absent, err := repo.FindByID(ctx, 99)
	if err != nil {
		t.Fatalf("find absent: %v", err)
	}
	if absent != nil {
		t.Fatalf("expected nil for an absent id, got %v", absent)
	}

	if err := repo.DeleteByID(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteByID(ctx, 1); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	all, _ = repo.FindAll(ctx)
	if len(all) != 1 || *all[0].ExpenditureID != 2 {
		t.Fatalf("expected only row 2 to remain, got %v", all)
	}
}

func TestIncomeRepositorySQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := MigrateSQLite(dbPath); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	repo := NewIncomeRepository(db, DialectSQLite)

	salary, err := repo.Save(ctx, core.Income{
		IncomeName: "給与",
		Amount:     200000,
		IncomeDate: core.NewDate(2019, 4, 15),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if salary.IncomeID == nil || *salary.IncomeID != 1 {
		t.Fatalf("expected id 1, got %v", salary.IncomeID)
	}

	found, err := repo.FindByID(ctx, *salary.IncomeID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.IncomeName != "給与" || found.Amount != 200000 {
		t.Fatalf("unexpected income %v", found)
	}
	if found.IncomeDate.String() != "2019-04-15" {
		t.Fatalf("date round trip failed: %s", found.IncomeDate)
	}
}

func TestMigrateSQLiteIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := MigrateSQLite(dbPath); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := MigrateSQLite(dbPath); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
