package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/making/webfluxfn-handson/internal/core"
)

// IncomeRepository persists incomes in a SQL database.
type IncomeRepository struct {
	db      *sql.DB
	dialect Dialect

	findAllQuery  string
	findByIDQuery string
	insertQuery   string
	deleteQuery   string
}

// NewIncomeRepository creates a repository speaking the given dialect.
func NewIncomeRepository(db *sql.DB, dialect Dialect) *IncomeRepository {
	r := &IncomeRepository{db: db, dialect: dialect}
	switch dialect {
	case DialectPostgres:
		r.findAllQuery = `SELECT income_id, income_name, amount, income_date FROM income ORDER BY income_id`
		r.findByIDQuery = `SELECT income_id, income_name, amount, income_date FROM income WHERE income_id = $1`
		r.insertQuery = `INSERT INTO income (income_name, amount, income_date) VALUES ($1, $2, $3) RETURNING income_id`
		r.deleteQuery = `DELETE FROM income WHERE income_id = $1`
	default:
		r.findAllQuery = `SELECT income_id, income_name, amount, income_date FROM income ORDER BY income_id`
		r.findByIDQuery = `SELECT income_id, income_name, amount, income_date FROM income WHERE income_id = ?`
		r.insertQuery = `INSERT INTO income (income_name, amount, income_date) VALUES (?, ?, ?)`
		r.deleteQuery = `DELETE FROM income WHERE income_id = ?`
	}
	return r
}

// FindAll returns all incomes ordered by id.
func (r *IncomeRepository) FindAll(ctx context.Context) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx, r.findAllQuery)
	if err != nil {
		return nil, fmt.Errorf("query incomes: %w", err)
	}
	defer rows.Close()

	incomes := []core.Income{}
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incomes: %w", err)
	}

	return incomes, nil
}

// FindByID returns the income with the given id, or nil when absent.
func (r *IncomeRepository) FindByID(ctx context.Context, id int64) (*core.Income, error) {
	rows, err := r.db.QueryContext(ctx, r.findByIDQuery, id)
	if err != nil {
		return nil, fmt.Errorf("query income %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query income %d: %w", id, err)
		}
		return nil, nil
	}

	in, err := scanIncome(rows)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// Save inserts the income and returns it with its assigned id.
func (r *IncomeRepository) Save(ctx context.Context, in core.Income) (core.Income, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Income{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if r.dialect == DialectPostgres {
		err = tx.QueryRowContext(ctx, r.insertQuery,
			in.IncomeName, in.Amount, in.IncomeDate).Scan(&id)
		if err != nil {
			return core.Income{}, fmt.Errorf("insert income: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, r.insertQuery,
			in.IncomeName, in.Amount, in.IncomeDate); err != nil {
			return core.Income{}, fmt.Errorf("insert income: %w", err)
		}
		if err := tx.QueryRowContext(ctx, "SELECT last_insert_rowid()").Scan(&id); err != nil {
			return core.Income{}, fmt.Errorf("read inserted id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.Income{}, fmt.Errorf("commit transaction: %w", err)
	}

	return in.WithID(id), nil
}

// DeleteByID removes the income with the given id. Deleting an absent
// id is not an error.
func (r *IncomeRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.deleteQuery, id); err != nil {
		return fmt.Errorf("delete income %d: %w", id, err)
	}
	return nil
}

func scanIncome(rows *sql.Rows) (core.Income, error) {
	var (
		id   int64
		name sql.NullString
		in   core.Income
	)
	if err := rows.Scan(&id, &name, &in.Amount, &in.IncomeDate); err != nil {
		return core.Income{}, fmt.Errorf("scan income: %w", err)
	}
	in.IncomeID = &id
	in.IncomeName = name.String
	return in, nil
}
