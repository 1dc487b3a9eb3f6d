package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/making/webfluxfn-handson/internal/core"
)

// ExpenditureRepository persists expenditures in a SQL database.
type ExpenditureRepository struct {
	db      *sql.DB
	dialect Dialect

	findAllQuery  string
	findByIDQuery string
	insertQuery   string
	deleteQuery   string
}

// NewExpenditureRepository creates a repository speaking the given dialect.
// The query set is resolved here, once, not per call.
func NewExpenditureRepository(db *sql.DB, dialect Dialect) *ExpenditureRepository {
	r := &ExpenditureRepository{db: db, dialect: dialect}
	switch dialect {
	case DialectPostgres:
		r.findAllQuery = `SELECT expenditure_id, expenditure_name, unit_price, quantity, expenditure_date FROM expenditure ORDER BY expenditure_id`
		r.findByIDQuery = `SELECT expenditure_id, expenditure_name, unit_price, quantity, expenditure_date FROM expenditure WHERE expenditure_id = $1`
		r.insertQuery = `INSERT INTO expenditure (expenditure_name, unit_price, quantity, expenditure_date) VALUES ($1, $2, $3, $4) RETURNING expenditure_id`
		r.deleteQuery = `DELETE FROM expenditure WHERE expenditure_id = $1`
	default:
		r.findAllQuery = `SELECT expenditure_id, expenditure_name, unit_price, quantity, expenditure_date FROM expenditure ORDER BY expenditure_id`
		r.findByIDQuery = `SELECT expenditure_id, expenditure_name, unit_price, quantity, expenditure_date FROM expenditure WHERE expenditure_id = ?`
		r.insertQuery = `INSERT INTO expenditure (expenditure_name, unit_price, quantity, expenditure_date) VALUES (?, ?, ?, ?)`
		r.deleteQuery = `DELETE FROM expenditure WHERE expenditure_id = ?`
	}
	return r
}

// FindAll returns all expenditures ordered by id.
func (r *ExpenditureRepository) FindAll(ctx context.Context) ([]core.Expenditure, error) {
	rows, err := r.db.QueryContext(ctx, r.findAllQuery)
	if err != nil {
		return nil, fmt.Errorf("query expenditures: %w", err)
	}
	defer rows.Close()

	expenditures := []core.Expenditure{}
	for rows.Next() {
		e, err := scanExpenditure(rows)
		if err != nil {
			return nil, err
		}
		expenditures = append(expenditures, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenditures: %w", err)
	}

	return expenditures, nil
}

// FindByID returns the expenditure with the given id, or nil when absent.
func (r *ExpenditureRepository) FindByID(ctx context.Context, id int64) (*core.Expenditure, error) {
	rows, err := r.db.QueryContext(ctx, r.findByIDQuery, id)
	if err != nil {
		return nil, fmt.Errorf("query expenditure %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query expenditure %d: %w", id, err)
		}
		return nil, nil
	}

	e, err := scanExpenditure(rows)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Save inserts the expenditure and returns it with its assigned id.
// The insert and the id retrieval run in one transaction.
func (r *ExpenditureRepository) Save(ctx context.Context, e core.Expenditure) (core.Expenditure, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Expenditure{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if r.dialect == DialectPostgres {
		err = tx.QueryRowContext(ctx, r.insertQuery,
			e.ExpenditureName, e.UnitPrice, e.Quantity, e.ExpenditureDate).Scan(&id)
		if err != nil {
			return core.Expenditure{}, fmt.Errorf("insert expenditure: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, r.insertQuery,
			e.ExpenditureName, e.UnitPrice, e.Quantity, e.ExpenditureDate); err != nil {
			return core.Expenditure{}, fmt.Errorf("insert expenditure: %w", err)
		}
		if err := tx.QueryRowContext(ctx, "SELECT last_insert_rowid()").Scan(&id); err != nil {
			return core.Expenditure{}, fmt.Errorf("read inserted id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.Expenditure{}, fmt.Errorf("commit transaction: %w", err)
	}

	return e.WithID(id), nil
}

// DeleteByID removes the expenditure with the given id. Deleting an
// absent id is not an error.
func (r *ExpenditureRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.deleteQuery, id); err != nil {
		return fmt.Errorf("delete expenditure %d: %w", id, err)
	}
	return nil
}

func scanExpenditure(rows *sql.Rows) (core.Expenditure, error) {
	var (
		id   int64
		name sql.NullString
		e    core.Expenditure
	)
	if err := rows.Scan(&id, &name, &e.UnitPrice, &e.Quantity, &e.ExpenditureDate); err != nil {
		return core.Expenditure{}, fmt.Errorf("scan expenditure: %w", err)
	}
	e.ExpenditureID = &id
	e.ExpenditureName = name.String
	return e, nil
}
