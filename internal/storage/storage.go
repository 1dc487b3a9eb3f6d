// Package storage implements the SQL backed repositories. Two dialects
// are supported: the embedded SQLite database and a networked PostgreSQL
// server. The dialect is chosen once when the backend is created and
// every query the repositories run is resolved from it at construction
// time.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour a database speaks.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// String implements fmt.Stringer
func (d Dialect) String() string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	case DialectPostgres:
		return "postgres"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

const (
	maxOpenConns    = 4
	maxIdleConns    = 4
	connMaxIdleTime = 3 * time.Second
)

// OpenSQLite opens the embedded database file, creating the parent
// directory when needed.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	return configurePool(db)
}

// OpenPostgres opens a connection pool against the given URL.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	return configurePool(db)
}

func configurePool(db *sql.DB) (*sql.DB, error) {
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
