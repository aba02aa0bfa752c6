package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store handles database operations over the embedded sqlite store.
type Store struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS taxes (
	id               TEXT PRIMARY KEY,
	station_name     TEXT NOT NULL,
	tax_type         TEXT NOT NULL,
	amount           INTEGER NOT NULL,
	due_date         TEXT NOT NULL,
	status           TEXT NOT NULL,
	memo             TEXT NOT NULL DEFAULT '',
	is_recurring     INTEGER NOT NULL DEFAULT 0,
	recurring_period TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_taxes_due_date ON taxes (due_date);
CREATE INDEX IF NOT EXISTS idx_taxes_status ON taxes (status);

CREATE TABLE IF NOT EXISTS stations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL DEFAULT '',
	is_active  INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS app_users (
	id        TEXT PRIMARY KEY,
	email     TEXT NOT NULL UNIQUE,
	password  TEXT NOT NULL,
	role      TEXT NOT NULL DEFAULT 'viewer',
	is_active INTEGER NOT NULL DEFAULT 1
);
`

// NewStore opens (creating if needed) the sqlite database at path and
// ensures the schema exists.
func NewStore(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
