package store

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS slides (
    position  INTEGER PRIMARY KEY,
    embedding BLOB
)`,
	`CREATE TABLE IF NOT EXISTS classifications (
    run        TEXT NOT NULL,
    query      INTEGER NOT NULL,
    label      INTEGER,
    confidence REAL,
    error      TEXT
)`,
	`CREATE INDEX IF NOT EXISTS classifications_run ON classifications(run, query)`,
}

// EnsureSchema creates the slides and classifications tables if they do not
// already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
