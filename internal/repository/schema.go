package repository

import (
	"context"
	"fmt"
)

var postgresSchema = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS real_estate (
		id BIGSERIAL PRIMARY KEY,
		price DOUBLE PRECISION,
		district TEXT,
		rooms INTEGER,
		floor INTEGER,
		floors INTEGER,
		area DOUBLE PRECISION,
		type TEXT,
		cond TEXT,
		walls TEXT,
		"desc" TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		district TEXT NOT NULL,
		rooms INTEGER NOT NULL,
		floor INTEGER NOT NULL,
		floors INTEGER NOT NULL,
		area DOUBLE PRECISION NOT NULL,
		type TEXT NOT NULL,
		cond TEXT NOT NULL,
		walls TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id BIGSERIAL PRIMARY KEY,
		request_id TEXT NOT NULL REFERENCES requests(id) ON DELETE CASCADE,
		price DOUBLE PRECISION NOT NULL,
		warning TEXT,
		features vector NOT NULL,
		mean_error DOUBLE PRECISION,
		mse DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_request_id ON predictions(request_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS real_estate (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		price REAL,
		district TEXT,
		rooms INTEGER,
		floor INTEGER,
		floors INTEGER,
		area REAL,
		type TEXT,
		cond TEXT,
		walls TEXT,
		"desc" TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		district TEXT NOT NULL,
		rooms INTEGER NOT NULL,
		floor INTEGER NOT NULL,
		floors INTEGER NOT NULL,
		area REAL NOT NULL,
		type TEXT NOT NULL,
		cond TEXT NOT NULL,
		walls TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT NOT NULL REFERENCES requests(id) ON DELETE CASCADE,
		price REAL NOT NULL,
		warning TEXT,
		features TEXT NOT NULL,
		mean_error REAL,
		mse REAL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_request_id ON predictions(request_id)`,
}

// EnsureSchema creates the tables used by the service when they are missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if r.driver == DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
