package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Repository handles database operations for the dataset and the
// prediction history.
type Repository struct {
	db     *sqlx.DB
	driver string
}

// NewRepository opens a database connection. driver is "postgres" or "sqlite".
func NewRepository(driver, dsn string, maxConn, maxIdleConn int) (*Repository, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &Repository{db: db, driver: driver}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// rebind converts ? placeholders to the driver's bind style.
func (r *Repository) rebind(query string) string {
	if r.driver == DriverPostgres {
		return sqlx.Rebind(sqlx.DOLLAR, query)
	}
	return query
}
