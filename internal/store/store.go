// Package store holds the pooled connection handle shared by every request.
//
// Callers hand over the complete SQL text and its bound arguments; the store
// only borrows a connection from the pool, runs the statement and gives the
// connection back. It does not build queries, retry or open transactions.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Result is what a write statement reports back. Generated ids come from
// DB.Insert instead.
type Result struct {
	RowsAffected int64
}

// Rows is the cursor returned by Query. It matches pgx.Rows so the postgres
// backend can hand its rows over unchanged.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

type DB interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	// Insert runs an INSERT and returns the id the store generated for idColumn.
	Insert(ctx context.Context, query, idColumn string, args ...any) (int64, error)
	Ping(ctx context.Context) error
	Dialect() Dialect
	Close()
}

type Config struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	Charset     string
	PostgresDSN string
	SQLitePath  string
}

// Open connects to the configured backend and pings it once.
func Open(ctx context.Context, cfg Config) (DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.Driver {
	case DriverMySQL, "":
		return OpenMySQL(ctx, cfg)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
