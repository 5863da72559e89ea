package store

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPostgresPort = 5432

// PG runs statements on a pgx pool.
type PG struct{ db *pgxpool.Pool }

func NewPG(db *pgxpool.Pool) *PG { return &PG{db: db} }

// PostgresDSN prefers an explicit DSN and otherwise builds one from the
// individual settings.
func PostgresDSN(cfg Config) string {
	if cfg.PostgresDSN != "" {
		return cfg.PostgresDSN
	}
	port := cfg.Port
	if port == 0 {
		port = defaultPostgresPort
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func OpenPostgres(ctx context.Context, cfg Config) (*PG, error) {
	pool, err := pgxpool.New(ctx, PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPG(pool), nil
}

func (p *PG) Dialect() Dialect { return PostgresDialect }

func (p *PG) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return p.db.Query(ctx, query, args...)
}

func (p *PG) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return Result{}, err
	}
	return Result{RowsAffected: tag.RowsAffected()}, nil
}

func (p *PG) Insert(ctx context.Context, query, idColumn string, args ...any) (int64, error) {
	var id int64
	if err := p.db.QueryRow(ctx, query+" RETURNING "+idColumn, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (p *PG) Ping(ctx context.Context) error { return p.db.Ping(ctx) }

func (p *PG) Close() { p.db.Close() }
