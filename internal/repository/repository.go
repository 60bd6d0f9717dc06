// Package repository provides direct PostgreSQL access to the creators table.
//
// It is the alternative to the hosted PostgREST endpoint: the same table
// schema, the same not-found semantics, reached over a pgx pool.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// DefaultTable is the table name used when none is configured.
const DefaultTable = "creators"

// Repository provides database access methods.
type Repository struct {
	pool  *pgxpool.Pool
	table string
}

// New creates a new Repository with a connection pool.
func New(ctx context.Context, databaseURL, table string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewWithPool(pool, table), nil
}

// NewWithPool wraps an existing pool.
func NewWithPool(pool *pgxpool.Pool, table string) *Repository {
	if table == "" {
		table = DefaultTable
	}
	return &Repository{pool: pool, table: pq.QuoteIdentifier(table)}
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}
