package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/creatorverse/creatorverse/internal/model"
	"github.com/creatorverse/creatorverse/internal/remote"
)

const creatorColumns = `name, url, description, "imageURL"`

// List returns every creator. No ordering is applied.
func (r *Repository) List(ctx context.Context) ([]model.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM ` + r.table

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, dbError(err)
	}

	creators, err := collectCreators(rows)
	if err != nil {
		return nil, dbError(err)
	}
	return creators, nil
}

// Get returns the creator named name. Zero or several matching rows is
// remote.ErrNotFound.
func (r *Repository) Get(ctx context.Context, name string) (*model.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM ` + r.table + ` WHERE name = $1 LIMIT 2`

	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, dbError(err)
	}

	creators, err := collectCreators(rows)
	if err != nil {
		return nil, dbError(err)
	}
	return single(creators)
}

// Insert stores c and returns the row as written.
func (r *Repository) Insert(ctx context.Context, c model.Creator) (*model.Creator, error) {
	query := `INSERT INTO ` + r.table + ` (` + creatorColumns + `)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + creatorColumns

	stored, err := scanCreator(r.pool.QueryRow(ctx, query, c.Name, c.URL, c.Description, c.ImageURL))
	if err != nil {
		return nil, dbError(err)
	}
	return stored, nil
}

// Update replaces every field of the row named oldName. The change is rolled
// back unless exactly one row matched.
func (r *Repository) Update(ctx context.Context, oldName string, c model.Creator) (*model.Creator, error) {
	query := `UPDATE ` + r.table + `
		SET name = $1, url = $2, description = $3, "imageURL" = $4
		WHERE name = $5
		RETURNING ` + creatorColumns

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, query, c.Name, c.URL, c.Description, c.ImageURL, oldName)
	if err != nil {
		return nil, dbError(err)
	}
	updated, err := collectCreators(rows)
	if err != nil {
		return nil, dbError(err)
	}

	stored, err := single(updated)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, dbError(err)
	}
	return stored, nil
}

// Delete removes every row named name. Deleting a missing name succeeds.
func (r *Repository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM ` + r.table + ` WHERE name = $1`

	if _, err := r.pool.Exec(ctx, query, name); err != nil {
		return dbError(err)
	}
	return nil
}

func scanCreator(row pgx.Row) (*model.Creator, error) {
	var c model.Creator
	if err := row.Scan(&c.Name, &c.URL, &c.Description, &c.ImageURL); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCreators(rows pgx.Rows) ([]model.Creator, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Creator, error) {
		c, err := scanCreator(row)
		if err != nil {
			return model.Creator{}, err
		}
		return *c, nil
	})
}

func single(creators []model.Creator) (*model.Creator, error) {
	if len(creators) != 1 {
		return nil, fmt.Errorf("%w: %d rows matched", remote.ErrNotFound, len(creators))
	}
	return &creators[0], nil
}

// PgError keeps the server's message verbatim as the error text.
type PgError struct {
	err *pgconn.PgError
}

func (e *PgError) Error() string {
	return e.err.Message
}

func (e *PgError) Unwrap() error {
	return e.err
}

// Code returns the SQLSTATE code.
func (e *PgError) Code() string {
	return e.err.Code
}

// Is reports unique violations as remote.ErrDuplicate.
func (e *PgError) Is(target error) bool {
	return target == remote.ErrDuplicate && e.Code() == remote.UniqueViolationCode
}

func dbError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &PgError{err: pgErr}
	}
	return err
}
