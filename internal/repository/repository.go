// Package repository is the sqlx-backed persistence layer. Queries are
// written with '?' placeholders and rebound for the active driver.
package repository

import (
	"context"
	"fmt"

	"github.com/01moynul/containerhub-golang/internal/database"
	"github.com/jmoiron/sqlx"
)

// Store holds the query methods shared by Repository and Tx.
type Store struct {
	ext     sqlx.ExtContext
	dialect database.Dialect
}

// Repository runs queries against the connection pool.
type Repository struct {
	Store
	db *sqlx.DB
}

// Tx runs queries inside a single transaction. Only use it within the
// function passed to WithTx.
type Tx struct {
	Store
	tx *sqlx.Tx
}

func New(db *sqlx.DB, dialect database.Dialect) *Repository {
	return &Repository{
		Store: Store{ext: db, dialect: dialect},
		db:    db,
	}
}

// DB exposes the underlying pool.
func (r *Repository) DB() *sqlx.DB {
	return r.db
}

// Dialect reports the active SQL dialect.
func (s *Store) Dialect() database.Dialect {
	return s.dialect
}

// WithTx runs fn in a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer sqlTx.Rollback()

	if err := fn(&Tx{Store: Store{ext: sqlTx, dialect: r.dialect}, tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, dest any, query string, args ...any) error {
	return classify(sqlx.GetContext(ctx, s.ext, dest, s.ext.Rebind(query), args...))
}

func (s *Store) sel(ctx context.Context, dest any, query string, args ...any) error {
	return classify(sqlx.SelectContext(ctx, s.ext, dest, s.ext.Rebind(query), args...))
}

// exec runs a statement and returns the number of affected rows.
func (s *Store) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.ext.ExecContext(ctx, s.ext.Rebind(query), args...)
	if err != nil {
		return 0, classify(err)
	}
	return res.RowsAffected()
}

// insert runs an INSERT and returns the generated id.
func (s *Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.dialect.Returning {
		var id int64
		err := s.ext.QueryRowxContext(ctx, s.ext.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, classify(err)
	}

	res, err := s.ext.ExecContext(ctx, s.ext.Rebind(query), args...)
	if err != nil {
		return 0, classify(err)
	}
	return res.LastInsertId()
}

// execOne runs a statement that must touch exactly one row.
func (s *Store) execOne(ctx context.Context, query string, args ...any) error {
	n, err := s.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
