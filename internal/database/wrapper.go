// Package database provides access to the Postgres store.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matt-dz/foodgram/internal/sql"
)

const uniqueViolation = "23505"

// Store is a Querier that can also run a group of queries atomically.
type Store interface {
	Querier
	InTx(ctx context.Context, fn func(Querier) error) error
}

type Pool interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

type Database struct {
	*Queries

	Pool Pool
}

var _ Store = (*Database)(nil)

func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{
		Queries: New(pool),
		Pool:    pool,
	}
}

func (d *Database) Close() {
	d.Pool.Close()
}

// InTx runs fn inside a single transaction. The transaction is committed
// when fn returns nil and rolled back otherwise.
func (d *Database) InTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(d.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// EnsureSchema ensures the database schema is applied to the
// Postgres database. The schema is applied to the database
// if the schema is not detected.
func (d *Database) EnsureSchema(ctx context.Context) error {
	exists, err := d.CheckUsersTableExists(ctx)
	if err != nil {
		return fmt.Errorf("ensuring schema exists: %w", err)
	}

	if exists {
		return nil
	}

	if _, err := d.Pool.Exec(ctx, sql.Schema()); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}

	return nil
}

// NoTx adapts a Querier to a Store by running InTx callbacks directly
// against it. It is meant for MockQuerier backed tests.
type NoTx struct {
	Querier
}

func (n NoTx) InTx(_ context.Context, fn func(Querier) error) error {
	return fn(n.Querier)
}

// UniqueViolation reports the constraint name of a unique violation, if err is one.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
