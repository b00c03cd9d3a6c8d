package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// withTx runs fn in a transaction, committing on success and rolling back otherwise.
func (r *BaseRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()
	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// translateWriteError maps constraint violations to client errors and wraps the rest.
func translateWriteError(err error, conflictMsg, fkMsg, failMsg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewConflictError(conflictMsg)
		case pgForeignKeyViolation:
			return apperrors.NewValidationFailedError(fkMsg)
		}
	}
	return apperrors.NewAppError(500, failMsg, err)
}

// collect gathers rows into model structs by column name.
func collect[T any](rows pgx.Rows, failMsg string) ([]T, error) {
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []T{}, nil
		}
		return nil, apperrors.NewAppError(500, failMsg, err)
	}
	return out, nil
}

// execer and querier are satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// deleteByPolicy removes the row identified by id the way the entity's deletion policy says:
// soft deletes clear is_active, hard deletes remove the row. Table and column names are
// compile-time constants of the calling repository.
func deleteByPolicy(ctx context.Context, q execer, kind domain.EntityKind, table, idColumn, id string) error {
	var query string
	switch domain.DeletionPolicyFor(kind) {
	case domain.SoftDelete:
		query = "UPDATE " + table + " SET is_active = FALSE, updated_at = NOW() WHERE " + idColumn + " = $1"
	default:
		query = "DELETE FROM " + table + " WHERE " + idColumn + " = $1"
	}
	cmdTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return translateWriteError(err, string(kind)+" is still referenced", string(kind)+" is still referenced by other records", "failed to delete "+string(kind)+" "+id)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// whereBuilder accumulates WHERE conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (q *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		q.args = append(q.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(q.args)), 1)
	}
	q.conds = append(q.conds, cond)
}

func (q *whereBuilder) where() string {
	if len(q.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(q.conds, " AND ") + "\n"
}
