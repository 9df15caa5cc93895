package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
)

/*
BaseVersionedRepo holds the DB connection, a SELECT‑by‑ID statement,
an EXISTS statement and a scanner for a single entity type T. It gives you:

	• GetByID(ctx, id string) (T, error)
	• Exists(ctx, id string) (bool, error)
	• resolveMiss for conditional writes that touched zero rows
*/
type BaseVersionedRepo[T EntityWithVersion] struct {
	db         DB
	selectByID string
	existsByID string
	scan       func(row pgx.Row) (T, error)
}

// NewBaseRepo is called by concrete repositories.
func NewBaseRepo[T EntityWithVersion](
	db DB,
	selectByID string,
	existsByID string,
	scan func(pgx.Row) (T, error),
) *BaseVersionedRepo[T] {
	return &BaseVersionedRepo[T]{db: db, selectByID: selectByID, existsByID: existsByID, scan: scan}
}

// -------------------------- public helpers --------------------------

func (b *BaseVersionedRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	row := b.db.QueryRow(ctx, b.selectByID, id)
	return b.scan(row)
}

func (b *BaseVersionedRepo[T]) Exists(ctx context.Context, id string) (bool, error) {
	return queryExists(ctx, b.db, b.existsByID, id)
}

// resolveMiss probes through q, which may be the transaction that saw zero rows.
func (b *BaseVersionedRepo[T]) resolveMiss(ctx context.Context, q DB, id string) error {
	return ResolveVersionMiss(ctx, id, func(ctx context.Context, id string) (bool, error) {
		return queryExists(ctx, q, b.existsByID, id)
	})
}

func queryExists(ctx context.Context, q DB, stmt, id string) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, stmt, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
