package repositories

import (
	"context"

	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

/*
EntityWithVersion:

* `comparable`  → lets us use `==` to compare two values of type T
* the id and row_version accessors
*/
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
}

type GetByIDFunc[T EntityWithVersion] func(
	ctx context.Context,
	id string,
) (T, error)

type ExistsFunc func(ctx context.Context, id string) (bool, error)

/*
CheckVersion is the read‑compare half of an optimistic write. It loads the
current entity and compares its row_version with the one the caller last saw.

  - missing entity          → utils.ErrRecordNotFound
  - row_version mismatch    → current entity + utils.ErrRowVersionConflict
  - match                   → current entity, nil

There is no retry: the store wins and the caller must resubmit with the
fresh row_version.
*/
func CheckVersion[T EntityWithVersion](
	ctx context.Context,
	id string,
	expectedVersion int64,
	getByID GetByIDFunc[T],
) (T, error) {
	current, err := getByID(ctx, id)
	if err != nil {
		return current, err
	}

	// zero value of T (nil for pointers)
	var zero T
	if current == zero {
		return zero, utils.ErrRecordNotFound
	}
	if current.GetRowVersion() != expectedVersion {
		return current, utils.ErrRowVersionConflict
	}
	return current, nil
}

/*
ResolveVersionMiss explains why a conditional write touched zero rows:
the row is either gone (utils.ErrRecordNotFound) or carries a newer
row_version (utils.ErrRowVersionConflict).
*/
func ResolveVersionMiss(ctx context.Context, id string, exists ExistsFunc) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return utils.ErrRowVersionConflict
	}
	return utils.ErrRecordNotFound
}
