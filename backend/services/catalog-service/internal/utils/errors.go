// backend/services/catalog-service/internal/utils/errors.go

package utils

import (
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
)

/*
RowVersionConflictError is returned when the presented row_version is stale.
It carries the store's current values, rendered in the language the caller
submitted, so the client can show them and resubmit with the fresh token.
*/
type RowVersionConflictError struct {
	Current       *dtos.FieldOfInterestView
	ChangedFields []string
}

func (e *RowVersionConflictError) Error() string {
	return "row_version_conflict"
}

func NewRowVersionConflictError(current *dtos.FieldOfInterestView, changed []string) error {
	return &RowVersionConflictError{Current: current, ChangedFields: changed}
}
