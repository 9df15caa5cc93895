// backend/shared/go-utils/errors.go
package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors shared by the store and service layers.
var (
	// The record is not (or no longer) in the store.
	ErrRecordNotFound = errors.New("record_not_found")

	// Insert hit an existing primary key.
	ErrRecordExists = errors.New("record_exists")

	// For concurrency conflicts: the presented row_version is stale.
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// An update targeted a record another party deleted in the meantime.
	ErrRecordDeleted = errors.New("record_deleted")

	ErrInvalidLanguage = errors.New("invalid_language")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
