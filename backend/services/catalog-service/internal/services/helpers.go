package services

import (
	"net/http"
	"strings"

	shareddtos "github.com/poofware/mono-repo/backend/shared/go-dtos"
	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

// Languages describes which description languages the catalog accepts and
// which ones are used for display.
type Languages struct {
	// Preferred display language when a request expresses none.
	User string
	// Language whose text is shown when the preferred one is missing.
	System string
	Codes  []string
}

func (l Languages) IsSupported(code string) bool {
	code = models.NormalizeLanguageID(code)
	for _, c := range l.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// orUser returns the normalized lang, or the user language when lang is empty.
func (l Languages) orUser(lang string) string {
	if lang = models.NormalizeLanguageID(lang); lang != "" {
		return lang
	}
	return l.User
}

func validationError(field, code, message string, input any) error {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    message,
		Details: shareddtos.ValidationErrors{
			Errors: []shareddtos.ValidationErrorDetail{{Field: field, Message: message, Code: code}},
			Input:  input,
		},
	}
}

func (l Languages) checkLanguage(lang string, input any) error {
	if !l.IsSupported(lang) {
		return validationError(
			"language_id", "unsupported",
			"Language "+lang+" is not supported (expected one of "+strings.Join(l.Codes, ", ")+")",
			input,
		)
	}
	return nil
}
