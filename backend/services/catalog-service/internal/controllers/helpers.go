package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	shareddtos "github.com/poofware/mono-repo/backend/shared/go-dtos"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// decodeAndValidate reads a JSON body into req and runs struct validation.
// On failure it has already written the 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return false
	}
	if err := validate.Struct(req); err != nil {
		respondValidation(w, err, req)
		return false
	}
	return true
}

// respondValidation re-shows the submitted input together with per-field errors.
func respondValidation(w http.ResponseWriter, err error, input any) {
	details := shareddtos.ValidationErrors{Input: input}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			details.Errors = append(details.Errors, shareddtos.ValidationErrorDetail{
				Field:   fe.Field(),
				Code:    fe.Tag(),
				Message: validationMessage(fe),
			})
		}
	} else {
		details.Errors = []shareddtos.ValidationErrorDetail{{Message: err.Error(), Code: "invalid"}}
	}
	utils.RespondErrorWithCode(
		w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", details, err,
	)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "len":
		return fe.Field() + " must be exactly " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

func respondInternal(w http.ResponseWriter, msg string, err error) {
	utils.Logger.WithError(err).Error(msg)
	utils.RespondErrorWithCode(
		w, http.StatusInternalServerError, utils.ErrCodeInternal,
		"Could not save changes, please try again", nil, err,
	)
}
