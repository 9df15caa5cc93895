package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/services"
	internal_utils "github.com/poofware/mono-repo/backend/services/catalog-service/internal/utils"
	"github.com/poofware/mono-repo/backend/shared/go-middleware"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

type FieldsOfInterestController struct {
	svc   *services.FieldOfInterestService
	langs *utils.LanguageNegotiator
}

func NewFieldsOfInterestController(s *services.FieldOfInterestService, langs *utils.LanguageNegotiator) *FieldsOfInterestController {
	return &FieldsOfInterestController{svc: s, langs: langs}
}

// -----------------------------------------------------------------------------
// GET /api/v1/fields-of-interest
// -----------------------------------------------------------------------------
func (c *FieldsOfInterestController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}
	_, searchSubmitted := q["search"]

	out, err := c.svc.List(r.Context(), services.ListQuery{
		Sort:            q.Get("sort"),
		Search:          q.Get("search"),
		SearchSubmitted: searchSubmitted,
		CurrentSearch:   q.Get("current_search"),
		Page:            page,
		Language:        c.langs.FromRequest(r),
	})
	if err != nil {
		utils.Logger.WithError(err).Error("List fields of interest error")
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"Could not load fields of interest", nil, err,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// -----------------------------------------------------------------------------
// GET /api/v1/fields-of-interest/validate-id?id=
// -----------------------------------------------------------------------------
func (c *FieldsOfInterestController) ValidateIDHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "id query parameter is required", nil,
		)
		return
	}

	available, err := c.svc.IDAvailable(r.Context(), id)
	if err != nil {
		utils.Logger.WithError(err).Error("Validate field of interest id error")
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not validate id", nil, err,
		)
		return
	}

	resp := dtos.IDAvailabilityResponse{ID: id, Available: available}
	if !available {
		resp.Message = fmt.Sprintf("Field of interest %s already exists", id)
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// GET /api/v1/fields-of-interest/{id}
// -----------------------------------------------------------------------------
func (c *FieldsOfInterestController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := c.svc.Get(r.Context(), id, c.langs.FromRequest(r))
	if err != nil {
		utils.Logger.WithError(err).Error("Get field of interest error")
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"Could not load field of interest", nil, err,
		)
		return
	}
	if view == nil {
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound, "Field of interest not found", nil,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// -----------------------------------------------------------------------------
// POST /api/v1/fields-of-interest
// -----------------------------------------------------------------------------
func (c *FieldsOfInterestController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateFieldOfInterestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := c.svc.Create(r.Context(), req, middleware.UserFromContext(r.Context()))
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			utils.HandleAppError(w, err)
			return
		}
		respondInternal(w, "Create field of interest error", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, view)
}

// -----------------------------------------------------------------------------
// PUT /api/v1/fields-of-interest/{id}
// -----------------------------------------------------------------------------
func (c *FieldsOfInterestController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dtos.UpdateFieldOfInterestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ID) != id {
		respondValidation(w, errors.New("field_of_interest_id does not match the URL"), req)
		return
	}

	view, err := c.svc.Update(r.Context(), id, req, middleware.UserFromContext(r.Context()))
	if err != nil {
		c.respondWriteError(w, "Update field of interest error", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/fields-of-interest/{id}?row_version=N
// -----------------------------------------------------------------------------
func (c *FieldsOfInterestController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	raw := r.URL.Query().Get("row_version")
	rowVersion, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondValidation(w, errors.New("row_version query parameter is required and must be an integer"),
			map[string]string{"field_of_interest_id": id, "row_version": raw})
		return
	}

	outcome, err := c.svc.Delete(r.Context(), id, rowVersion, c.langs.FromRequest(r))
	if err != nil {
		c.respondWriteError(w, "Delete field of interest error", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DeleteResponse{Outcome: outcome})
}

func (c *FieldsOfInterestController) respondWriteError(w http.ResponseWriter, logMsg string, err error) {
	var conflict *internal_utils.RowVersionConflictError
	var appErr *utils.AppError
	switch {
	case errors.As(err, &conflict):
		utils.RespondErrorWithCode(
			w,
			http.StatusConflict,
			utils.ErrCodeRowVersionConflict,
			"The record was modified by another user, review the current values and resubmit",
			dtos.FieldOfInterestConflict{Current: conflict.Current, ChangedFields: conflict.ChangedFields},
			err,
		)
	case errors.Is(err, utils.ErrRecordDeleted):
		utils.RespondErrorWithCode(
			w, http.StatusGone, utils.ErrCodeRecordDeleted,
			"The record was deleted by another user", nil, err,
		)
	case errors.As(err, &appErr):
		utils.HandleAppError(w, err)
	default:
		respondInternal(w, logMsg, err)
	}
}
