package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/constants"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/services"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

type CountriesController struct {
	svc   *services.CountryService
	langs *utils.LanguageNegotiator
}

func NewCountriesController(s *services.CountryService, langs *utils.LanguageNegotiator) *CountriesController {
	return &CountriesController{svc: s, langs: langs}
}

// GET /api/v1/countries
func (c *CountriesController) ListHandler(w http.ResponseWriter, r *http.Request) {
	out, err := c.svc.List(r.Context(), c.langs.FromRequest(r))
	if err != nil {
		utils.Logger.WithError(err).Error("List countries error")
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not load countries", nil, err,
		)
		return
	}
	w.Header().Set(constants.HeaderNumberOfCountries, strconv.Itoa(len(out)))
	w.Header().Set("Cache-Control", constants.CountryListCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GET /api/v1/countries/validate-id?id=
func (c *CountriesController) ValidateIDHandler(w http.ResponseWriter, r *http.Request) {
	id := services.NormalizeCountryID(r.URL.Query().Get("id"))
	if id == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "id query parameter is required", nil,
		)
		return
	}

	available, err := c.svc.IDAvailable(r.Context(), id)
	if err != nil {
		utils.Logger.WithError(err).Error("Validate country id error")
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not validate id", nil, err,
		)
		return
	}
	resp := dtos.IDAvailabilityResponse{ID: id, Available: available}
	if !available {
		resp.Message = fmt.Sprintf("Country %s already exists", id)
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/countries/{id}
func (c *CountriesController) GetHandler(w http.ResponseWriter, r *http.Request) {
	view, err := c.svc.Get(r.Context(), mux.Vars(r)["id"], c.langs.FromRequest(r))
	if err != nil {
		utils.Logger.WithError(err).Error("Get country error")
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not load country", nil, err,
		)
		return
	}
	if view == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Country not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// POST /api/v1/countries
func (c *CountriesController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateCountryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := c.svc.Create(r.Context(), req)
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			utils.HandleAppError(w, err)
			return
		}
		respondInternal(w, "Create country error", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, view)
}

// PUT /api/v1/countries/{id}
func (c *CountriesController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := services.NormalizeCountryID(mux.Vars(r)["id"])

	var req dtos.UpdateCountryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if services.NormalizeCountryID(req.ID) != id {
		respondValidation(w, errors.New("country_id does not match the URL"), req)
		return
	}

	view, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		var appErr *utils.AppError
		switch {
		case errors.Is(err, utils.ErrRecordNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Country not found", nil, err)
		case errors.As(err, &appErr):
			utils.HandleAppError(w, err)
		default:
			respondInternal(w, "Update country error", err)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// DELETE /api/v1/countries/{id} responds with the removed country.
func (c *CountriesController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])

	view, err := c.svc.Get(r.Context(), id, c.langs.FromRequest(r))
	if err != nil {
		respondInternal(w, "Delete country error", err)
		return
	}
	if view == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Country not found", nil)
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, utils.ErrRecordNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Country not found", nil, err)
			return
		}
		respondInternal(w, "Delete country error", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}
