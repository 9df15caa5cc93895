package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

const countriesPath = "/api/v1/countries"

func TestCountriesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	var resp errorBody
	env.DoJSON(env.BuildRequest(http.MethodGet, countriesPath, "", nil), http.StatusUnauthorized, &resp)
	require.Equal(t, utils.ErrCodeUnauthorized, resp.Code)

	env.DoJSON(env.BuildRequest(http.MethodGet, countriesPath, env.CreateExpiredJWT("alice"), nil), http.StatusUnauthorized, &resp)
	require.Equal(t, utils.ErrCodeTokenExpired, resp.Code)

	env.DoJSON(env.BuildRequest(http.MethodPost, countriesPath, "", dtos.CreateCountryRequest{
		ID: "FR", LanguageID: "EN", Description: "France",
	}), http.StatusUnauthorized, &resp)

	// single country lookups are public
	var nl dtos.CountryView
	env.DoJSON(env.BuildRequest(http.MethodGet, countriesPath+"/nl", "", nil), http.StatusOK, &nl)
	require.Equal(t, "NL", nl.ID)
	require.Equal(t, "Nederland", nl.Description)
}

func TestCountriesListHeaders(t *testing.T) {
	env := newTestEnv(t)
	token := env.CreateJWT("alice")

	var list []dtos.CountryView
	req := env.BuildRequest(http.MethodGet, countriesPath, token, nil)
	req.Header.Set("Accept-Language", "en")
	resp := env.DoJSON(req, http.StatusOK, &list)

	require.Equal(t, "3", resp.Header.Get("X-Number-Of-Countries"))
	require.Contains(t, resp.Header.Get("Cache-Control"), "max-age=60")
	require.Equal(t, []dtos.CountryView{
		{ID: "BE", LanguageID: "EN", Description: "Belgium"},
		{ID: "DE", LanguageID: "EN", Description: "Germany"},
		{ID: "NL", LanguageID: "EN", Description: "The Netherlands"},
	}, list)

	env.DoJSON(env.BuildRequest(http.MethodGet, countriesPath+"?lang=DE", token, nil), http.StatusOK, &list)
	require.Equal(t, "Deutchland", list[1].Description)
	// no German text for Belgium: system language fallback
	require.Equal(t, "EN", list[0].LanguageID)
}

func TestCountriesCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.CreateJWT("alice")

	var created dtos.CountryView
	env.DoJSON(env.BuildRequest(http.MethodPost, countriesPath, token, dtos.CreateCountryRequest{
		ID: "fr", LanguageID: "nl", Description: "Frankrijk",
	}), http.StatusCreated, &created)
	require.Equal(t, dtos.CountryView{ID: "FR", LanguageID: "NL", Description: "Frankrijk"}, created)

	var resp errorBody
	env.DoJSON(env.BuildRequest(http.MethodPost, countriesPath, token, dtos.CreateCountryRequest{
		ID: "FR", LanguageID: "EN", Description: "France",
	}), http.StatusConflict, &resp)

	env.DoJSON(env.BuildRequest(http.MethodPost, countriesPath, token, dtos.CreateCountryRequest{
		ID: "FRA", LanguageID: "EN", Description: "France",
	}), http.StatusBadRequest, &resp)
	require.Equal(t, utils.ErrCodeValidation, resp.Code)

	for _, id := range []string{"  ", " b"} {
		env.DoJSON(env.BuildRequest(http.MethodPost, countriesPath, token, dtos.CreateCountryRequest{
			ID: id, LanguageID: "EN", Description: "Blank",
		}), http.StatusBadRequest, &resp)
		require.Equal(t, utils.ErrCodeValidation, resp.Code)
	}
	var all []dtos.CountryView
	env.DoJSON(env.BuildRequest(http.MethodGet, countriesPath, token, nil), http.StatusOK, &all)
	require.Len(t, all, 4)

	var avail dtos.IDAvailabilityResponse
	env.DoJSON(env.BuildRequest(http.MethodGet, countriesPath+"/validate-id?id=fr", "", nil), http.StatusOK, &avail)
	require.False(t, avail.Available)

	var updated dtos.CountryView
	env.DoJSON(env.BuildRequest(http.MethodPut, countriesPath+"/FR", token, dtos.UpdateCountryRequest{
		ID: "FR", LanguageID: "EN", Description: "France",
	}), http.StatusOK, &updated)
	require.Equal(t, "France", updated.Description)

	env.DoJSON(env.BuildRequest(http.MethodPut, countriesPath+"/FR", token, dtos.UpdateCountryRequest{
		ID: "DE", LanguageID: "EN", Description: "x",
	}), http.StatusBadRequest, &resp)

	env.DoJSON(env.BuildRequest(http.MethodPut, countriesPath+"/XX", token, dtos.UpdateCountryRequest{
		ID: "XX", LanguageID: "EN", Description: "x",
	}), http.StatusNotFound, &resp)
	require.Equal(t, utils.ErrCodeNotFound, resp.Code)

	// empty text removes the Dutch description
	env.DoJSON(env.BuildRequest(http.MethodPut, countriesPath+"/FR", token, dtos.UpdateCountryRequest{
		ID: "FR", LanguageID: "NL", Description: "",
	}), http.StatusOK, &updated)
	require.Equal(t, "EN", updated.LanguageID)
	require.Equal(t, "France", updated.Description)

	var deleted dtos.CountryView
	env.DoJSON(env.BuildRequest(http.MethodDelete, countriesPath+"/FR", token, nil), http.StatusOK, &deleted)
	require.Equal(t, "FR", deleted.ID)
	env.DoJSON(env.BuildRequest(http.MethodDelete, countriesPath+"/FR", token, nil), http.StatusNotFound, &resp)
	env.DoJSON(env.BuildRequest(http.MethodGet, countriesPath+"/FR", "", nil), http.StatusNotFound, &resp)
}
