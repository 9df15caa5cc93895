package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/app"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/constants"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/controllers"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/routes"
	"github.com/poofware/mono-repo/backend/shared/go-middleware"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

// NewHandler wires controllers, auth and metrics into the service's HTTP handler.
func NewHandler(application *app.App) http.Handler {
	cfg := application.Config
	pub := cfg.PublicKey()

	healthCtrl := controllers.NewHealthController(application)
	foiCtrl := controllers.NewFieldsOfInterestController(application.FieldOfInterestService, application.Languages)
	countryCtrl := controllers.NewCountriesController(application.CountryService, application.Languages)

	authed := middleware.AuthMiddleware(pub)
	optional := middleware.OptionalAuthMiddleware(pub)
	httpMetrics := middleware.NewHTTPMetrics(application.Registry, constants.MetricsNamespace)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger, httpMetrics.Middleware)

	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, promhttp.HandlerFor(application.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Fields of interest; the static validate-id path goes before {id}
	router.Handle(routes.FieldsOfInterest, optional(http.HandlerFunc(foiCtrl.ListHandler))).Methods(http.MethodGet)
	router.Handle(routes.FieldsOfInterest, optional(http.HandlerFunc(foiCtrl.CreateHandler))).Methods(http.MethodPost)
	router.Handle(routes.FieldsOfInterestValidateID, optional(http.HandlerFunc(foiCtrl.ValidateIDHandler))).Methods(http.MethodGet)
	router.Handle(routes.FieldOfInterest, optional(http.HandlerFunc(foiCtrl.GetHandler))).Methods(http.MethodGet)
	router.Handle(routes.FieldOfInterest, optional(http.HandlerFunc(foiCtrl.UpdateHandler))).Methods(http.MethodPut)
	router.Handle(routes.FieldOfInterest, optional(http.HandlerFunc(foiCtrl.DeleteHandler))).Methods(http.MethodDelete)

	// Countries
	router.Handle(routes.Countries, authed(http.HandlerFunc(countryCtrl.ListHandler))).Methods(http.MethodGet)
	router.Handle(routes.Countries, authed(http.HandlerFunc(countryCtrl.CreateHandler))).Methods(http.MethodPost)
	router.Handle(routes.CountriesValidateID, optional(http.HandlerFunc(countryCtrl.ValidateIDHandler))).Methods(http.MethodGet)
	router.Handle(routes.Country, optional(http.HandlerFunc(countryCtrl.GetHandler))).Methods(http.MethodGet)
	router.Handle(routes.Country, authed(http.HandlerFunc(countryCtrl.UpdateHandler))).Methods(http.MethodPut)
	router.Handle(routes.Country, authed(http.HandlerFunc(countryCtrl.DeleteHandler))).Methods(http.MethodDelete)

	return corsFor(cfg.AppUrl, cfg.CORSHighSecurity).Handler(router)
}

func corsFor(appURL string, highSecurity bool) *cors.Cors {
	origins := []string{appURL}
	if !highSecurity && !strings.Contains(appURL, "localhost") {
		origins = append(origins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept-Language", middleware.RequestIDHeader},
		ExposedHeaders:   []string{constants.HeaderNumberOfCountries, middleware.RequestIDHeader},
		AllowCredentials: true,
	})
}
