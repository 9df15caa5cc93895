package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/app"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(a *app.App) *HealthController {
	return &HealthController{app: a}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	// Probe the only external dependency
	if err := c.app.Ping(ctx); err != nil {
		utils.Logger.WithError(err).Error("catalog-service unhealthy")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Service unhealthy",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
