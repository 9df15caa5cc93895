package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/app"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/config"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/server"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (store, repositories, services)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize app")
	}
	defer application.Close()

	// 3) Seed data
	if err := application.SeedAllTestData(context.Background()); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to seed test data")
	}

	// 4) Record gauges, refreshed via cron
	if err := application.StatsService.Refresh(context.Background()); err != nil {
		utils.Logger.WithError(err).Warn("Initial stats refresh failed")
	}
	c := cron.New(cron.WithLocation(time.UTC))
	if cfg.StatsRefreshSchedule != "" {
		_, schErr := c.AddFunc(cfg.StatsRefreshSchedule, func() {
			if err := application.StatsService.Refresh(context.Background()); err != nil {
				utils.Logger.WithError(err).Error("Scheduled stats refresh failed")
			}
		})
		if schErr != nil {
			utils.Logger.WithError(schErr).Fatal("Failed to schedule stats refresh job")
		}
	}
	c.Start()
	defer c.Stop()

	// 5) Router, controllers & CORS
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           server.NewHandler(application),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatal("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	utils.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.WithError(err).Error("Graceful shutdown failed")
	}
}
