package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/config"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/metrics"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/services"
	"github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-repositories/sqlite"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App struct holds references to config, the store and services.
type App struct {
	Config *config.Config

	// Exactly one of these is set, depending on Config.DBDriver.
	DB       *pgxpool.Pool
	SQLiteDB *sql.DB

	FieldOfInterestRepo repositories.FieldOfInterestRepository
	CountryRepo         repositories.CountryRepository

	FieldOfInterestService *services.FieldOfInterestService
	CountryService         *services.CountryService
	StatsService           *services.StatsService

	Languages *utils.LanguageNegotiator
	Registry  *prometheus.Registry
	Metrics   *metrics.Recorder
}

func NewApp(cfg *config.Config) (*App, error) {
	utils.Logger.Info("Initializing catalog-service App")

	a := &App{
		Config:    cfg,
		Languages: utils.NewLanguageNegotiator(cfg.Languages(), cfg.UserLanguage),
		Registry:  prometheus.NewRegistry(),
	}
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.NewRecorder(a.Registry)

	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		if err := repositories.MigratePostgres(cfg.DBUrl); err != nil {
			return nil, err
		}
		pool, err := connectWithRetry(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		a.DB = pool
		a.FieldOfInterestRepo = repositories.NewFieldOfInterestRepository(pool)
		a.CountryRepo = repositories.NewCountryRepository(pool)
	case config.DBDriverSQLite:
		db, err := sqlite.Open(sqliteDSN(cfg.SQLitePath))
		if err != nil {
			return nil, err
		}
		utils.Logger.Infof("catalog-service opened sqlite store at %s", cfg.SQLitePath)
		a.SQLiteDB = db
		a.FieldOfInterestRepo = sqlite.NewFieldOfInterestRepository(db)
		a.CountryRepo = sqlite.NewCountryRepository(db)
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", cfg.DBDriver)
	}

	langs := services.Languages{
		User:   cfg.UserLanguage,
		System: cfg.SystemLanguage,
		Codes:  cfg.Languages(),
	}
	a.FieldOfInterestService = services.NewFieldOfInterestService(a.FieldOfInterestRepo, langs, cfg.PageSize, a.Metrics)
	a.CountryService = services.NewCountryService(a.CountryRepo, langs, a.Metrics)
	a.StatsService = services.NewStatsService(a.FieldOfInterestRepo, a.CountryRepo, a.Metrics)

	return a, nil
}

// Ping checks the store connection.
func (a *App) Ping(ctx context.Context) error {
	if a.DB != nil {
		return a.DB.Ping(ctx)
	}
	if a.SQLiteDB != nil {
		return a.SQLiteDB.PingContext(ctx)
	}
	return fmt.Errorf("no store configured")
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("catalog-service DB connection closed.")
	}
	if a.SQLiteDB != nil {
		_ = a.SQLiteDB.Close()
		utils.Logger.Info("catalog-service sqlite store closed.")
	}
}

// sqliteDSN maps ":memory:" and "memory:<name>" to a shared in-memory database.
func sqliteDSN(path string) string {
	switch {
	case path == ":memory:":
		return sqlite.MemoryDSN("catalog")
	case strings.HasPrefix(path, "memory:"):
		return sqlite.MemoryDSN(strings.TrimPrefix(path, "memory:"))
	default:
		return sqlite.FileDSN(path)
	}
}

func connectWithRetry(databaseURL string) (*pgxpool.Pool, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, databaseURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("catalog-service connected to DB on attempt %d", i)
			return dbPool, nil
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}
