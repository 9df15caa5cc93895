package services

import (
	"context"
	"fmt"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/metrics"
	"github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

// StatsService publishes per-entity record counts as gauges. It runs on the
// cron schedule configured in STATS_REFRESH_SCHEDULE.
type StatsService struct {
	fieldsOfInterest repositories.FieldOfInterestRepository
	countries        repositories.CountryRepository
	metrics          *metrics.Recorder
}

func NewStatsService(
	foi repositories.FieldOfInterestRepository,
	countries repositories.CountryRepository,
	rec *metrics.Recorder,
) *StatsService {
	return &StatsService{fieldsOfInterest: foi, countries: countries, metrics: rec}
}

func (s *StatsService) Refresh(ctx context.Context) error {
	fois, err := s.fieldsOfInterest.List(ctx)
	if err != nil {
		return fmt.Errorf("count fields of interest: %w", err)
	}
	countries, err := s.countries.List(ctx)
	if err != nil {
		return fmt.Errorf("count countries: %w", err)
	}

	s.metrics.SetRecords(metrics.EntityFieldOfInterest, len(fois))
	s.metrics.SetRecords(metrics.EntityCountry, len(countries))
	utils.Logger.Debugf("Stats refreshed: %d fields of interest, %d countries", len(fois), len(countries))
	return nil
}
