package services

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/metrics"
	"github.com/poofware/mono-repo/backend/shared/go-repositories/sqlite"
)

func TestStatsRefresh(t *testing.T) {
	db, err := sqlite.Open(sqlite.MemoryDSN("svc_TestStatsRefresh"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	foiRepo := sqlite.NewFieldOfInterestRepository(db)
	countryRepo := sqlite.NewCountryRepository(db)

	foiSvc := NewFieldOfInterestService(foiRepo, testLangs, 5, rec)
	countrySvc := NewCountryService(countryRepo, testLangs, rec)
	stats := NewStatsService(foiRepo, countryRepo, rec)

	ctx := context.Background()
	_, err = foiSvc.Create(ctx, dtos.CreateFieldOfInterestRequest{ID: "10", LanguageID: "EN", Description: "a"}, "alice")
	require.NoError(t, err)
	_, err = foiSvc.Create(ctx, dtos.CreateFieldOfInterestRequest{ID: "11", LanguageID: "EN", Description: "b"}, "alice")
	require.NoError(t, err)
	_, err = countrySvc.Create(ctx, dtos.CreateCountryRequest{ID: "fr", LanguageID: "EN", Description: "France"})
	require.NoError(t, err)

	require.NoError(t, stats.Refresh(ctx))

	expected := `
# HELP catalog_records Stored records per entity, as of the last stats refresh.
# TYPE catalog_records gauge
catalog_records{entity="country"} 1
catalog_records{entity="field_of_interest"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "catalog_records"))
}
