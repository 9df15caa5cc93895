package integration

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/app"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/config"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/server"
	"github.com/poofware/mono-repo/backend/shared/go-testhelpers"
)

type testEnv struct {
	*testhelpers.TestHelper
	App *app.App
}

// newTestEnv starts the full service over a private in-memory store seeded
// with the default data.
func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	h := testhelpers.NewTestHelper(t)

	cfg := &config.Config{
		OrganizationName:   config.OrganizationName,
		AppName:            "catalog-service-test",
		AppPort:            "0",
		AppUrl:             "http://localhost:8080",
		DBDriver:           config.DBDriverSQLite,
		SQLitePath:         "memory:" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()),
		JWTPublicKey:       &config.PublicKey{Key: &h.PrivateKey.PublicKey},
		UserLanguage:       "NL",
		SystemLanguage:     "EN",
		SupportedLanguages: "NL,EN,DE",
		PageSize:           5,
		SeedDBWithTestData: true,
	}
	for _, m := range mutate {
		m(cfg)
	}

	application, err := app.NewApp(cfg)
	require.NoError(t, err, "failed to build app")
	t.Cleanup(application.Close)
	require.NoError(t, application.SeedAllTestData(context.Background()))

	srv := httptest.NewServer(server.NewHandler(application))
	t.Cleanup(srv.Close)
	h.BaseURL = srv.URL

	return &testEnv{TestHelper: h, App: application}
}
