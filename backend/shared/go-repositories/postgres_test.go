package repositories_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/require"

	repositories "github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-repositories/repotest"
)

// These run only when TEST_PG_DATABASE_URL points at a disposable database.
func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_PG_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_PG_DATABASE_URL not set")
	}
	require.NoError(t, repositories.MigratePostgres(url), "failed to migrate")

	pool, err := pgxpool.Connect(context.Background(), url)
	require.NoError(t, err, "failed to connect")
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresFieldsOfInterest(t *testing.T) {
	repo := repositories.NewFieldOfInterestRepository(openPool(t))
	suite := &repotest.RepoTest{}

	t.Run("CreateAndGet", func(t *testing.T) { suite.TestCreateAndGet(t, repo) })
	t.Run("DuplicateCreate", func(t *testing.T) { suite.TestDuplicateCreate(t, repo) })
	t.Run("UpdateIfVersion", func(t *testing.T) { suite.TestUpdateIfVersion(t, repo) })
	t.Run("DescriptionRemoveAndRestore", func(t *testing.T) { suite.TestDescriptionRemoveAndRestore(t, repo) })
	t.Run("UpdateDeletedRecord", func(t *testing.T) { suite.TestUpdateDeletedRecord(t, repo) })
	t.Run("DeleteIfVersion", func(t *testing.T) { suite.TestDeleteIfVersion(t, repo) })
	t.Run("CheckVersion", func(t *testing.T) { suite.TestCheckVersion(t, repo) })
	t.Run("ConcurrentWriters", func(t *testing.T) { suite.TestConcurrentWriters(t, repo) })
}

func TestPostgresCountries(t *testing.T) {
	(&repotest.RepoTest{}).TestCountries(t, repositories.NewCountryRepository(openPool(t)))
}
