package sqlite

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poofware/mono-repo/backend/shared/go-repositories/repotest"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(MemoryDSN(name))
	require.NoError(t, err, "failed to connect")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGet(t *testing.T) {
	(&repotest.RepoTest{}).TestCreateAndGet(t, NewFieldOfInterestRepository(openTestDB(t)))
}

func TestDuplicateCreate(t *testing.T) {
	(&repotest.RepoTest{}).TestDuplicateCreate(t, NewFieldOfInterestRepository(openTestDB(t)))
}

func TestUpdateIfVersion(t *testing.T) {
	(&repotest.RepoTest{}).TestUpdateIfVersion(t, NewFieldOfInterestRepository(openTestDB(t)))
}

func TestDescriptionRemoveAndRestore(t *testing.T) {
	(&repotest.RepoTest{}).TestDescriptionRemoveAndRestore(t, NewFieldOfInterestRepository(openTestDB(t)))
}

func TestUpdateDeletedRecord(t *testing.T) {
	(&repotest.RepoTest{}).TestUpdateDeletedRecord(t, NewFieldOfInterestRepository(openTestDB(t)))
}

func TestDeleteIfVersion(t *testing.T) {
	(&repotest.RepoTest{}).TestDeleteIfVersion(t, NewFieldOfInterestRepository(openTestDB(t)))
}

func TestCheckVersion(t *testing.T) {
	(&repotest.RepoTest{}).TestCheckVersion(t, NewFieldOfInterestRepository(openTestDB(t)))
}

func TestConcurrentWriters(t *testing.T) {
	(&repotest.RepoTest{}).TestConcurrentWriters(t, NewFieldOfInterestRepository(openTestDB(t)))
}

func TestCountries(t *testing.T) {
	(&repotest.RepoTest{}).TestCountries(t, NewCountryRepository(openTestDB(t)))
}

func TestOpenIsIdempotent(t *testing.T) {
	dsn := MemoryDSN("reopen")
	first, err := Open(dsn)
	require.NoError(t, err)
	defer first.Close()

	// the shared-cache database already carries the schema
	second, err := Open(dsn)
	require.NoError(t, err)
	defer second.Close()
}
