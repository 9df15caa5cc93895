// Package repotest holds the repository conformance checks every store
// backend runs from its own tests.
package repotest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	repositories "github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

type RepoTest struct{}

// NewFieldOfInterestID returns a fresh id that fits the five character column.
func NewFieldOfInterestID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
}

func newFieldOfInterest(t *testing.T, repo repositories.FieldOfInterestRepository, descs ...models.Description) *models.FieldOfInterest {
	t.Helper()
	f := &models.FieldOfInterest{
		ID:           NewFieldOfInterestID(),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		CreatedBy:    utils.AnonymousUser,
		Descriptions: descs,
	}
	require.NoError(t, repo.Create(context.Background(), f), "failed to create field of interest")
	require.Equal(t, models.InitialRowVersion, f.RowVersion)
	return f
}

func change(id, lang, text string) models.FieldOfInterestChange {
	return models.FieldOfInterestChange{
		ID:          id,
		LanguageID:  lang,
		Description: text,
		UpdatedBy:   "tester",
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func (s *RepoTest) TestCreateAndGet(t *testing.T, repo repositories.FieldOfInterestRepository) {
	ctx := context.Background()
	f := newFieldOfInterest(t, repo,
		models.Description{LanguageID: "EN", Text: "Chemistry"},
		models.Description{LanguageID: "NL", Text: "Scheikunde"},
		models.Description{LanguageID: "DE", Text: ""},
	)

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, f.ID, got.ID)
	require.Equal(t, models.InitialRowVersion, got.RowVersion)
	require.Equal(t, utils.AnonymousUser, got.CreatedBy)
	require.True(t, f.CreatedAt.Equal(got.CreatedAt))
	require.Nil(t, got.UpdatedAt)
	require.Equal(t, []models.Description{
		{LanguageID: "EN", Text: "Chemistry"},
		{LanguageID: "NL", Text: "Scheikunde"},
	}, got.Descriptions)

	ok, err := repo.Exists(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, ok)

	missing, err := repo.GetByID(ctx, NewFieldOfInterestID())
	require.NoError(t, err)
	require.Nil(t, missing)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	var found *models.FieldOfInterest
	for _, it := range all {
		if it.ID == f.ID {
			found = it
		}
	}
	require.NotNil(t, found, "created record missing from list")
	require.Len(t, found.Descriptions, 2)
}

func (s *RepoTest) TestDuplicateCreate(t *testing.T, repo repositories.FieldOfInterestRepository) {
	f := newFieldOfInterest(t, repo)
	dup := &models.FieldOfInterest{ID: f.ID, CreatedAt: time.Now(), CreatedBy: "other"}
	require.ErrorIs(t, repo.Create(context.Background(), dup), utils.ErrRecordExists)
}

func (s *RepoTest) TestUpdateIfVersion(t *testing.T, repo repositories.FieldOfInterestRepository) {
	ctx := context.Background()
	f := newFieldOfInterest(t, repo, models.Description{LanguageID: "EN", Text: "Biology"})

	newVersion, err := repo.UpdateIfVersion(ctx, change(f.ID, "EN", "Biology 2"), f.RowVersion)
	require.NoError(t, err)
	require.NotEqual(t, f.RowVersion, newVersion, "a successful update must mint a new token")

	// stale token never overwrites
	_, err = repo.UpdateIfVersion(ctx, change(f.ID, "EN", "Stale write"), f.RowVersion)
	require.ErrorIs(t, err, utils.ErrRowVersionConflict)

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, newVersion, got.RowVersion)
	require.Equal(t, "tester", got.UpdatedBy)
	require.NotNil(t, got.UpdatedAt)
	text, _ := models.DescriptionFor(got.Descriptions, "EN")
	require.Equal(t, "Biology 2", text)
}

func (s *RepoTest) TestDescriptionRemoveAndRestore(t *testing.T, repo repositories.FieldOfInterestRepository) {
	ctx := context.Background()
	f := newFieldOfInterest(t, repo,
		models.Description{LanguageID: "EN", Text: "Physics"},
		models.Description{LanguageID: "NL", Text: "Natuurkunde"},
	)

	v2, err := repo.UpdateIfVersion(ctx, change(f.ID, "NL", ""), f.RowVersion)
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	_, ok := models.DescriptionFor(got.Descriptions, "NL")
	require.False(t, ok, "empty text must remove the description row")
	_, ok = models.DescriptionFor(got.Descriptions, "EN")
	require.True(t, ok, "other languages are untouched")

	v3, err := repo.UpdateIfVersion(ctx, change(f.ID, "NL", "Natuurkunde"), v2)
	require.NoError(t, err)
	require.NotEqual(t, v2, v3)
	got, err = repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	text, ok := models.DescriptionFor(got.Descriptions, "NL")
	require.True(t, ok)
	require.Equal(t, "Natuurkunde", text)
}

func (s *RepoTest) TestUpdateDeletedRecord(t *testing.T, repo repositories.FieldOfInterestRepository) {
	ctx := context.Background()
	f := newFieldOfInterest(t, repo)
	require.NoError(t, repo.DeleteIfVersion(ctx, f.ID, f.RowVersion))

	_, err := repo.UpdateIfVersion(ctx, change(f.ID, "EN", "Too late"), f.RowVersion)
	require.ErrorIs(t, err, utils.ErrRecordNotFound)
}

func (s *RepoTest) TestDeleteIfVersion(t *testing.T, repo repositories.FieldOfInterestRepository) {
	ctx := context.Background()
	f := newFieldOfInterest(t, repo, models.Description{LanguageID: "EN", Text: "Art"})

	v2, err := repo.UpdateIfVersion(ctx, change(f.ID, "EN", "Modern art"), f.RowVersion)
	require.NoError(t, err)

	// stale token leaves the record and its descriptions in place
	require.ErrorIs(t, repo.DeleteIfVersion(ctx, f.ID, f.RowVersion), utils.ErrRowVersionConflict)
	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Descriptions, 1)

	require.NoError(t, repo.DeleteIfVersion(ctx, f.ID, v2))
	got, err = repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	// second delete reports the record as gone, not as a failure
	require.ErrorIs(t, repo.DeleteIfVersion(ctx, f.ID, v2), utils.ErrRecordNotFound)
}

func (s *RepoTest) TestCheckVersion(t *testing.T, repo repositories.FieldOfInterestRepository) {
	ctx := context.Background()
	f := newFieldOfInterest(t, repo, models.Description{LanguageID: "EN", Text: "Music"})

	cur, err := repo.CheckVersion(ctx, f.ID, f.RowVersion)
	require.NoError(t, err)
	require.Equal(t, f.ID, cur.ID)

	cur, err = repo.CheckVersion(ctx, f.ID, f.RowVersion+7)
	require.ErrorIs(t, err, utils.ErrRowVersionConflict)
	require.NotNil(t, cur, "a conflict returns the store's current values")
	require.Equal(t, f.RowVersion, cur.RowVersion)

	_, err = repo.CheckVersion(ctx, NewFieldOfInterestID(), 1)
	require.ErrorIs(t, err, utils.ErrRecordNotFound)
}

// TestConcurrentWriters races writers holding the same token; the store
// lets exactly one of them through.
func (s *RepoTest) TestConcurrentWriters(t *testing.T, repo repositories.FieldOfInterestRepository) {
	ctx := context.Background()
	f := newFieldOfInterest(t, repo, models.Description{LanguageID: "EN", Text: "Start"})

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.UpdateIfVersion(ctx, change(f.ID, "EN", "writer "+string(rune('A'+i))), f.RowVersion)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, utils.ErrRowVersionConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, writers-1, conflicts)

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, f.RowVersion+1, got.RowVersion)
}

func (s *RepoTest) TestCountries(t *testing.T, repo repositories.CountryRepository) {
	ctx := context.Background()
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:2])
	_ = repo.Delete(ctx, id)

	c := &models.Country{ID: id, Descriptions: []models.Description{
		{LanguageID: "EN", Text: "Atlantis"},
		{LanguageID: "NL", Text: ""},
	}}
	require.NoError(t, repo.Create(ctx, c))
	require.ErrorIs(t, repo.Create(ctx, c), utils.ErrRecordExists)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []models.Description{{LanguageID: "EN", Text: "Atlantis"}}, got.Descriptions)

	require.NoError(t, repo.SetDescription(ctx, id, "NL", "Atlantis NL"))
	require.NoError(t, repo.SetDescription(ctx, id, "EN", ""))
	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []models.Description{{LanguageID: "NL", Text: "Atlantis NL"}}, got.Descriptions)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	for i := 1; i < len(all); i++ {
		require.Less(t, all[i-1].ID, all[i].ID, "countries are ordered by id")
	}

	require.NoError(t, repo.Delete(ctx, id))
	require.ErrorIs(t, repo.Delete(ctx, id), utils.ErrRecordNotFound)
	require.ErrorIs(t, repo.SetDescription(ctx, id, "EN", "x"), utils.ErrRecordNotFound)

	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got)
}
