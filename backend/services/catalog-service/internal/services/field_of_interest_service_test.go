package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/constants"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/metrics"
	internal_utils "github.com/poofware/mono-repo/backend/services/catalog-service/internal/utils"
	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-repositories/sqlite"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

var testLangs = Languages{User: "NL", System: "EN", Codes: []string{"NL", "EN", "DE"}}

func newTestService(t *testing.T, pageSize int) *FieldOfInterestService {
	t.Helper()
	return newTestServiceWithRepo(t, pageSize, nil)
}

// newTestServiceWithRepo lets wrap decorate the sqlite repository.
func newTestServiceWithRepo(
	t *testing.T,
	pageSize int,
	wrap func(repositories.FieldOfInterestRepository) repositories.FieldOfInterestRepository,
) *FieldOfInterestService {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sqlite.Open(sqlite.MemoryDSN("svc_" + name))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var repo repositories.FieldOfInterestRepository = sqlite.NewFieldOfInterestRepository(db)
	if wrap != nil {
		repo = wrap(repo)
	}
	svc := NewFieldOfInterestService(
		repo,
		testLangs,
		pageSize,
		metrics.NewRecorder(prometheus.NewRegistry()),
	)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func create(t *testing.T, svc *FieldOfInterestService, id, lang, text string) *dtos.FieldOfInterestView {
	t.Helper()
	v, err := svc.Create(context.Background(), dtos.CreateFieldOfInterestRequest{
		ID: id, LanguageID: lang, Description: text,
	}, "alice")
	require.NoError(t, err)
	return v
}

func TestServiceUpdateFlow(t *testing.T) {
	svc := newTestService(t, 5)
	ctx := context.Background()

	created := create(t, svc, "10", "nl", "  Tuinbouw ")
	assert.Equal(t, "NL", created.LanguageID)
	assert.Equal(t, "Tuinbouw", created.Description)
	assert.EqualValues(t, 1, created.RowVersion)

	updated, err := svc.Update(ctx, "10", dtos.UpdateFieldOfInterestRequest{
		ID: "10", LanguageID: "EN", Description: "Horticulture", RowVersion: utils.Ptr(int64(1)),
	}, "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated.RowVersion)
	assert.Equal(t, "bob", updated.UpdatedBy)
	require.NotNil(t, updated.UpdatedAt)

	// stale token: the stored Dutch text is reported, untouched
	_, err = svc.Update(ctx, "10", dtos.UpdateFieldOfInterestRequest{
		ID: "10", LanguageID: "NL", Description: "Iets anders", RowVersion: utils.Ptr(int64(1)),
	}, "carol")
	var conflict *internal_utils.RowVersionConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Tuinbouw", conflict.Current.Description)
	assert.EqualValues(t, 2, conflict.Current.RowVersion)
	assert.Equal(t, []string{"description"}, conflict.ChangedFields)

	got, err := svc.Get(ctx, "10", "NL")
	require.NoError(t, err)
	assert.Equal(t, "Tuinbouw", got.Description)

	// same text as stored still conflicts, but nothing differs
	_, err = svc.Update(ctx, "10", dtos.UpdateFieldOfInterestRequest{
		ID: "10", LanguageID: "NL", Description: "Tuinbouw", RowVersion: utils.Ptr(int64(1)),
	}, "carol")
	require.True(t, errors.As(err, &conflict))
	assert.Empty(t, conflict.ChangedFields)
}

// interleavingRepo calls after once each UpdateIfVersion has committed,
// standing in for another client that writes before the response is built.
type interleavingRepo struct {
	repositories.FieldOfInterestRepository
	after func(ctx context.Context, id string, newVersion int64)
}

func (r *interleavingRepo) UpdateIfVersion(ctx context.Context, c models.FieldOfInterestChange, expected int64) (int64, error) {
	v, err := r.FieldOfInterestRepository.UpdateIfVersion(ctx, c, expected)
	if err == nil {
		r.after(ctx, c.ID, v)
	}
	return v, err
}

func TestServiceUpdateReportsOwnCommit(t *testing.T) {
	t.Run("record deleted after commit", func(t *testing.T) {
		var inner repositories.FieldOfInterestRepository
		svc := newTestServiceWithRepo(t, 5, func(r repositories.FieldOfInterestRepository) repositories.FieldOfInterestRepository {
			inner = r
			return &interleavingRepo{FieldOfInterestRepository: r, after: func(ctx context.Context, id string, v int64) {
				require.NoError(t, inner.DeleteIfVersion(ctx, id, v))
			}}
		})
		create(t, svc, "10", "EN", "Horticulture")

		updated, err := svc.Update(context.Background(), "10", dtos.UpdateFieldOfInterestRequest{
			ID: "10", LanguageID: "EN", Description: "Gardening", RowVersion: utils.Ptr(int64(1)),
		}, "bob")
		require.NoError(t, err)
		assert.EqualValues(t, 2, updated.RowVersion)
		assert.Equal(t, "Gardening", updated.Description)
		assert.Equal(t, "bob", updated.UpdatedBy)
	})

	t.Run("record rewritten after commit", func(t *testing.T) {
		var inner repositories.FieldOfInterestRepository
		svc := newTestServiceWithRepo(t, 5, func(r repositories.FieldOfInterestRepository) repositories.FieldOfInterestRepository {
			inner = r
			return &interleavingRepo{FieldOfInterestRepository: r, after: func(ctx context.Context, id string, v int64) {
				_, err := inner.UpdateIfVersion(ctx, models.FieldOfInterestChange{
					ID: id, LanguageID: "EN", Description: "Someone else", UpdatedBy: "mallory", UpdatedAt: time.Now().UTC(),
				}, v)
				require.NoError(t, err)
			}}
		})
		create(t, svc, "10", "NL", "Tuinbouw")

		updated, err := svc.Update(context.Background(), "10", dtos.UpdateFieldOfInterestRequest{
			ID: "10", LanguageID: "EN", Description: "Gardening", RowVersion: utils.Ptr(int64(1)),
		}, "bob")
		require.NoError(t, err)
		assert.EqualValues(t, 2, updated.RowVersion)
		assert.Equal(t, "Gardening", updated.Description)
		assert.Equal(t, "EN", updated.LanguageID)
		assert.Equal(t, "bob", updated.UpdatedBy)

		// the store moved on; the caller's token is now stale
		stored, err := svc.Get(context.Background(), "10", "EN")
		require.NoError(t, err)
		assert.EqualValues(t, 3, stored.RowVersion)
		assert.Equal(t, "Someone else", stored.Description)
	})
}

func TestServiceUnsupportedLanguage(t *testing.T) {
	svc := newTestService(t, 5)

	_, err := svc.Create(context.Background(), dtos.CreateFieldOfInterestRequest{
		ID: "10", LanguageID: "FR", Description: "Horticulture",
	}, "alice")
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.ErrCodeValidation, appErr.Code)

	available, err := svc.IDAvailable(context.Background(), "10")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestServiceDeleteOutcomes(t *testing.T) {
	svc := newTestService(t, 5)
	ctx := context.Background()
	create(t, svc, "10", "EN", "Horticulture")

	_, err := svc.Delete(ctx, "10", 7, "EN")
	var conflict *internal_utils.RowVersionConflictError
	require.True(t, errors.As(err, &conflict))
	assert.EqualValues(t, 1, conflict.Current.RowVersion)

	outcome, err := svc.Delete(ctx, "10", 1, "EN")
	require.NoError(t, err)
	assert.Equal(t, constants.OutcomeDeleted, outcome)

	outcome, err = svc.Delete(ctx, "10", 1, "EN")
	require.NoError(t, err)
	assert.Equal(t, constants.OutcomeAlreadyGone, outcome)

	_, err = svc.Update(ctx, "10", dtos.UpdateFieldOfInterestRequest{
		ID: "10", LanguageID: "EN", Description: "x", RowVersion: utils.Ptr(int64(1)),
	}, "bob")
	assert.ErrorIs(t, err, utils.ErrRecordDeleted)
}

func TestServiceListSearchAndPaging(t *testing.T) {
	svc := newTestService(t, 2)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		create(t, svc, fmt.Sprintf("%02d", i), "EN", fmt.Sprintf("Topic %d", i))
	}

	page, err := svc.List(ctx, ListQuery{Page: 2, Language: "EN"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 5, page.TotalCount)
	assert.True(t, page.HasPrevious)
	assert.True(t, page.HasNext)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "03", page.Items[0].ID)

	// a submitted search resets to the first page
	page, err = svc.List(ctx, ListQuery{Page: 3, Search: "topic", SearchSubmitted: true, CurrentSearch: "04"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, "topic", page.Search)
	assert.Equal(t, 5, page.TotalCount)

	// without submission the carried-over filter applies
	page, err = svc.List(ctx, ListQuery{Search: "ignored", CurrentSearch: "04"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, "04", page.Search)

	page, err = svc.List(ctx, ListQuery{Sort: "created_desc", Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "01", page.Items[0].ID)
	// the Dutch user language has no text, so the system language shows
	assert.Equal(t, "EN", page.Items[0].LanguageID)
}

func TestPaginate(t *testing.T) {
	views := make([]dtos.FieldOfInterestView, 7)

	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantItems int
	}{
		{"first", 1, 1, 3},
		{"last partial", 3, 3, 1},
		{"below range", -4, 1, 3},
		{"above range", 10, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(views, tt.page, 3)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Len(t, p.Items, tt.wantItems)
			assert.Equal(t, 3, p.TotalPages)
		})
	}

	empty := paginate(nil, 2, 3)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.HasNext)
}

func TestSortKeysAndLinks(t *testing.T) {
	assert.Equal(t, constants.SortIDAsc, normalizeSortKey("bogus"))
	assert.Equal(t, constants.SortIDDesc, normalizeSortKey(constants.SortIDDescLegacy))
	assert.Equal(t, constants.SortDescriptionDesc, normalizeSortKey(" Description_Desc "))

	links := sortLinks(constants.SortIDAsc)
	assert.Equal(t, constants.SortIDDesc, links["id"])
	assert.Equal(t, constants.SortDescriptionAsc, links["description"])

	// any other active sort sends the id column back to ascending
	links = sortLinks(constants.SortDescriptionAsc)
	assert.Equal(t, constants.SortIDAsc, links["id"])
	assert.Equal(t, constants.SortDescriptionDesc, links["description"])
	assert.Equal(t, constants.SortCreatedAsc, links["created"])

	links = sortLinks(constants.SortIDDesc)
	assert.Equal(t, constants.SortIDAsc, links["id"])

	links = sortLinks(constants.SortCreatedDesc)
	assert.Equal(t, constants.SortIDAsc, links["id"])
	assert.Equal(t, constants.SortCreatedAsc, links["created"])
	assert.Equal(t, constants.SortDescriptionAsc, links["description"])
}
