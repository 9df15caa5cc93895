package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

func defaultFieldsOfInterest() []*models.FieldOfInterest {
	return []*models.FieldOfInterest{
		{
			ID:        "01",
			CreatedAt: time.Date(2018, time.October, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy: utils.AnonymousUser,
			Descriptions: []models.Description{
				{LanguageID: "NL", Text: "Interesse 01"},
				{LanguageID: "EN", Text: "Field of interest 01"},
			},
		},
		{
			ID:        "02",
			CreatedAt: time.Date(2018, time.October, 2, 0, 0, 0, 0, time.UTC),
			CreatedBy: utils.AnonymousUser,
			Descriptions: []models.Description{
				{LanguageID: "NL", Text: "Interesse 02"},
			},
		},
		{
			ID:        "03",
			CreatedAt: time.Date(2018, time.November, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy: utils.AnonymousUser,
			Descriptions: []models.Description{
				{LanguageID: "EN", Text: "Field of interest 03"},
			},
		},
	}
}

// SeedFieldsOfInterest inserts the default fields of interest when the table is empty.
func SeedFieldsOfInterest(ctx context.Context, repo repositories.FieldOfInterestRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("error checking for existing fields of interest: %w", err)
	}
	if len(existing) > 0 {
		utils.Logger.Infof("Fields of interest already present (%d); skipping seed.", len(existing))
		return nil
	}

	seeds := defaultFieldsOfInterest()
	for _, f := range seeds {
		if err := repo.Create(ctx, f); err != nil {
			return fmt.Errorf("failed to insert field of interest %s: %w", f.ID, err)
		}
	}
	utils.Logger.Infof("Successfully seeded %d fields of interest.", len(seeds))
	return nil
}
