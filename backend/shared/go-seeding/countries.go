package seeding

import (
	"context"
	"fmt"

	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

var defaultCountries = []*models.Country{
	{ID: "NL", Descriptions: []models.Description{
		{LanguageID: "NL", Text: "Nederland"},
		{LanguageID: "EN", Text: "The Netherlands"},
	}},
	{ID: "DE", Descriptions: []models.Description{
		{LanguageID: "NL", Text: "Duitsland"},
		{LanguageID: "EN", Text: "Germany"},
		{LanguageID: "DE", Text: "Deutchland"},
	}},
	{ID: "BE", Descriptions: []models.Description{
		{LanguageID: "EN", Text: "Belgium"},
	}},
}

// SeedCountries inserts the default countries when the table is empty.
func SeedCountries(ctx context.Context, repo repositories.CountryRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("error checking for existing countries: %w", err)
	}
	if len(existing) > 0 {
		utils.Logger.Infof("Countries already present (%d); skipping seed.", len(existing))
		return nil
	}

	for _, c := range defaultCountries {
		seed := *c
		if err := repo.Create(ctx, &seed); err != nil {
			return fmt.Errorf("failed to insert country %s: %w", c.ID, err)
		}
	}
	utils.Logger.Infof("Successfully seeded %d countries.", len(defaultCountries))
	return nil
}
