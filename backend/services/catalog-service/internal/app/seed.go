package app

import (
	"context"
	"fmt"

	"github.com/poofware/mono-repo/backend/shared/go-seeding"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

// SeedAllTestData loads the default countries and fields of interest into
// empty tables.
func (a *App) SeedAllTestData(ctx context.Context) error {
	if !a.Config.SeedDBWithTestData {
		utils.Logger.Info("catalog-service: seeding disabled; skipping")
		return nil
	}
	if err := seeding.SeedCountries(ctx, a.CountryRepo); err != nil {
		return fmt.Errorf("seed countries: %w", err)
	}
	if err := seeding.SeedFieldsOfInterest(ctx, a.FieldOfInterestRepo); err != nil {
		return fmt.Errorf("seed fields of interest: %w", err)
	}
	return nil
}
