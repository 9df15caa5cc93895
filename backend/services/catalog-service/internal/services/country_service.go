package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/constants"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/metrics"
	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

type CountryService struct {
	repo    repositories.CountryRepository
	langs   Languages
	metrics *metrics.Recorder
}

func NewCountryService(repo repositories.CountryRepository, langs Languages, rec *metrics.Recorder) *CountryService {
	return &CountryService{repo: repo, langs: langs, metrics: rec}
}

// NormalizeCountryID trims and upper-cases a country code.
func NormalizeCountryID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// List returns every country rendered in lang, ordered by id.
func (s *CountryService) List(ctx context.Context, lang string) ([]dtos.CountryView, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	lang = s.langs.orUser(lang)
	out := make([]dtos.CountryView, 0, len(all))
	for _, c := range all {
		out = append(out, s.view(c, lang))
	}
	return out, nil
}

// Get returns nil when the country does not exist.
func (s *CountryService) Get(ctx context.Context, id, lang string) (*dtos.CountryView, error) {
	c, err := s.repo.GetByID(ctx, NormalizeCountryID(id))
	if err != nil {
		return nil, fmt.Errorf("get country %s: %w", id, err)
	}
	if c == nil {
		return nil, nil
	}
	v := s.view(c, s.langs.orUser(lang))
	return &v, nil
}

func (s *CountryService) IDAvailable(ctx context.Context, id string) (bool, error) {
	exists, err := s.repo.Exists(ctx, NormalizeCountryID(id))
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *CountryService) Create(ctx context.Context, req dtos.CreateCountryRequest) (*dtos.CountryView, error) {
	req.ID = NormalizeCountryID(req.ID)
	req.LanguageID = models.NormalizeLanguageID(req.LanguageID)
	req.Description = strings.TrimSpace(req.Description)
	if len(req.ID) != constants.CountryIDLength {
		return nil, validationError(
			"country_id", "len", fmt.Sprintf("country_id must be exactly %d characters", constants.CountryIDLength), req,
		)
	}
	if err := s.langs.checkLanguage(req.LanguageID, req); err != nil {
		return nil, err
	}

	c := &models.Country{ID: req.ID}
	if req.Description != "" {
		c.Descriptions = []models.Description{{LanguageID: req.LanguageID, Text: req.Description}}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, utils.ErrRecordExists) {
			s.metrics.Write(metrics.EntityCountry, metrics.OperationCreate, metrics.OutcomeDuplicate)
			return nil, &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeConflict,
				Message:    fmt.Sprintf("Country %s already exists", req.ID),
				Details:    req,
				Err:        err,
			}
		}
		s.metrics.Write(metrics.EntityCountry, metrics.OperationCreate, metrics.OutcomeError)
		return nil, fmt.Errorf("create country %s: %w", req.ID, err)
	}
	s.metrics.Write(metrics.EntityCountry, metrics.OperationCreate, metrics.OutcomeCommitted)

	v := s.view(c, req.LanguageID)
	return &v, nil
}

// Update sets (or with empty text removes) the description in req.LanguageID.
// A missing country yields utils.ErrRecordNotFound.
func (s *CountryService) Update(ctx context.Context, id string, req dtos.UpdateCountryRequest) (*dtos.CountryView, error) {
	id = NormalizeCountryID(id)
	lang := models.NormalizeLanguageID(req.LanguageID)
	req.LanguageID = lang
	req.Description = strings.TrimSpace(req.Description)
	if err := s.langs.checkLanguage(lang, req); err != nil {
		return nil, err
	}

	if err := s.repo.SetDescription(ctx, id, lang, req.Description); err != nil {
		if errors.Is(err, utils.ErrRecordNotFound) {
			s.metrics.Write(metrics.EntityCountry, metrics.OperationUpdate, metrics.OutcomeAlreadyGone)
			return nil, err
		}
		s.metrics.Write(metrics.EntityCountry, metrics.OperationUpdate, metrics.OutcomeError)
		return nil, fmt.Errorf("update country %s: %w", id, err)
	}
	s.metrics.Write(metrics.EntityCountry, metrics.OperationUpdate, metrics.OutcomeCommitted)

	v, err := s.Get(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, utils.ErrRecordNotFound
	}
	return v, nil
}

// Delete removes the country or returns utils.ErrRecordNotFound.
func (s *CountryService) Delete(ctx context.Context, id string) error {
	id = NormalizeCountryID(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrRecordNotFound) {
			s.metrics.Write(metrics.EntityCountry, metrics.OperationDelete, metrics.OutcomeAlreadyGone)
			return err
		}
		s.metrics.Write(metrics.EntityCountry, metrics.OperationDelete, metrics.OutcomeError)
		return fmt.Errorf("delete country %s: %w", id, err)
	}
	s.metrics.Write(metrics.EntityCountry, metrics.OperationDelete, metrics.OutcomeCommitted)
	utils.Logger.Infof("Country %s deleted", id)
	return nil
}

func (s *CountryService) view(c *models.Country, lang string) dtos.CountryView {
	text, langID := models.ResolveDescription(c.Descriptions, lang, s.langs.System)
	return dtos.CountryView{ID: c.ID, LanguageID: langID, Description: text}
}
