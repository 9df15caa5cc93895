package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/constants"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/metrics"
	internal_utils "github.com/poofware/mono-repo/backend/services/catalog-service/internal/utils"
	"github.com/poofware/mono-repo/backend/shared/go-models"
	"github.com/poofware/mono-repo/backend/shared/go-repositories"
	"github.com/poofware/mono-repo/backend/shared/go-utils"
)

type FieldOfInterestService struct {
	repo     repositories.FieldOfInterestRepository
	langs    Languages
	pageSize int
	metrics  *metrics.Recorder
	now      func() time.Time
}

func NewFieldOfInterestService(
	repo repositories.FieldOfInterestRepository,
	langs Languages,
	pageSize int,
	rec *metrics.Recorder,
) *FieldOfInterestService {
	return &FieldOfInterestService{
		repo:     repo,
		langs:    langs,
		pageSize: pageSize,
		metrics:  rec,
		now:      time.Now,
	}
}

// Get returns the record rendered in lang (falling back to the system
// language), or nil when it does not exist.
func (s *FieldOfInterestService) Get(ctx context.Context, id, lang string) (*dtos.FieldOfInterestView, error) {
	f, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("get field of interest %s: %w", id, err)
	}
	if f == nil {
		return nil, nil
	}
	view := s.view(f, s.langs.orUser(lang))
	return &view, nil
}

// IDAvailable reports whether id is still free for Create.
func (s *FieldOfInterestService) IDAvailable(ctx context.Context, id string) (bool, error) {
	exists, err := s.repo.Exists(ctx, strings.TrimSpace(id))
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *FieldOfInterestService) Create(
	ctx context.Context,
	req dtos.CreateFieldOfInterestRequest,
	user string,
) (*dtos.FieldOfInterestView, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.LanguageID = models.NormalizeLanguageID(req.LanguageID)
	req.Description = strings.TrimSpace(req.Description)
	if req.ID == "" {
		return nil, validationError("field_of_interest_id", "required", "field_of_interest_id is required", req)
	}
	if err := s.langs.checkLanguage(req.LanguageID, req); err != nil {
		return nil, err
	}

	f := &models.FieldOfInterest{
		ID:        req.ID,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
		CreatedBy: user,
	}
	if req.Description != "" {
		f.Descriptions = []models.Description{{LanguageID: req.LanguageID, Text: req.Description}}
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, utils.ErrRecordExists) {
			s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationCreate, metrics.OutcomeDuplicate)
			return nil, &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeConflict,
				Message:    fmt.Sprintf("Field of interest %s already exists", req.ID),
				Details:    req,
				Err:        err,
			}
		}
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationCreate, metrics.OutcomeError)
		return nil, fmt.Errorf("create field of interest %s: %w", req.ID, err)
	}
	s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationCreate, metrics.OutcomeCommitted)
	utils.Logger.Infof("Field of interest %s created by %s", f.ID, user)

	view := s.view(f, req.LanguageID)
	return &view, nil
}

/*
Update applies req only when req.RowVersion is still the stored token.

  - record gone               → utils.ErrRecordDeleted
  - token stale               → *RowVersionConflictError with the stored values
    in the submitted language (no fallback)
  - token current             → updated view with a new row_version
*/
func (s *FieldOfInterestService) Update(
	ctx context.Context,
	id string,
	req dtos.UpdateFieldOfInterestRequest,
	user string,
) (*dtos.FieldOfInterestView, error) {
	id = strings.TrimSpace(id)
	lang := models.NormalizeLanguageID(req.LanguageID)
	req.LanguageID = lang
	req.Description = strings.TrimSpace(req.Description)
	if err := s.langs.checkLanguage(lang, req); err != nil {
		return nil, err
	}
	expected := utils.Val(req.RowVersion)

	current, err := s.repo.CheckVersion(ctx, id, expected)
	switch {
	case errors.Is(err, utils.ErrRecordNotFound):
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationUpdate, metrics.OutcomeAlreadyGone)
		return nil, utils.ErrRecordDeleted
	case errors.Is(err, utils.ErrRowVersionConflict):
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationUpdate, metrics.OutcomeConflict)
		return nil, s.conflict(current, lang, req.Description)
	case err != nil:
		return nil, fmt.Errorf("load field of interest %s: %w", id, err)
	}

	change := models.FieldOfInterestChange{
		ID:          id,
		LanguageID:  lang,
		Description: req.Description,
		UpdatedBy:   user,
		UpdatedAt:   s.now().UTC().Truncate(time.Microsecond),
	}
	newVersion, err := s.repo.UpdateIfVersion(ctx, change, expected)
	switch {
	case errors.Is(err, utils.ErrRowVersionConflict):
		// lost the race between the read and the conditional write
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationUpdate, metrics.OutcomeConflict)
		latest, gErr := s.repo.GetByID(ctx, id)
		if gErr != nil {
			return nil, fmt.Errorf("reload field of interest %s: %w", id, gErr)
		}
		if latest == nil {
			return nil, utils.ErrRecordDeleted
		}
		return nil, s.conflict(latest, lang, req.Description)
	case errors.Is(err, utils.ErrRecordNotFound):
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationUpdate, metrics.OutcomeAlreadyGone)
		return nil, utils.ErrRecordDeleted
	case err != nil:
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationUpdate, metrics.OutcomeError)
		return nil, fmt.Errorf("update field of interest %s: %w", id, err)
	}
	s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationUpdate, metrics.OutcomeCommitted)

	// the committed state is exactly current plus our change; a re-read could
	// observe a later writer's row
	current.ApplyChange(change, newVersion)
	view := s.view(current, lang)
	return &view, nil
}

// Delete removes the record when rowVersion is current. A record that is
// already gone is reported as constants.OutcomeAlreadyGone, not as an error.
func (s *FieldOfInterestService) Delete(ctx context.Context, id string, rowVersion int64, lang string) (string, error) {
	id = strings.TrimSpace(id)
	err := s.repo.DeleteIfVersion(ctx, id, rowVersion)
	switch {
	case err == nil:
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationDelete, metrics.OutcomeCommitted)
		utils.Logger.Infof("Field of interest %s deleted", id)
		return constants.OutcomeDeleted, nil
	case errors.Is(err, utils.ErrRecordNotFound):
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationDelete, metrics.OutcomeAlreadyGone)
		return constants.OutcomeAlreadyGone, nil
	case errors.Is(err, utils.ErrRowVersionConflict):
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationDelete, metrics.OutcomeConflict)
		latest, gErr := s.repo.GetByID(ctx, id)
		if gErr != nil {
			return "", fmt.Errorf("reload field of interest %s: %w", id, gErr)
		}
		if latest == nil {
			return constants.OutcomeAlreadyGone, nil
		}
		view := s.view(latest, s.langs.orUser(lang))
		return "", internal_utils.NewRowVersionConflictError(&view, []string{})
	default:
		s.metrics.Write(metrics.EntityFieldOfInterest, metrics.OperationDelete, metrics.OutcomeError)
		return "", fmt.Errorf("delete field of interest %s: %w", id, err)
	}
}

// conflict renders the stored values in exactly the submitted language so the
// caller sees what it would overwrite.
func (s *FieldOfInterestService) conflict(current *models.FieldOfInterest, lang, submitted string) error {
	text, _ := models.DescriptionFor(current.Descriptions, lang)
	view := s.baseView(current)
	view.LanguageID = lang
	view.Description = text

	changed := []string{}
	if text != submitted {
		changed = append(changed, "description")
	}
	return internal_utils.NewRowVersionConflictError(&view, changed)
}

func (s *FieldOfInterestService) view(f *models.FieldOfInterest, lang string) dtos.FieldOfInterestView {
	v := s.baseView(f)
	v.Description, v.LanguageID = models.ResolveDescription(f.Descriptions, lang, s.langs.System)
	return v
}

func (s *FieldOfInterestService) baseView(f *models.FieldOfInterest) dtos.FieldOfInterestView {
	return dtos.FieldOfInterestView{
		ID:         f.ID,
		CreatedAt:  f.CreatedAt,
		CreatedBy:  f.CreatedBy,
		UpdatedAt:  f.UpdatedAt,
		UpdatedBy:  f.UpdatedBy,
		RowVersion: f.RowVersion,
	}
}
