package dtos

import "time"

// FieldOfInterestView is a field of interest rendered in one language.
type FieldOfInterestView struct {
	ID          string     `json:"field_of_interest_id"`
	LanguageID  string     `json:"language_id"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   string     `json:"created_by"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
	RowVersion  int64      `json:"row_version"`
}

type CreateFieldOfInterestRequest struct {
	ID          string `json:"field_of_interest_id" validate:"required,max=5"`
	LanguageID  string `json:"language_id" validate:"required,len=2"`
	Description string `json:"description" validate:"max=80"`
}

type UpdateFieldOfInterestRequest struct {
	ID          string `json:"field_of_interest_id" validate:"required,max=5"`
	LanguageID  string `json:"language_id" validate:"required,len=2"`
	Description string `json:"description" validate:"max=80"`
	RowVersion  *int64 `json:"row_version" validate:"required"`
}

// FieldOfInterestConflict is the `details` payload of a row_version_conflict.
type FieldOfInterestConflict struct {
	Current       *FieldOfInterestView `json:"current"`
	ChangedFields []string             `json:"changed_fields"`
}

type FieldOfInterestPage struct {
	Items       []FieldOfInterestView `json:"items"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalPages  int                   `json:"total_pages"`
	TotalCount  int                   `json:"total_count"`
	HasPrevious bool                  `json:"has_previous"`
	HasNext     bool                  `json:"has_next"`
	Sort        string                `json:"sort"`
	Search      string                `json:"current_search"`
	// Sort key to request next for each column, toggling its direction.
	SortLinks map[string]string `json:"sort_links"`
}

type DeleteResponse struct {
	Outcome string `json:"outcome"`
}

type IDAvailabilityResponse struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}
