package models

import (
	"time"
)

// FieldOfInterest is a catalog entry keyed by a short natural id. It owns at
// most one localized description per language.
type FieldOfInterest struct {
	Versioned
	ID           string        `json:"field_of_interest_id"`
	CreatedAt    time.Time     `json:"created_at"`
	CreatedBy    string        `json:"created_by"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty"`
	UpdatedBy    string        `json:"updated_by,omitempty"`
	Descriptions []Description `json:"descriptions,omitempty"`
}

func (f *FieldOfInterest) GetID() string { return f.ID }

// FieldOfInterestChange is the payload of a versioned update: the audit
// columns of the parent row plus the description text for one language.
// An empty Description removes that language's row.
type FieldOfInterestChange struct {
	ID          string
	LanguageID  string
	Description string
	UpdatedBy   string
	UpdatedAt   time.Time
}

// ApplyChange mirrors a committed FieldOfInterestChange onto f: audit columns,
// the description for c.LanguageID (removed when empty) and the new token.
func (f *FieldOfInterest) ApplyChange(c FieldOfInterestChange, newVersion int64) {
	updatedAt := c.UpdatedAt
	f.UpdatedAt = &updatedAt
	f.UpdatedBy = c.UpdatedBy
	f.SetRowVersion(newVersion)

	lang := NormalizeLanguageID(c.LanguageID)
	kept := make([]Description, 0, len(f.Descriptions)+1)
	for _, d := range f.Descriptions {
		if NormalizeLanguageID(d.LanguageID) != lang {
			kept = append(kept, d)
		}
	}
	if c.Description != "" {
		kept = append(kept, Description{LanguageID: lang, Text: c.Description})
	}
	f.Descriptions = kept
}
