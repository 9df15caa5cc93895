package models

// Country is keyed by its two-letter upper-case code.
type Country struct {
	ID           string        `json:"country_id"`
	Descriptions []Description `json:"descriptions,omitempty"`
}

func (c *Country) GetID() string { return c.ID }
