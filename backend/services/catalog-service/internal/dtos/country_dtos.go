package dtos

type CountryView struct {
	ID          string `json:"country_id"`
	LanguageID  string `json:"language_id"`
	Description string `json:"description"`
}

type CreateCountryRequest struct {
	ID          string `json:"country_id" validate:"required,len=2"`
	LanguageID  string `json:"language_id" validate:"required,len=2"`
	Description string `json:"description" validate:"max=80"`
}

type UpdateCountryRequest struct {
	ID          string `json:"country_id" validate:"required,len=2"`
	LanguageID  string `json:"language_id" validate:"required,len=2"`
	Description string `json:"description" validate:"max=80"`
}
