package routes

const (
	// Health & metrics
	Health  = "/health"
	Metrics = "/metrics"

	// Fields of interest
	FieldsOfInterest           = "/api/v1/fields-of-interest"
	FieldsOfInterestValidateID = "/api/v1/fields-of-interest/validate-id"
	FieldOfInterest            = "/api/v1/fields-of-interest/{id}"

	// Countries
	Countries           = "/api/v1/countries"
	CountriesValidateID = "/api/v1/countries/validate-id"
	Country             = "/api/v1/countries/{id}"
)
