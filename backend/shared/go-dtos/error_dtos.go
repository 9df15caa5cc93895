// backend/shared/go-dtos/error_dtos.go
package dtos

// ValidationErrorDetail is a shared DTO for structured validation error responses.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationErrors is the `details` payload of a validation_error response.
// Input echoes back what the caller submitted so a form can be re-rendered.
type ValidationErrors struct {
	Errors []ValidationErrorDetail `json:"errors"`
	Input  any                     `json:"input,omitempty"`
}
