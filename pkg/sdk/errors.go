package prodsearch

import "fmt"

// Error codes returned by the API.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("prodsearch: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}
