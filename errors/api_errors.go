// Package errors defines the JSON error shapes returned by the HTTP
// API.
package errors

import "fmt"

// APIError is the standard error body for non-2xx responses.
type APIError struct {
	Code        string `json:"error"`
	Description string `json:"message,omitempty"`
	RequestID   string `json:"requestId,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Error codes used across the API.
const (
	InvalidRequest  = "invalid_request"
	NotFound        = "not_found"
	Unauthorized    = "unauthorized"
	Forbidden       = "forbidden"
	TooManyRequests = "too_many_requests"
	ServerError     = "server_error"
)

func NewInvalidRequest(description string) *APIError {
	return &APIError{Code: InvalidRequest, Description: description}
}

func NewNotFound(description string) *APIError {
	return &APIError{Code: NotFound, Description: description}
}

func NewUnauthorized(description string) *APIError {
	return &APIError{Code: Unauthorized, Description: description}
}

func NewForbidden(description string) *APIError {
	return &APIError{Code: Forbidden, Description: description}
}

func NewServerError(description string) *APIError {
	return &APIError{Code: ServerError, Description: description}
}

// RateLimited is the 429 body. RetryAfterSeconds mirrors the
// Retry-After header so browser clients don't need header access.
type RateLimited struct {
	Code              string `json:"error"`
	Description       string `json:"message"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
}

func NewRateLimited(retryAfterSeconds int) *RateLimited {
	return &RateLimited{
		Code:              TooManyRequests,
		Description:       "Rate limit exceeded. Please try again later.",
		RetryAfterSeconds: retryAfterSeconds,
	}
}
