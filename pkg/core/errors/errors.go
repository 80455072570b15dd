package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard API-related errors
var (
	ErrUnauthorized       = errors.New("vocabulary: unauthorized (no valid session)")
	ErrForbidden          = errors.New("vocabulary: forbidden (insufficient roles)")
	ErrNotFound           = errors.New("vocabulary: resource not found")
	ErrBadRequest         = errors.New("vocabulary: bad request")
	ErrRateLimited        = errors.New("vocabulary: rate limit exceeded")
	ErrServiceUnavailable = errors.New("vocabulary: service unavailable or internal server error")

	// Configuration errors
	ErrMissingBaseURL = errors.New("client: base URL is not configured")
	ErrInvalidBaseURL = errors.New("client: base URL is not a valid absolute URL")

	// Request validation errors
	ErrInvalidParameter = errors.New("client: invalid request parameter")
)

// maxBodyInError bounds how much of a response body an APIError carries.
const maxBodyInError = 512

// APIError describes a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

// NewAPIError builds an APIError, truncating the body.
func NewAPIError(statusCode int, method, path string, body []byte) *APIError {
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError]
	}
	return &APIError{
		StatusCode: statusCode,
		Method:     method,
		Path:       path,
		Body:       string(body),
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api request %s %s failed: status %d, body: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api request %s %s failed: status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap maps the status code onto one of the sentinel errors above, so
// callers can use errors.Is(err, ErrUnauthorized) and friends.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode >= 500:
		return ErrServiceUnavailable
	case e.StatusCode >= 400:
		return ErrBadRequest
	}
	return nil
}
