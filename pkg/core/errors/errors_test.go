package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorUnwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrBadRequest},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrServiceUnavailable},
		{http.StatusBadGateway, ErrServiceUnavailable},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		err := NewAPIError(tt.status, http.MethodGet, "/api/subtitles/search", nil)
		assert.True(t, errors.Is(err, tt.want), "status %d should map to %v", tt.status, tt.want)
	}

	assert.Nil(t, NewAPIError(http.StatusNotModified, http.MethodGet, "/", nil).Unwrap())
}

func TestAPIErrorMessage(t *testing.T) {
	err := NewAPIError(http.StatusBadRequest, http.MethodGet, "/api/subtitles/search", []byte(`{"error":"query is required"}`))
	assert.Equal(t, `api request GET /api/subtitles/search failed: status 400, body: {"error":"query is required"}`, err.Error())

	err = NewAPIError(http.StatusBadGateway, http.MethodGet, "/auth/profile", nil)
	assert.Equal(t, "api request GET /auth/profile failed: status 502", err.Error())
}

func TestAPIErrorTruncatesBody(t *testing.T) {
	body := []byte(strings.Repeat("x", 2*maxBodyInError))

	err := NewAPIError(http.StatusInternalServerError, http.MethodGet, "/", body)

	assert.Len(t, err.Body, maxBodyInError)
}
