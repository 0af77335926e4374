package core

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewValidationError("bad", nil), http.StatusBadRequest},
		{NewNotFoundError("missing", nil), http.StatusNotFound},
		{NewConfigurationError("Site URL is not defined.", nil), http.StatusInternalServerError},
		{NewDataSourceError("Failed to load video data for sitemap.", nil), http.StatusInternalServerError},
		{NewAppError("SOMETHING_ELSE", "?", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatusCode(tt.err))
		})
	}
}

func TestHandleError_WritesMessageOnly(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("fetch: %w", NewDataSourceError("Failed to load video data for sitemap.", cause))

	rec := httptest.NewRecorder()
	HandleError(rec, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to load video data for sitemap.\n", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestHandleError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An unexpected error occurred\n", rec.Body.String())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewDatabaseError("query failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "DATABASE_ERROR: query failed (root cause)", err.Error())
}
