package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	assert.Equal(t, "Resource not found", err.Error())
}

func TestEmptyFilterResultError(t *testing.T) {
	apiErr := EmptyFilterResultError(NewEmptyFilterError("no rows matched state NY"))

	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "EMPTY_FILTER_RESULT", apiErr.ErrorCode)
	assert.Contains(t, apiErr.Details, "no rows matched state NY")
}

func TestNoDataAvailableError(t *testing.T) {
	apiErr := NoDataAvailableError(NewNoDataError("no usable rows"))

	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "NO_DATA_AVAILABLE", apiErr.ErrorCode)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrDatasetUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DATASET_UNAVAILABLE", resp.Error.ErrorCode)
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"internal server", ErrInternalServer, http.StatusInternalServerError},
		{"dataset unavailable", ErrDatasetUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.NotEmpty(t, tt.err.ErrorCode)
		})
	}
}
