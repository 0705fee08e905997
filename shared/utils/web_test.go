package utils

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itchan-dev/roadboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidate(t *testing.T) {
	type Item struct {
		Name string `json:"name" validate:"required"`
	}
	type TestStruct struct {
		Field1 string `json:"field1" validate:"required"`
		Field2 int    `json:"field2"`
		Items  []Item `json:"items" validate:"dive"`
	}

	tests := []struct {
		name        string
		requestBody string
		expectedErr *errors.ErrorWithStatusCode
	}{
		{
			name:        "Valid JSON and Validation",
			requestBody: `{"field1": "value", "field2": 123}`,
		},
		{
			name:        "Valid nested items",
			requestBody: `{"field1": "value", "items": [{"name": "a"}]}`,
		},
		{
			name:        "Invalid JSON",
			requestBody: `{"field1": "value", "field2": 123`,
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
		{
			name:        "Missing Required Field",
			requestBody: `{"field2": 123}`,
			expectedErr: &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: 400},
		},
		{
			name:        "Invalid nested item",
			requestBody: `{"field1": "value", "items": [{}]}`,
			expectedErr: &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: 400},
		},
		{
			name:        "Empty Body",
			requestBody: "",
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(tt.requestBody)))

			err := DecodeValidate(req.Body, &TestStruct{})

			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			e, ok := err.(*errors.ErrorWithStatusCode)
			require.True(t, ok, "Error should be ErrorWithStatusCode")
			assert.Equal(t, tt.expectedErr.Message, e.Message)
			assert.Equal(t, tt.expectedErr.StatusCode, e.StatusCode)
		})
	}
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"wrapped detail stays in logs", fmt.Errorf("%w: board b1", errors.NotFound), http.StatusNotFound, "not found\n"},
		{"plain status error", &errors.ErrorWithStatusCode{Message: "teapot", StatusCode: 418}, 418, "teapot\n"},
		{"curated detail", errors.WithDetail(errors.ValidationFailed, "title is required"), http.StatusUnprocessableEntity, "validation failed: title is required\n"},
		{"unknown error", fmt.Errorf("pq: connection refused"), http.StatusInternalServerError, "Internal error\n"},
		{
			"remote failure hides transport error",
			fmt.Errorf("%w: %v", errors.EnrichmentUnavailable, "Get \"http://restaurant-service:4000/info/road/map?data=r1\": dial tcp 10.0.3.9:4000: connect: connection refused"),
			http.StatusBadGateway,
			"restaurant service unavailable\n",
		},
		{
			"update failed over taxonomy cause",
			fmt.Errorf("%w: %w", errors.UpdateFailed, fmt.Errorf("%w: status 503", errors.EnrichmentUnavailable)),
			http.StatusUnprocessableEntity,
			"board update failed: restaurant service unavailable\n",
		},
		{
			"update failed over driver error is internal",
			fmt.Errorf("%w: %w", errors.UpdateFailed, fmt.Errorf("failed to delete personal map entries: %w", fmt.Errorf("pq: password authentication failed"))),
			http.StatusInternalServerError,
			"Internal error\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteErrorAndStatusCode(rr, tt.err)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestWriteJSON(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteJSON(rr, http.StatusCreated, map[string]string{"message": "hello"})
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"hello"}`, rr.Body.String())
	})

	t.Run("unencodable", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteJSON(rr, http.StatusOK, make(chan int))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
