package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/shared/failure"
	"rentwheels/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "failure message is shown",
			err:     fmt.Errorf("failed to book car: %w", failure.Conflict("This car is no longer available!")),
			code:    http.StatusConflict,
			message: "This car is no longer available!",
		},
		{
			name:    "storage errors are masked",
			err:     errors.New("pq: relation \"cars\" does not exist"),
			code:    http.StatusInternalServerError,
			message: "Operation failed. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			var body response.Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.message, *body.Error)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]int{"cleared": 2})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"cleared":2}}`, rec.Body.String())
}
