package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentwheels/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusConflict, Message: "Car is already booked!"}

	assert.Equal(t, "Car is already booked!", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", failure.BadRequest(errors.New("bad input")), http.StatusBadRequest, "bad input"},
		{"bad request string", failure.BadRequestFromString("End date cannot be before start date!"), http.StatusBadRequest, "End date cannot be before start date!"},
		{"unauthorized", failure.Unauthorized("Invalid username or password!"), http.StatusUnauthorized, "Invalid username or password!"},
		{"internal", failure.InternalError(errors.New("boom")), http.StatusInternalServerError, "boom"},
		{"unimplemented", failure.Unimplemented("Export"), http.StatusNotImplemented, "Export"},
		{"not found", failure.NotFound("car"), http.StatusNotFound, "car not found"},
		{"not found string", failure.NotFoundFromString("Car not found!"), http.StatusNotFound, "Car not found!"},
		{"conflict", failure.Conflict("taken"), http.StatusConflict, "taken"},
		{"forbidden", failure.Forbidden("nope"), http.StatusForbidden, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, failure.GetMessage(tt.err))
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("failed to book car: %w", failure.Conflict("Car is already booked!"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, "Car is already booked!", failure.GetMessage(wrapped))
	assert.True(t, failure.IsCode(wrapped, http.StatusConflict))
	assert.False(t, failure.IsCode(wrapped, http.StatusNotFound))
}

func TestGetCode_PlainError(t *testing.T) {
	err := errors.New("driver: bad connection")

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Equal(t, "Internal Server Error", failure.GetMessage(err))
	assert.False(t, failure.IsCode(err, http.StatusInternalServerError))
}

func TestPredefinedFailures(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, failure.InvalidPageParam.Code)
	assert.Equal(t, http.StatusBadRequest, failure.InvalidLimitParam.Code)
	assert.Equal(t, http.StatusForbidden, failure.ForbiddenError.Code)
	assert.Equal(t, http.StatusForbidden, failure.ResourceRestrictedError.Code)
}
