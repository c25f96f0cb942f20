package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"task not found", ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
		{"email taken", ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
		{"no image", ErrNoImage, http.StatusBadRequest, "NO_IMAGE"},
		{"upload failed", ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{"wrapped sentinel", fmt.Errorf("%w: backend said no", ErrUploadFailed), http.StatusInternalServerError, "UPLOAD_FAILED"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_UnknownHidesDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.5:3306: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)
}
