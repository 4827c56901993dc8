package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidInput, ErrUnauthorized, ErrForbidden,
		ErrFailedPrecondition, ErrResourceExhausted, ErrInternal,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "order write failed", Err: fmt.Errorf("tx aborted")}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "order write failed")
	assert.Contains(t, appErr.Error(), "tx aborted")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", appErr.Error())
}

func TestAppError_Unwrap_Nil(t *testing.T) {
	appErr := &AppError{Code: "TEST", Message: "test"}
	assert.Nil(t, appErr.Unwrap())
}

// --- Constructor functions ---

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NotFound("product", "p1"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"invalid input", InvalidInput("items must not be empty"), "INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput},
		{"unauthorized", Unauthorized("authentication required"), "UNAUTHORIZED", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", Forbidden("not allowed"), "FORBIDDEN", http.StatusForbidden, ErrForbidden},
		{"failed precondition", FailedPrecondition("product is inactive"), "FAILED_PRECONDITION", http.StatusPreconditionFailed, ErrFailedPrecondition},
		{"resource exhausted", ResourceExhausted("too many messages"), "RESOURCE_EXHAUSTED", http.StatusTooManyRequests, ErrResourceExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.True(t, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestNotFound_MessageNamesResource(t *testing.T) {
	err := NotFound("product", "abc-123")
	assert.Contains(t, err.Message, "product")
	assert.Contains(t, err.Message, "abc-123")
}

func TestInternal_HidesCause(t *testing.T) {
	err := Internal(fmt.Errorf("connection reset"))
	assert.Equal(t, "an internal error occurred", err.Message)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestInternalWithMessage(t *testing.T) {
	cause := fmt.Errorf("twilio: 21211")
	err := InternalWithMessage("The 'To' number is not a valid phone number.", cause)
	assert.Equal(t, "INTERNAL_ERROR", err.Code)
	assert.Equal(t, "The 'To' number is not a valid phone number.", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestInternalWithMessage_NilCause(t *testing.T) {
	err := InternalWithMessage("gateway failed", nil)
	assert.ErrorIs(t, err, ErrInternal)
}

// --- Wrap ---

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "get order")
	assert.Contains(t, wrapped.Error(), "get order")
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

// --- HTTPStatus ---

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusPreconditionFailed, HTTPStatus(FailedPrecondition("multi-vendor")))
}

func TestHTTPStatus_SentinelErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrFailedPrecondition, http.StatusPreconditionFailed},
		{ErrResourceExhausted, http.StatusTooManyRequests},
		{ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_WrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("create order: %w", ResourceExhausted("slow down"))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(wrapped))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unknown")))
}
