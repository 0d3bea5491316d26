package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "test validation error")
			},
			expected: "VALIDATION_ERROR: test validation error",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("connection refused")
				return Wrap(ProviderUnavailableError, "forecast request failed", cause)
			},
			expected: "PROVIDER_UNAVAILABLE: forecast request failed (caused by: connection refused)",
		},
		{
			name: "LocationNotFound",
			setup: func() *AppError {
				return NewLocationNotFoundError("no results for city")
			},
			expected: "LOCATION_NOT_FOUND: no results for city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	tests := []struct {
		name  string
		setup func() (*AppError, error)
	}{
		{
			name: "ErrorWithCause",
			setup: func() (*AppError, error) {
				cause := fmt.Errorf("original error")
				err := Wrap(DatabaseError, "save failed", cause)
				return err, cause
			},
		},
		{
			name: "ErrorWithoutCause",
			setup: func() (*AppError, error) {
				err := New(MalformedPayloadError, "daily arrays missing")
				return err, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err, expectedCause := tt.setup()
			assert.Equal(t, expectedCause, err.Unwrap())
		})
	}
}

func TestConstructors_SetType(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected ErrorType
	}{
		{"Validation", NewValidationError("m"), ValidationError},
		{"LocationNotFound", NewLocationNotFoundError("m"), LocationNotFoundError},
		{"GeolocationDenied", NewGeolocationDeniedError("m"), GeolocationDeniedError},
		{"GeolocationUnavailable", NewGeolocationUnavailableError("m"), GeolocationUnavailableError},
		{"ProviderUnavailable", NewProviderUnavailableError("m", nil), ProviderUnavailableError},
		{"MalformedPayload", NewMalformedPayloadError("m"), MalformedPayloadError},
		{"Database", NewDatabaseError("m", nil), DatabaseError},
		{"Configuration", NewConfigurationError("m", nil), ConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Type)
		})
	}
}

func TestAppError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewProviderUnavailableError("upstream returned 500", nil))

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ProviderUnavailableError, appErr.Type)
}
