package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType string

// Domain/Business Logic Errors - errors related to query validation and location lookup
const (
	ValidationError       ErrorType = "VALIDATION_ERROR"
	LocationNotFoundError ErrorType = "LOCATION_NOT_FOUND"
)

// Geolocation Errors - the coordinate source was denied or timed out
const (
	GeolocationDeniedError      ErrorType = "GEOLOCATION_DENIED"
	GeolocationUnavailableError ErrorType = "GEOLOCATION_UNAVAILABLE"
)

// Infrastructure Errors - errors related to external systems and services
const (
	ProviderUnavailableError ErrorType = "PROVIDER_UNAVAILABLE"
	MalformedPayloadError    ErrorType = "MALFORMED_PAYLOAD"
	DatabaseError            ErrorType = "DATABASE_ERROR"
)

// System/Configuration Errors - errors related to system setup and configuration
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewLocationNotFoundError(message string) *AppError {
	return New(LocationNotFoundError, message)
}

// Geolocation Error Constructors
func NewGeolocationDeniedError(message string) *AppError {
	return New(GeolocationDeniedError, message)
}

func NewGeolocationUnavailableError(message string) *AppError {
	return New(GeolocationUnavailableError, message)
}

// Infrastructure Error Constructors
func NewProviderUnavailableError(message string, cause error) *AppError {
	return Wrap(ProviderUnavailableError, message, cause)
}

func NewMalformedPayloadError(message string) *AppError {
	return New(MalformedPayloadError, message)
}

func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}
