// Package errors provides standardized error handling for the time skill.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeLocationNotFound  ErrorCode = "LOCATION_NOT_FOUND"
	ErrCodeGeolocationFailed ErrorCode = "GEOLOCATION_FAILED"

	ErrCodeTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeRegistryInvalid   ErrorCode = "REGISTRY_INVALID"
	ErrCodeTimezoneInvalid   ErrorCode = "TIMEZONE_INVALID"
	ErrCodeCacheRefreshError ErrorCode = "CACHE_REFRESH_ERROR"
	ErrCodeSpeechFailed      ErrorCode = "SPEECH_FAILED"
)

// ErrLocationNotFound is the sentinel matched with errors.Is at the skill
// boundary. A requested place that the geolocation service cannot resolve,
// and a failed lookup, both collapse to this error.
var ErrLocationNotFound = errors.New(string(ErrCodeLocationNotFound))

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewGeolocationFailedError creates a retryable geolocation transport error.
func NewGeolocationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeolocationFailed,
		Message:   "Geolocation service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateNotFoundError creates a non-retryable dialog template error.
func NewTemplateNotFoundError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "Dialog template not found in registry",
		Details:   fmt.Sprintf("templateKey: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryInvalidError creates a non-retryable registry validation error.
func NewRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryInvalid,
		Message:   "Dialog registry failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTimezoneInvalidError creates a non-retryable timezone resolution error.
func NewTimezoneInvalidError(tzID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimezoneInvalid,
		Message:   "Timezone identifier could not be loaded",
		Details:   fmt.Sprintf("timezone: %s, error: %s", tzID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheRefreshError creates a retryable cache refresh error. It is logged
// and swallowed at the scheduler call site, never propagated.
func NewCacheRefreshError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheRefreshError,
		Message:   "Speech pre-cache refresh failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpeechFailedError creates a retryable speech synthesis/output error.
func NewSpeechFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSpeechFailed,
		Message:   "Speech output failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
