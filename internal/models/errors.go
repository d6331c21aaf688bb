package models

import (
	"errors"
	"fmt"
	"strconv"
)

// Project data errors
var (
	// ErrInvalidTimestamp is matched by every InvalidTimestampError
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrMalformedResponse is returned when a response body is not JSON
	ErrMalformedResponse = errors.New("malformed response body")
)

// Authentication errors
var (
	// ErrNotLoggedIn is returned when no token is available
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrEmptyToken is returned when an empty token is submitted
	ErrEmptyToken = errors.New("token must not be empty")
)

// AuthenticationError is returned when the API rejects the token (401 or 403).
// The caller should ask for a new token rather than show a generic failure.
type AuthenticationError struct {
	StatusCode int
}

func (e *AuthenticationError) Error() string {
	return "Invalid Token"
}

// RequestError is returned for any other non-success status
type RequestError struct {
	StatusCode int
	StatusText string
}

func (e *RequestError) Error() string {
	if e.StatusText == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.StatusText)
}

// NetworkError wraps a transport failure where no response was received
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// InvalidTimestampError is returned when an updatedAt value is missing or out of range
type InvalidTimestampError struct {
	ProjectID string
	Value     *float64
}

func (e *InvalidTimestampError) Error() string {
	value := "missing"
	if e.Value != nil {
		value = strconv.FormatFloat(*e.Value, 'f', -1, 64)
	}
	if e.ProjectID == "" {
		return fmt.Sprintf("invalid timestamp: %s", value)
	}
	return fmt.Sprintf("invalid timestamp for project %s: %s", e.ProjectID, value)
}

func (e *InvalidTimestampError) Is(target error) bool {
	return target == ErrInvalidTimestamp
}
