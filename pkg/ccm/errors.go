package ccm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Static errors for err113 compliance.
var (
	// ErrConfigRequired indicates a nil client configuration.
	ErrConfigRequired = errors.New("config is required")

	// ErrMissingEndpoint indicates a configuration without an API endpoint.
	ErrMissingEndpoint = errors.New("API endpoint is required")

	// ErrInvalidScope indicates that zero or more than one container was set.
	ErrInvalidScope = errors.New("exactly one of folder, snippet, or device must be set")

	// ErrMissingScopeValue indicates the selected container has a blank value.
	ErrMissingScopeValue = errors.New("scope value must not be blank")

	// ErrMalformedResponse indicates a response body outside the three
	// supported layouts.
	ErrMalformedResponse = errors.New("malformed API response")

	// ErrInvalidFilterValue indicates a filter option with an unknown key or
	// a value of the wrong type.
	ErrInvalidFilterValue = errors.New("invalid filter value")

	// ErrNotFound indicates no record matched a name lookup.
	ErrNotFound = errors.New("not found")

	// ErrMalformedRecord indicates a record that cannot be used, such as a
	// fetch result without an id.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidPageSize indicates a page size outside 1..MaxPageSize.
	ErrInvalidPageSize = errors.New("page size out of range")

	// ErrMissingName indicates an empty name where one is required.
	ErrMissingName = errors.New("name must not be empty")

	// ErrMissingID indicates an empty object id where one is required.
	ErrMissingID = errors.New("id must not be empty")
)

// APIError represents a single error returned by the configuration
// management API.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}

	return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
}

// ResponseError represents an error response from the API.
type ResponseError struct {
	Errors    []APIError `json:"_errors"`
	RequestID string     `json:"_request_id"`

	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("unknown API error (status %d)", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s (status %d)", e.Errors[0].Error(), e.StatusCode)
	}

	msg := fmt.Sprintf("multiple API errors (status %d):", e.StatusCode)
	for i := range e.Errors {
		msg += "\n  - " + e.Errors[i].Error()
	}

	return msg
}

// FirstError returns the first API error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// IsNotFound returns true if the error indicates a missing resource, either
// as an ErrNotFound from a name lookup or as an HTTP 404 from the API.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}

	return hasStatus(err, statusNotFound)
}

// IsUnauthorized returns true if the error indicates missing or expired
// credentials.
func IsUnauthorized(err error) bool {
	return hasStatus(err, statusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return hasStatus(err, statusForbidden)
}

const (
	statusUnauthorized = 401
	statusForbidden    = 403
	statusNotFound     = 404
)

func hasStatus(err error, status int) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}

	return false
}

// ParseResponseError parses an error response body into a ResponseError.
// Bodies that are not the documented error envelope are preserved verbatim
// as a single API error.
func ParseResponseError(data []byte, statusCode int) error {
	var respErr ResponseError

	err := json.Unmarshal(data, &respErr)
	if err != nil || len(respErr.Errors) == 0 {
		message := strings.TrimSpace(string(data))
		if message == "" {
			message = "empty response body"
		}

		return &ResponseError{
			StatusCode: statusCode,
			Errors:     []APIError{{Message: message}},
		}
	}

	respErr.StatusCode = statusCode

	return &respErr
}
