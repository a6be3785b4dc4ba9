package sanity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid sanity configuration")
	// ErrInvalidImageRef indicates an image reference that cannot be turned into a URL
	ErrInvalidImageRef = errors.New("invalid sanity image reference")

	errMissingResult = errors.New("response envelope has no result member")
)

// maxErrorBody bounds how much of a failed response is kept on errors.
const maxErrorBody = 4 << 10

// TransportError wraps a request that never produced a response. Context
// cancellation stays visible through Unwrap.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sanity request failed: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is a 2xx response whose body is not a query envelope
// or whose result does not fit the requested type.
type MalformedResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("sanity malformed response: status %d: %v", e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}

// APIError represents a Sanity API error
type APIError struct {
	StatusCode  int
	Type        string
	Description string
	Body        string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("sanity API error: status %d: %s: %s", e.StatusCode, e.Type, e.Description)
	}
	return fmt.Sprintf("sanity API error: status %d: %s", e.StatusCode, e.Description)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// newAPIError reads either {"error": {"type", "description"}} or
// {"statusCode", "error", "message"}.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode:  status,
		Description: http.StatusText(status),
		Body:        truncate(body),
	}

	var nested struct {
		Error struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Description != "" {
		apiErr.Type = nested.Error.Type
		apiErr.Description = nested.Error.Description
		return apiErr
	}

	var flat struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
		apiErr.Type = flat.Error
		apiErr.Description = flat.Message
	}
	return apiErr
}
