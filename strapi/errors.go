package strapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid strapi configuration")
	// ErrNotCached is returned for CacheOnlyIfCached reads that miss the cache
	ErrNotCached = errors.New("response not in cache")
)

// ConfigurationError reports FetchOptions that cannot be encoded.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid fetch options: %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match ErrInvalidConfig.
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfig
}

// RemoteError represents a non-2xx response from the content API.
type RemoteError struct {
	StatusCode int
	Name       string
	Message    string
	Details    map[string]any
	Body       string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("strapi API error: status %d: %s: %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("strapi API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *RemoteError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *RemoteError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// MalformedResponseError is returned when a successful response body does not
// decode into the expected envelope.
type MalformedResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed strapi response (status %d): %v", e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// TransportError wraps a network-level failure from the HTTP client.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a RemoteError with status 404.
func IsNotFound(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.IsNotFound()
}
