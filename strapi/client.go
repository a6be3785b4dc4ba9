package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s0up4200/lenscms/cache"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:1337"

// maxErrorBody bounds how much of a failed response is kept on errors.
const maxErrorBody = 4 << 10

// Client represents a Strapi content API client
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	cache      cache.Store
	logger     zerolog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithCache enables the response cache used by Revalidate and Cache directives.
func WithCache(store cache.Store) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new Strapi client. An empty baseURL falls back to
// DefaultBaseURL; an empty token sends requests unauthenticated.
func NewClient(baseURL, token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be absolute", ErrInvalidConfig, baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		token:      token,
		userAgent:  "lenscms",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured API host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the full request URL for endpoint and opts.
func (c *Client) URL(endpoint string, opts FetchOptions) (string, error) {
	query, err := Encode(opts)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	u := c.baseURL + "/api" + endpoint
	if query != "" {
		u += "?" + query
	}
	return u, nil
}

// Fetch reads endpoint and decodes the {data, meta} envelope into Response[T].
func Fetch[T any](ctx context.Context, c *Client, endpoint string, opts FetchOptions) (*Response[T], error) {
	reqURL, err := c.URL(endpoint, opts)
	if err != nil {
		return nil, err
	}

	body, status, err := c.get(ctx, reqURL, opts)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](status, body)
}

// Create posts payload to endpoint wrapped as {"data": payload}.
func Create[T any](ctx context.Context, c *Client, endpoint string, payload any) (*Response[T], error) {
	reqURL, err := c.URL(endpoint, FetchOptions{})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(map[string]any{"data": payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	body, status, err := c.doRequest(ctx, http.MethodPost, reqURL, raw, "")
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](status, body)
}

// Ping checks that the server answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/_health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: http.MethodGet, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}

// errMissingData reports a 2xx body that is JSON but not a {data, meta} envelope.
var errMissingData = errors.New("response envelope has no data member")

func decodeResponse[T any](status int, body []byte) (*Response[T], error) {
	malformed := func(err error) error {
		return &MalformedResponseError{StatusCode: status, Body: truncate(body), Err: err}
	}

	var head map[string]json.RawMessage
	if err := json.Unmarshal(body, &head); err != nil {
		return nil, malformed(err)
	}
	data, ok := head["data"]
	if !ok {
		return nil, malformed(errMissingData)
	}

	var out Response[T]
	if err := json.Unmarshal(data, &out.Data); err != nil {
		return nil, malformed(err)
	}
	if meta, ok := head["meta"]; ok {
		if err := json.Unmarshal(meta, &out.Meta); err != nil {
			return nil, malformed(err)
		}
	}
	return &out, nil
}

// get serves a read from the cache when opts allow it and otherwise issues it.
func (c *Client) get(ctx context.Context, reqURL string, opts FetchOptions) ([]byte, int, error) {
	policy := policyFor(opts)

	if policy.read && c.cache != nil {
		entry, ok, err := c.cache.Get(ctx, reqURL)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Str("url", reqURL).Msg("Response cache read failed")
		case ok && entry.Fresh(policy.maxAge, c.now()):
			c.logger.Debug().Str("url", reqURL).Time("stored_at", entry.StoredAt).Msg("Serving cached response")
			return entry.Body, http.StatusOK, nil
		}
	}
	if policy.onlyCached {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotCached, reqURL)
	}

	body, status, err := c.doRequest(ctx, http.MethodGet, reqURL, nil, policy.header)
	if err != nil {
		return nil, 0, err
	}

	if policy.write && c.cache != nil && json.Valid(body) {
		ttl := policy.maxAge
		if ttl < 0 {
			ttl = 0
		}
		entry := cache.Entry{Body: body, StoredAt: c.now()}
		if err := c.cache.Set(ctx, reqURL, entry, ttl); err != nil {
			c.logger.Warn().Err(err).Str("url", reqURL).Msg("Response cache write failed")
		}
	}
	return body, status, nil
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, reqURL string, reqBody []byte, cacheControl string) ([]byte, int, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		bodyReader = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if cacheControl != "" {
		req.Header.Set("Cache-Control", cacheControl)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Method: method, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Method: method, URL: reqURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("duration", c.now().Sub(start)).
		Msg("Strapi API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, newRemoteError(resp.StatusCode, body)
	}
	return body, resp.StatusCode, nil
}

func newRemoteError(status int, body []byte) *RemoteError {
	remote := &RemoteError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       truncate(body),
	}
	if parsed, ok := parseErrorBody(body); ok {
		remote.Name = parsed.Name
		remote.Message = parsed.Message
		remote.Details = parsed.Details
	}
	return remote
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}

// AsRemoteError returns the RemoteError in err's chain, if any.
func AsRemoteError(err error) (*RemoteError, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote, true
	}
	return nil, false
}
