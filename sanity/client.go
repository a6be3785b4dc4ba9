package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultDataset is used when Config.Dataset is empty.
	DefaultDataset = "production"
	// DefaultAPIVersion is used when Config.APIVersion is empty.
	DefaultAPIVersion = "2024-01-01"
)

var projectIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Config identifies a Sanity project and dataset.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string
}

// Client wraps the Sanity HTTP query API
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
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

// WithBaseURL overrides the project API host, e.g. for a proxy.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewClient creates a new Sanity client
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("%w: project ID is required", ErrInvalidConfig)
	}
	if !projectIDPattern.MatchString(cfg.ProjectID) {
		return nil, fmt.Errorf("%w: project ID %q may only contain a-z, 0-9 and dashes", ErrInvalidConfig, cfg.ProjectID)
	}
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	cfg.APIVersion = strings.TrimPrefix(cfg.APIVersion, "v")

	host := "api.sanity.io"
	// Authenticated reads bypass the CDN; it never sees private documents.
	if cfg.UseCDN && cfg.Token == "" {
		host = "apicdn.sanity.io"
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    fmt.Sprintf("https://%s.%s", cfg.ProjectID, host),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the resolved configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// QueryURL returns the request URL for a GROQ query and its parameters.
func (c *Client) QueryURL(query string, params map[string]any) (string, error) {
	values := url.Values{}
	values.Set("query", query)
	for name, v := range params {
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode query param %s: %w", name, err)
		}
		values.Set("$"+strings.TrimPrefix(name, "$"), string(raw))
	}
	return fmt.Sprintf("%s/v%s/data/query/%s?%s", c.baseURL, c.cfg.APIVersion, url.PathEscape(c.cfg.Dataset), values.Encode()), nil
}

// queryResponse is the envelope of the query endpoint
type queryResponse struct {
	Ms     int             `json:"ms"`
	Query  string          `json:"query"`
	Result json.RawMessage `json:"result"`
}

// Query runs a GROQ query and decodes its result into out.
func (c *Client) Query(ctx context.Context, query string, params map[string]any, out any) error {
	reqURL, err := c.QueryURL(query, params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: http.MethodGet, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: http.MethodGet, URL: reqURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, body)
	}

	var envelope queryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &MalformedResponseError{StatusCode: resp.StatusCode, Body: truncate(body), Err: err}
	}
	// A present "result": null decodes to the literal null, so empty means absent.
	if len(envelope.Result) == 0 {
		return &MalformedResponseError{StatusCode: resp.StatusCode, Body: truncate(body), Err: errMissingResult}
	}

	c.logger.Debug().
		Int("server_ms", envelope.Ms).
		Str("dataset", c.cfg.Dataset).
		Msg("Sanity query completed")

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return &MalformedResponseError{StatusCode: resp.StatusCode, Body: truncate(body), Err: err}
	}
	return nil
}

// QueryInto runs a GROQ query and returns its result as T.
func QueryInto[T any](ctx context.Context, c *Client, query string, params map[string]any) (T, error) {
	var out T
	err := c.Query(ctx, query, params, &out)
	return out, err
}
