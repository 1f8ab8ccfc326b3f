// Package linku fetches word documents from the linku API.
package linku

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the linku API root.
	DefaultBaseURL = "https://api.linku.la/v1"

	// DefaultTimeout bounds a whole document download.
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of a response is read (documents are a few MB).
	maxBodyBytes = 64 << 20
)

// Client downloads language documents.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string

	logger zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.BaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient = &http.Client{Timeout: timeout}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.UserAgent = ua
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the public linku API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DocumentURL returns the URL of the words document for lang.
func (c *Client) DocumentURL(lang string) string {
	return c.BaseURL + "/words?lang=" + url.QueryEscape(lang)
}

// Fetch downloads the words document for lang. Every failure is reported as a
// *FetchError; the caller is expected to treat it as fatal.
func (c *Client) Fetch(ctx context.Context, lang string) (json.RawMessage, error) {
	target := c.DocumentURL(lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("failed to download data: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.logger.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("fetched words document")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    apiMessage(body),
		}
	}

	var doc json.RawMessage
	if unmarshalErr := json.Unmarshal(body, &doc); unmarshalErr != nil {
		return nil, &FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to parse response string %q: %w", excerpt(body), unmarshalErr),
		}
	}

	if msg := apiMessage(body); msg != "" && isErrorObject(body) {
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode, Message: msg}
	}

	return doc, nil
}

// apiMessage extracts the "message" member of an API error body.
func apiMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// isErrorObject reports whether body is an object whose only member is "message".
func isErrorObject(body []byte) bool {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(body), &members); err != nil {
		return false
	}
	_, ok := members["message"]
	return ok && len(members) == 1
}
