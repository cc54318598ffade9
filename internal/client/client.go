// Package client talks to the ShareSpace REST API and keeps the local
// session the way the web client kept it in browser storage.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:5001/api"
	BaseURLEnv     = "SHARESPACE_API_BASE_URL"
)

// BaseURLFromEnv returns SHARESPACE_API_BASE_URL or the local default.
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(BaseURLEnv)); v != "" {
		return v
	}
	return DefaultBaseURL
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOption adjusts outgoing headers. Options run after the defaults, so
// a caller header replaces a default one.
type RequestOption func(h http.Header)

func WithHeader(key, value string) RequestOption {
	return func(h http.Header) { h.Set(key, value) }
}

func WithBearer(token string) RequestOption {
	return WithHeader("Authorization", "Bearer "+token)
}

// Do sends body as JSON to base+path. A JSON response is decoded into out; a
// text response is stored in out when it is a *string. Any non-2xx status
// becomes an *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req.Header)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response failed: %w", err)
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")
	var data any
	if isJSON {
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("decode response failed: %w", err)
			}
		}
	} else {
		data = string(raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, isJSON, data)
	}

	if out == nil {
		return nil
	}
	if isJSON {
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response failed: %w", err)
		}
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(raw)
		return nil
	}
	return fmt.Errorf("unexpected %q response from %s", resp.Header.Get("Content-Type"), path)
}
