// Package apiclient talks to the Daily Mart REST API on behalf of a signed-in
// admin. A Client carries at most one bearer token and is cheap to copy, so
// handlers derive a per-request client from the session credential instead of
// mutating shared state.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const maxResponseBytes = 10 << 20

// Observer records the outcome of every API call.
type Observer interface {
	ObserveAPICall(method, endpoint string, status int, elapsed time.Duration)
}

// Options configures New.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Observer   Observer
}

// Client issues JSON requests against the API base URL.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	observer Observer
	token    string
	public   bool
}

// New builds a Client without a credential.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		logger:   logger,
		observer: opts.Observer,
	}
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = strings.TrimSpace(token)
	clone.public = false
	return &clone
}

// Public returns a copy of c allowed to call endpoints that need no token,
// such as login.
func (c *Client) Public() *Client {
	clone := *c
	clone.token = ""
	clone.public = true
	return &clone
}

// HasCredential reports whether requests will carry a bearer token.
func (c *Client) HasCredential() bool {
	return c != nil && c.token != ""
}

// Get fetches path with optional query parameters into dest.
func (c *Client) Get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", dest)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body, dest any) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, dest)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, path string, body, dest any) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, dest)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", dest)
}

// File is an upload part for PostMultipart.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// PostMultipart sends fields and an optional file as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, query url.Values, fields url.Values, file *File, dest any) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range fields[k] {
			if err := writer.WriteField(k, v); err != nil {
				return fmt.Errorf("apiclient: write field %s: %w", k, err)
			}
		}
	}
	if file != nil && file.Content != nil {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return fmt.Errorf("apiclient: create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("apiclient: copy file part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("apiclient: close multipart: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, query, &body, writer.FormDataContentType(), dest)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, nil, reader, "application/json", dest)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, dest any) error {
	if c == nil {
		return ErrNoCredential
	}
	if !c.public && c.token == "" {
		return ErrNoCredential
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, path, 0, start)
		c.logger.Warn("api request failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.observe(method, path, resp.StatusCode, start)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("apiclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(method, path, resp.StatusCode, payload)
		c.logger.Warn("api request rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message),
		)
		return apiErr
	}

	if dest == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	if v, ok := dest.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
		}
	}
	return nil
}

func (c *Client) url(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return u + sep + query.Encode()
}

func (c *Client) observe(method, path string, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveAPICall(method, endpointLabel(path), status, time.Since(start))
}

// endpointLabel strips ids and query strings so metric cardinality stays flat:
// "/products/12?_method=PUT" becomes "/products/:id".
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		if strings.Trim(s, "0123456789") == "" {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
