package upstream

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

	"github.com/sirupsen/logrus"
)

// HTTPError is returned for any non-2xx response. The body is not parsed.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("football api: %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Cache stores raw GET response bodies keyed by request path
type Cache interface {
	Get(ctx context.Context, path string) ([]byte, bool, error)
	Set(ctx context.Context, path string, body []byte) error
	Invalidate(ctx context.Context, prefixes ...string) error
}

// Client talks to the football backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	logger     *logrus.Entry
}

// New creates a football API client. cache may be nil.
func New(baseURL string, timeout time.Duration, cache Cache, logger *logrus.Entry) *Client {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:  cache,
		logger: logger.WithField("component", "football_api"),
	}
}

// BaseURL returns the backend base URL, without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the underlying client for proxying
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Invalidate drops cached responses under the given path prefixes. Used
// after writes that bypass the typed methods.
func (c *Client) Invalidate(ctx context.Context, prefixes ...string) {
	if c.cache == nil || len(prefixes) == 0 {
		return
	}
	if err := c.cache.Invalidate(ctx, prefixes...); err != nil {
		c.logger.WithFields(logrus.Fields{"prefixes": prefixes, "error": err}).Warn("cache invalidation failed")
	}
}

// get fetches path and decodes the JSON body into dst, going through the
// cache when one is configured.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, path)
		if err != nil {
			c.logger.WithFields(logrus.Fields{"path": path, "error": err}).Warn("cache read failed")
		} else if ok {
			if err := json.Unmarshal(body, dst); err == nil {
				return nil
			}
		}
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, path, body); err != nil {
			c.logger.WithFields(logrus.Fields{"path": path, "error": err}).Warn("cache write failed")
		}
	}
	return nil
}

// send issues a write request and decodes the response into dst when
// non-nil. Cached paths under invalidate are dropped after success.
func (c *Client) send(ctx context.Context, method, path string, payload, dst interface{}, invalidate ...string) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	c.Invalidate(ctx, invalidate...)

	if dst == nil || len(resp) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// do performs the request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("football api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Method: method, Path: path}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

// decodeList accepts either a bare JSON array or a paginated
// {"results": [...]} envelope.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []T{}, nil
	}
	return page.Results, nil
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return items, nil
}
