package distributor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/bomstock/pkg/buildinfo"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
	"github.com/matzehuels/bomstock/pkg/observability"
)

// DefaultTimeout bounds a single distributor request.
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when the distributor has no such resource (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and unexpected HTTP statuses.
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when credentials are missing or rejected (HTTP 401/403).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("decode error")

	// ErrAPI is returned when the distributor reports an error inside a 200 response.
	ErrAPI = errors.New("api error")
)

// maxErrorBody limits how much of an error response is kept for diagnostics.
const maxErrorBody = 512

// Client provides shared HTTP functionality for all distributor clients.
// It handles default headers, JSON bodies and status mapping.
//
// Client is safe for concurrent use.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
// A nil httpClient gets a client with [DefaultTimeout].
func NewClient(httpClient *http.Client, headers map[string]string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &Client{
		http:    httpClient,
		headers: headers,
	}
}

// NewHTTPClient creates an HTTP client with the given timeout.
// A non-positive timeout falls back to [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, endpoint string, v any) error {
	return c.GetWithHeaders(ctx, endpoint, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, endpoint string, headers map[string]string, v any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, headers, v)
}

// PostJSON encodes body as JSON, POSTs it and decodes the response into v.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body any, headers map[string]string, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	merged := map[string]string{"Content-Type": "application/json"}
	for k, val := range headers {
		merged[k] = val
	}
	return c.do(ctx, http.MethodPost, endpoint, data, merged, v)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, headers map[string]string, v any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, which carries the Mouser API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		hooks.OnError(ctx, method, host, path, err)
		return bserrors.Wrap(bserrors.ErrCodeNetwork, fmt.Errorf("%w: %v", ErrNetwork, err), "%s %s", method, path)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return bserrors.Wrap(bserrors.ErrCodeDecode, fmt.Errorf("%w: %v", ErrDecode, err), "%s %s", method, path)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	if code == http.StatusOK {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := fmt.Sprintf("status %d", code)
	if len(bytes.TrimSpace(snippet)) > 0 {
		detail = fmt.Sprintf("status %d: %s", code, bytes.TrimSpace(snippet))
	}

	switch {
	case code == http.StatusNotFound:
		return bserrors.Wrap(bserrors.ErrCodeNotFound, ErrNotFound, "%s", detail)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return bserrors.Wrap(bserrors.ErrCodeUnauthorized, ErrUnauthorized, "%s", detail)
	default:
		return bserrors.Wrap(bserrors.ErrCodeNetwork, ErrNetwork, "%s", detail)
	}
}
