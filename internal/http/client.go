package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 64 << 20

// ErrBodyTooLarge is returned when a response body exceeds the read limit.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned when the server answers with a non-2xx status.
//
// Callers inspect it with errors.As to decide whether a miss is fatal:
//
//	var se *http.StatusError
//	if errors.As(err, &se) && se.StatusCode == 404 {
//	    // not found
//	}
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Client wraps HTTP operations with SteamGridDB-specific configuration.
//
// Client provides:
//   - Bearer token authentication on every request
//   - User-Agent header
//   - Timeout handling
//   - Typed errors for non-2xx responses
//
// Example usage:
//
//	client := NewClient(apiKey)
//
//	// Fetch a JSON document
//	body, err := client.Get(ctx, "https://www.steamgriddb.com/api/v2/search/autocomplete/hades")
//
//	// Probe an endpoint without caring about the body
//	code, err := client.Status(ctx, "https://www.steamgriddb.com/api/v2/grids/game/1")
type Client struct {
	httpClient *http.Client
	token      string
	userAgent  string
	maxBody    int64
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client, e.g. with the one from
// an httptest.Server.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new HTTP client authenticating with token.
//
// The client is configured with:
//   - 30 second timeout
//   - "lutris-art-fetcher" User-Agent header
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		token:     token,
		userAgent: "lutris-art-fetcher",
		maxBody:   maxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 2xx (a *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode), URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, url, c.maxBody)
	}
	return body, nil
}

// Status performs a GET request and returns only the response status code.
//
// A non-2xx status is not an error here; only transport failures are.
func (c *Client) Status(ctx context.Context, url string) (int, error) {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	return resp.StatusCode, nil
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for images; they are small enough to hold in memory and are
// written to disk in one atomic step afterwards.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, candidate.URL)
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
