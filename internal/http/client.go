package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxBytes caps a single download. Cover art beyond this size is
// almost certainly not an image meant for embedding.
const DefaultMaxBytes = 32 << 20

// Client wraps HTTP operations with id3-image specific configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Bounded in-memory downloads
//
// Example usage:
//
//	client := NewClient(30 * time.Second)
//	data, err := client.DownloadBytes(ctx, "https://example.com/cover.jpg")
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - the given timeout (60 seconds when timeout is not positive)
//   - "id3-image" User-Agent header
//   - DefaultMaxBytes download limit
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "id3-image",
		maxBytes:  DefaultMaxBytes,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - The body is larger than the client limit
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if resp.ContentLength > c.maxBytes {
		return nil, fmt.Errorf("response too large: %d bytes", resp.ContentLength)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", c.maxBytes)
	}

	return body, nil
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for small files like cover art images.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, artworkURL)
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
