// Package http provides the HTTP client used to fetch remote cover art.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - A size limit so a bad URL cannot exhaust memory
//
// # Basic Usage
//
//	client := http.NewClient(30 * time.Second)
//
//	// Fetch an image to embed
//	data, err := client.DownloadBytes(ctx, "https://example.com/cover.png")
package http
