// Package http provides an HTTP client configured for SteamGridDB API
// requests.
//
// The Client in this package handles:
//   - Bearer token authentication
//   - User-Agent headers
//   - Timeout handling
//   - Typed errors for non-2xx responses
//
// # Basic Usage
//
//	client := http.NewClient(apiKey)
//
//	// Fetch a JSON document
//	body, err := client.Get(ctx, "https://www.steamgriddb.com/api/v2/grids/game/1")
//
//	// Download an image
//	data, err := client.DownloadBytes(ctx, imageURL)
//
// # Errors
//
// Non-2xx responses are reported as *StatusError so callers can tell a
// rejected credential (401/403) or a missing resource (404) from a transport
// failure.
package http
