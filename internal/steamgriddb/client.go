package steamgriddb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	httpclient "github.com/handiism/lutris-art-fetcher/internal/http"
	"github.com/handiism/lutris-art-fetcher/internal/model"
	"github.com/handiism/lutris-art-fetcher/internal/steamgriddb/dto"
)

// DefaultBaseURL is the SteamGridDB API v2 root.
const DefaultBaseURL = "https://www.steamgriddb.com/api/v2"

// ErrUnauthorized is returned when SteamGridDB rejects the API key.
var ErrUnauthorized = errors.New("API key rejected by SteamGridDB")

// Client is a SteamGridDB API v2 client.
//
// Every call except DownloadImage sleeps for the configured request delay
// before hitting the network, whether or not the call then succeeds, so a
// burst of lookups stays under the remote rate limit.
//
// Example usage:
//
//	client := steamgriddb.NewClient(httpclient.NewClient(apiKey), 100*time.Millisecond)
//
//	hits, err := client.Search(ctx, "hollow knight")
//	if err != nil {
//	    return err
//	}
//	grids, err := client.Assets(ctx, model.Grid, hits[0].ID, "600x900")
type Client struct {
	http    *httpclient.Client
	baseURL string
	delay   time.Duration
}

// NewClient creates a Client on top of an authenticated HTTP client.
func NewClient(hc *httpclient.Client, delay time.Duration) *Client {
	return &Client{
		http:    hc,
		baseURL: DefaultBaseURL,
		delay:   delay,
	}
}

// WithBaseURL returns a copy of c talking to another API root, used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	cp := *c
	cp.baseURL = strings.TrimRight(base, "/")
	return &cp
}

// ValidateKey checks the API key against a known endpoint.
//
// Returns true if the server answers 2xx. Transport failures are errors.
func (c *Client) ValidateKey(ctx context.Context) (bool, error) {
	code, err := c.http.Status(ctx, c.baseURL+"/grids/game/1?dimensions=600x900")
	if err != nil {
		return false, errors.Wrap(err, "key validation request failed")
	}
	return code >= 200 && code <= 299, nil
}

// Search looks a game up by free text. The first hit is the best match.
func (c *Client) Search(ctx context.Context, term string) ([]model.SearchHit, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.http.Get(ctx, c.baseURL+"/search/autocomplete/"+url.PathEscape(term))
	if err != nil {
		return nil, errors.Wrapf(classify(err), "search request failed for %q", term)
	}

	var resp dto.JSONResponse[dto.JSONGame]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse search response")
	}

	hits := make([]model.SearchHit, 0, len(resp.Data))
	for i := range resp.Data {
		hits = append(hits, resp.Data[i].ToSearchHit())
	}
	return hits, nil
}

// GameByPlatform looks a game up by a store identifier, e.g. a Steam app id.
//
// Platform lookups legitimately miss, so a non-2xx answer returns (nil, nil).
func (c *Client) GameByPlatform(ctx context.Context, platform, platformID string) (*model.SearchHit, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/games/%s/%s", c.baseURL, url.PathEscape(platform), url.PathEscape(platformID))
	body, err := c.http.Get(ctx, u)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && !isAuthStatus(se.StatusCode) {
			return nil, nil
		}
		return nil, errors.Wrapf(classify(err), "platform lookup failed for %s/%s", platform, platformID)
	}

	var resp dto.JSONSingleResponse[dto.JSONGame]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse game response")
	}
	if !resp.Success || resp.Data == nil || resp.Data.ID == 0 {
		return nil, nil
	}

	hit := resp.Data.ToSearchHit()
	return &hit, nil
}

// Assets lists images of a category for a SteamGridDB game id.
//
// dimensions is sent as the "dimensions" query parameter when non-empty.
func (c *Client) Assets(ctx context.Context, category model.AssetCategory, gameID uint64, dimensions string) ([]model.Candidate, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	u := withDimensions(fmt.Sprintf("%s/%s/game/%d", c.baseURL, category.APIPath(), gameID), dimensions)
	body, err := c.http.Get(ctx, u)
	if err != nil {
		return nil, errors.Wrapf(classify(err), "asset request failed for game %d", gameID)
	}
	return decodeImages(body)
}

// AssetsByPlatform lists images of a category using a store identifier.
//
// A non-2xx answer means there is nothing for that platform pairing and is
// returned as an empty list.
func (c *Client) AssetsByPlatform(ctx context.Context, category model.AssetCategory, platform, platformID, dimensions string) ([]model.Candidate, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	u := withDimensions(fmt.Sprintf("%s/%s/%s/%s", c.baseURL, category.APIPath(),
		url.PathEscape(platform), url.PathEscape(platformID)), dimensions)
	body, err := c.http.Get(ctx, u)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && !isAuthStatus(se.StatusCode) {
			return nil, nil
		}
		return nil, errors.Wrapf(classify(err), "platform asset request failed for %s/%s", platform, platformID)
	}
	return decodeImages(body)
}

// DownloadImage fetches raw image bytes from the CDN. It is not rate limited.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	data, err := c.http.DownloadBytes(ctx, imageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "image download failed for %s", imageURL)
	}
	return data, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func decodeImages(body []byte) ([]model.Candidate, error) {
	var resp dto.JSONResponse[dto.JSONImage]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse asset response")
	}
	if !resp.Success {
		return nil, nil
	}

	out := make([]model.Candidate, 0, len(resp.Data))
	for i := range resp.Data {
		out = append(out, resp.Data[i].ToCandidate())
	}
	return out, nil
}

func withDimensions(u, dimensions string) string {
	if dimensions == "" {
		return u
	}
	return u + "?" + url.Values{"dimensions": {dimensions}}.Encode()
}

func isAuthStatus(code int) bool {
	return code == 401 || code == 403
}

// classify maps rejected credentials onto ErrUnauthorized and leaves every
// other error untouched.
func classify(err error) error {
	var se *httpclient.StatusError
	if errors.As(err, &se) && isAuthStatus(se.StatusCode) {
		return errors.Wrap(ErrUnauthorized, strconv.Itoa(se.StatusCode))
	}
	return err
}
