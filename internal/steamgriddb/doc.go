// Package steamgriddb is a client for the SteamGridDB API v2.
//
// The package covers the calls lutris-art-fetcher needs:
//
//  1. Validating an API key
//  2. Resolving a game, by store identifier or by free-text search
//  3. Listing grids, heroes, logos and icons for a game
//  4. Downloading the chosen image from the CDN
//
// # Basic Usage
//
//	client := steamgriddb.NewClient(httpclient.NewClient(apiKey), 100*time.Millisecond)
//
//	ok, err := client.ValidateKey(ctx)
//
//	hits, err := client.Search(ctx, "celeste")
//	images, err := client.Assets(ctx, model.Hero, hits[0].ID, "")
//	data, err := client.DownloadImage(ctx, images[0].URL)
//
// # Rate Limiting
//
// Every API call except the CDN download waits a fixed delay first. The
// delay honours context cancellation.
//
// # Errors
//
// Search and Assets return the underlying *http.StatusError for non-2xx
// responses; 401 and 403 wrap ErrUnauthorized. The platform variants treat
// any other non-2xx answer as "nothing found".
package steamgriddb
