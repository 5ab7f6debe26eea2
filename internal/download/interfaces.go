package download

import (
	"context"

	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// Remote is the part of the SteamGridDB client the pipeline depends on.
// *steamgriddb.Client implements it.
type Remote interface {
	Search(ctx context.Context, term string) ([]model.SearchHit, error)
	GameByPlatform(ctx context.Context, platform, platformID string) (*model.SearchHit, error)
	Assets(ctx context.Context, category model.AssetCategory, gameID uint64, dimensions string) ([]model.Candidate, error)
	AssetsByPlatform(ctx context.Context, category model.AssetCategory, platform, platformID, dimensions string) ([]model.Candidate, error)
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}
