package download

import "github.com/handiism/lutris-art-fetcher/internal/model"

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 3

// Options controls a download run. It is copied into the Manager and never
// changes during a run.
type Options struct {
	// GridDimension is sent as the dimensions filter for grid listings.
	GridDimension string

	// Concurrency is how many games may be in flight at once.
	Concurrency int

	ExcludeNSFW  bool
	ExcludeHumor bool

	// Force re-downloads art that already exists on disk.
	Force bool

	// ConvertImages re-encodes downloads to match their file extension.
	ConvertImages bool

	// Categories is processed in this order for every game.
	Categories []model.AssetCategory
}

func (o Options) normalize() (Options, error) {
	cats := make([]model.AssetCategory, 0, len(o.Categories))
	seen := make(map[model.AssetCategory]bool)
	for _, c := range o.Categories {
		if c < model.Grid || c > model.Icon {
			return o, ErrUnknownCategory
		}
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	if len(cats) == 0 {
		return o, ErrNoCategories
	}
	o.Categories = cats

	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	return o, nil
}
