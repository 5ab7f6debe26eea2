package dto

import (
	"strings"

	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// JSONImage is one image from the grids/heroes/logos/icons endpoints.
// The schema is shared by all four.
type JSONImage struct {
	ID     uint64 `json:"id"`
	Score  int    `json:"score"`
	Style  string `json:"style"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	NSFW   bool   `json:"nsfw"`
	Humor  bool   `json:"humor"`
	Mime   string `json:"mime"`
	URL    string `json:"url"`
	Thumb  string `json:"thumb"`
}

// ToCandidate converts JSONImage to a model.Candidate.
func (ji *JSONImage) ToCandidate() model.Candidate {
	// CDN links occasionally come back scheme-relative
	url := ji.URL
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}

	return model.Candidate{
		ID:     ji.ID,
		Score:  ji.Score,
		Style:  ji.Style,
		Width:  ji.Width,
		Height: ji.Height,
		NSFW:   ji.NSFW,
		Humor:  ji.Humor,
		Mime:   ji.Mime,
		URL:    url,
		Thumb:  ji.Thumb,
	}
}
