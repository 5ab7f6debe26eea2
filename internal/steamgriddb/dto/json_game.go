package dto

import "github.com/handiism/lutris-art-fetcher/internal/model"

// JSONGame is a game returned by /search/autocomplete and /games/*.
type JSONGame struct {
	ID       uint64   `json:"id"`
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	Verified bool     `json:"verified"`
}

// ToSearchHit converts JSONGame to a model.SearchHit.
func (g *JSONGame) ToSearchHit() model.SearchHit {
	return model.SearchHit{
		ID:       g.ID,
		Name:     g.Name,
		Types:    g.Types,
		Verified: g.Verified,
	}
}
