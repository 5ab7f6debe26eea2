package model

import "strings"

// SteamService is the Lutris service name of Steam-sourced games, the only
// platform SteamGridDB can look up by identifier.
const SteamService = "steam"

// Game represents an installed Lutris game.
//
// Optional columns of the Lutris games table (runner, platform, service,
// service_id) are empty strings when the row holds NULL.
type Game struct {
	// ID is the Lutris database row id.
	ID int64

	// Name is the display name shown in Lutris.
	Name string

	// Slug is the Lutris slug. Every art file name is derived from it.
	Slug string

	Runner   string
	Platform string

	// Service is the store the game was imported from ("steam", "gog", ...).
	Service string

	// ServiceID is the store specific identifier, e.g. a Steam app id.
	ServiceID string

	HasCustomBanner   bool
	HasCustomCoverart bool
}

// IsSteam reports whether the game came from Steam and carries an app id.
func (g Game) IsSteam() bool {
	return g.Service == SteamService && g.ServiceID != ""
}

// SearchTerm returns the slug converted to a human readable search string.
func (g Game) SearchTerm() string {
	return strings.ReplaceAll(g.Slug, "-", " ")
}

// SearchHit is a game returned by the SteamGridDB search endpoints.
type SearchHit struct {
	ID       uint64
	Name     string
	Types    []string
	Verified bool
}

// Candidate is one image offered by SteamGridDB for a game and category.
//
// The schema is identical across grids, heroes, logos and icons.
type Candidate struct {
	ID     uint64
	Score  int
	Style  string
	Width  int
	Height int
	NSFW   bool
	Humor  bool
	Mime   string

	// URL is the full resolution image.
	URL string

	// Thumb is the thumbnail image.
	Thumb string
}
