package model

import (
	"fmt"
	"strings"
)

// AssetCategory is a kind of visual asset Lutris can display.
type AssetCategory int

const (
	Grid AssetCategory = iota
	Hero
	Logo
	Icon
)

// AllCategories returns every supported category in canonical order.
func AllCategories() []AssetCategory {
	return []AssetCategory{Grid, Hero, Logo, Icon}
}

// APIPath returns the SteamGridDB API path segment for the category.
func (c AssetCategory) APIPath() string {
	switch c {
	case Grid:
		return "grids"
	case Hero:
		return "heroes"
	case Logo:
		return "logos"
	case Icon:
		return "icons"
	}
	return ""
}

// Subdir returns the directory under the Lutris data dir holding this
// category. Icons live under the icon theme instead and return "".
func (c AssetCategory) Subdir() string {
	switch c {
	case Grid:
		return "coverart"
	case Hero:
		return "heroes"
	case Logo:
		return "logos"
	}
	return ""
}

// String returns the display name.
func (c AssetCategory) String() string {
	switch c {
	case Grid:
		return "Grid"
	case Hero:
		return "Hero"
	case Logo:
		return "Logo"
	case Icon:
		return "Icon"
	}
	return fmt.Sprintf("AssetCategory(%d)", int(c))
}

// ParseCategory parses a category name, case-insensitive, singular or plural.
func ParseCategory(s string) (AssetCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grid", "grids":
		return Grid, nil
	case "hero", "heroes":
		return Hero, nil
	case "logo", "logos":
		return Logo, nil
	case "icon", "icons":
		return Icon, nil
	}
	return 0, fmt.Errorf("unknown asset type: %s", s)
}

// ParseCategories parses a list of names, dropping duplicates and keeping
// first-seen order. Blank entries are ignored.
func ParseCategories(names []string) ([]AssetCategory, error) {
	var (
		out  []AssetCategory
		seen = make(map[AssetCategory]bool)
	)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}
