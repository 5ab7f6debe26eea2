package download

import (
	"path/filepath"

	ioutils "github.com/handiism/lutris-art-fetcher/internal/io"
	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// Layout maps a (category, slug) pair to the file Lutris reads it from.
//
//	{DataDir}/coverart/{slug}.jpg
//	{DataDir}/heroes/{slug}.jpg
//	{DataDir}/logos/{slug}.jpg
//	{IconDir}/lutris_{slug}.png
type Layout struct {
	// DataDir is the Lutris data directory, usually ~/.local/share/lutris.
	DataDir string

	// IconDir is the icon theme directory, usually
	// ~/.local/share/icons/hicolor/128x128/apps.
	IconDir string
}

// Path returns the target file for a category and game slug.
func (l Layout) Path(category model.AssetCategory, slug string) string {
	name := ioutils.SanitizeFileName(slug)
	if category == model.Icon {
		return filepath.Join(l.IconDir, "lutris_"+name+".png")
	}
	return filepath.Join(l.DataDir, category.Subdir(), name+".jpg")
}

// Exists reports whether the target file is already on disk.
func (l Layout) Exists(category model.AssetCategory, slug string) bool {
	return ioutils.Exists(l.Path(category, slug))
}
