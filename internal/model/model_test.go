package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    AssetCategory
		wantErr bool
	}{
		{"grid", Grid, false},
		{"Grids", Grid, false},
		{"hero", Hero, false},
		{"HEROES", Hero, false},
		{"logos", Logo, false},
		{" icon ", Icon, false},
		{"banner", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategories_DedupesInOrder(t *testing.T) {
	got, err := ParseCategories([]string{"logos", "grid", "", "grids", "icon"})
	require.NoError(t, err)
	assert.Equal(t, []AssetCategory{Logo, Grid, Icon}, got)

	_, err = ParseCategories([]string{"grid", "nope"})
	assert.Error(t, err)
}

func TestAssetCategory_Paths(t *testing.T) {
	tests := []struct {
		cat     AssetCategory
		api     string
		subdir  string
		display string
	}{
		{Grid, "grids", "coverart", "Grid"},
		{Hero, "heroes", "heroes", "Hero"},
		{Logo, "logos", "logos", "Logo"},
		{Icon, "icons", "", "Icon"},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			assert.Equal(t, tt.api, tt.cat.APIPath())
			assert.Equal(t, tt.subdir, tt.cat.Subdir())
			assert.Equal(t, tt.display, tt.cat.String())
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, Pending.IsTerminal())
	assert.False(t, Searching.IsTerminal())
	assert.False(t, Downloading.IsTerminal())
	assert.True(t, Done("/tmp/x.jpg").IsTerminal())
	assert.True(t, Skipped("already exists").IsTerminal())
	assert.True(t, Failed("no art found").IsTerminal())
}

func TestGame_SearchTermAndSteam(t *testing.T) {
	g := Game{Name: "Hollow Knight", Slug: "hollow-knight", Service: "steam", ServiceID: "367520"}
	assert.Equal(t, "hollow knight", g.SearchTerm())
	assert.True(t, g.IsSteam())

	g.ServiceID = ""
	assert.False(t, g.IsSteam())

	g = Game{Slug: "celeste", Service: "gog", ServiceID: "1234"}
	assert.False(t, g.IsSteam())
}

func TestGameEntry_OverallIcon(t *testing.T) {
	cats := []AssetCategory{Grid, Icon}
	entries := NewGameEntries([]Game{{Slug: "a"}})
	e := &entries[0]

	assert.Equal(t, "·", e.OverallIcon(cats))

	e.SetStatus(Grid, Done("/x"))
	assert.Equal(t, "·", e.OverallIcon(cats))

	e.SetStatus(Icon, Downloading)
	assert.Equal(t, "↓", e.OverallIcon(cats))

	e.SetStatus(Icon, Skipped("already exists"))
	assert.Equal(t, "✓", e.OverallIcon(cats))

	e.SetStatus(Grid, Failed("no art found"))
	assert.Equal(t, "✗", e.OverallIcon(cats))
}
