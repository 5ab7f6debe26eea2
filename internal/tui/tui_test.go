package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/lutris-art-fetcher/internal/config"
	"github.com/handiism/lutris-art-fetcher/internal/download"
	"github.com/handiism/lutris-art-fetcher/internal/model"
)

type stubRemote struct{}

func (stubRemote) Search(_ context.Context, term string) ([]model.SearchHit, error) {
	if term == "celeste" {
		return []model.SearchHit{{ID: 1}}, nil
	}
	return nil, nil
}

func (stubRemote) GameByPlatform(context.Context, string, string) (*model.SearchHit, error) {
	return nil, nil
}

func (stubRemote) Assets(context.Context, model.AssetCategory, uint64, string) ([]model.Candidate, error) {
	return []model.Candidate{{URL: "u"}}, nil
}

func (stubRemote) AssetsByPlatform(context.Context, model.AssetCategory, string, string, string) ([]model.Candidate, error) {
	return nil, nil
}

func (stubRemote) DownloadImage(context.Context, string) ([]byte, error) {
	return []byte("img"), nil
}

func newTestModel(t *testing.T, apiKey string) Model {
	t.Helper()
	dir := t.TempDir()
	settings := config.DefaultSettings()
	settings.APIKey = apiKey
	log, _ := test.NewNullLogger()

	return NewModel(Options{
		Settings:   settings,
		ConfigPath: filepath.Join(dir, "config.toml"),
		Games:      []model.Game{{Name: "Celeste", Slug: "celeste"}, {Name: "Unknown", Slug: "unknown"}},
		Categories: []model.AssetCategory{model.Grid},
		Layout:     download.Layout{DataDir: filepath.Join(dir, "lutris"), IconDir: filepath.Join(dir, "icons")},
		Validate: func(_ context.Context, key string) (bool, error) {
			if key == "boom" {
				return false, errors.New("connection refused")
			}
			return key == "good", nil
		},
		NewRemote: func(string) download.Remote { return stubRemote{} },
		Log:       log,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartsOnKeyEntryWithoutKey(t *testing.T) {
	assert.Equal(t, ScreenAPIKey, newTestModel(t, "").Screen())
	assert.Equal(t, ScreenCategories, newTestModel(t, "abc").Screen())
}

func TestModel_APIKeyFlow(t *testing.T) {
	m := newTestModel(t, "")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "API key cannot be empty", m.keyErr)

	m, _ = update(t, m, keys("bad"))
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.validating)

	m, _ = update(t, m, cmd())
	assert.Equal(t, ScreenAPIKey, m.Screen())
	assert.Equal(t, "Invalid key: API key rejected by SteamGridDB", m.keyErr)
	assert.Empty(t, m.keyInput.Value())

	m, _ = update(t, m, keys("good"))
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	assert.Equal(t, ScreenCategories, m.Screen())
	assert.Equal(t, "good", m.opts.Settings.APIKey)

	saved, err := config.Load(m.opts.ConfigPath, m.opts.Log)
	require.NoError(t, err)
	assert.Equal(t, "good", saved.APIKey)
}

func TestModel_APIKeyTransportError(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, keys("boom"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	assert.Equal(t, "Invalid key: connection refused", m.keyErr)
}

func TestModel_CategoryPicker(t *testing.T) {
	m := newTestModel(t, "abc")
	assert.Equal(t, []model.AssetCategory{model.Grid}, m.selectedCategories())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Empty(t, m.selectedCategories())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ScreenCategories, m.Screen(), "cannot continue without a category")

	m, _ = update(t, m, keys("a"))
	assert.Equal(t, model.AllCategories(), m.selectedCategories())

	m, _ = update(t, m, keys("j"))
	m, _ = update(t, m, keys("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []model.AssetCategory{model.Grid, model.Hero, model.Icon}, m.selectedCategories())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ScreenGames, m.Screen())
}

func TestModel_GameListNavigation(t *testing.T) {
	m := newTestModel(t, "abc")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 1, m.cursor)
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, "abc")

	m, _ = update(t, m, keys("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keybindings")

	m, _ = update(t, m, keys("j"))
	assert.False(t, m.showHelp)
	assert.Equal(t, 0, m.catCursor, "closing help swallows the key")
}

func TestModel_DownloadRun(t *testing.T) {
	m := newTestModel(t, "abc")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, ScreenDownloading, m.Screen())
	assert.Equal(t, 2, m.total)

	for ev := range m.events {
		m, _ = update(t, m, ProgressMsg{Event: ev})
	}
	assert.Equal(t, 2, m.current)

	m, _ = update(t, m, RunDoneMsg{})
	assert.Equal(t, ScreenDone, m.Screen())
	assert.Equal(t, download.Stats{Downloaded: 1, Failed: 1, Bytes: 3}, m.stats)

	assert.Equal(t, model.StatusDone, m.entries[0].Status(model.Grid).Kind)
	assert.Equal(t, model.Failed("game not found on SteamGridDB"), m.entries[1].Status(model.Grid))

	view := m.View()
	assert.Contains(t, view, "Downloaded: 1")
	assert.Contains(t, view, "Restart Lutris")
}
