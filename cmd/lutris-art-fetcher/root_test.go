package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/lutris-art-fetcher/internal/download"
	ioutils "github.com/handiism/lutris-art-fetcher/internal/io"
	"github.com/handiism/lutris-art-fetcher/internal/lutris"
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
	return make([]byte, 2048), nil
}

func testLayout(t *testing.T) download.Layout {
	dir := t.TempDir()
	return download.Layout{DataDir: filepath.Join(dir, "lutris"), IconDir: filepath.Join(dir, "icons")}
}

func TestRunHeadless(t *testing.T) {
	log, _ := test.NewNullLogger()
	mgr, err := download.NewManager(stubRemote{}, testLayout(t), download.Options{
		Categories: []model.AssetCategory{model.Grid, model.Logo},
	}, log)
	require.NoError(t, err)

	var out bytes.Buffer
	games := []model.Game{{Name: "Celeste", Slug: "celeste"}, {Name: "Nope", Slug: "nope"}}
	require.NoError(t, runHeadless(context.Background(), &out, mgr, games))

	s := out.String()
	assert.Contains(t, s, "Found 2 installed games")
	assert.Contains(t, s, "Downloading: Grid, Logo")
	assert.Contains(t, s, "✓ Celeste: Grid saved to")
	assert.Contains(t, s, "✗ Nope: Logo failed: game not found on SteamGridDB")
	assert.Contains(t, s, "Done! Downloaded: 2, Skipped: 0, Failed: 2 (4.1 kB)")
	assert.Contains(t, s, "Restart Lutris")
}

func TestRunHeadless_Interrupted(t *testing.T) {
	mgr, err := download.NewManager(stubRemote{}, testLayout(t), download.Options{
		Categories: []model.AssetCategory{model.Grid},
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err = runHeadless(ctx, &out, mgr, []model.Game{{Slug: "celeste"}})
	assert.EqualError(t, err, "interrupted")
	assert.Contains(t, out.String(), "failed: cancelled")
}

func TestRunDryRun(t *testing.T) {
	layout := testLayout(t)
	require.NoError(t, ioutils.WriteFileAtomic(context.Background(), layout.Path(model.Icon, "celeste"), []byte("x")))

	mgr, err := download.NewManager(nil, layout, download.Options{
		Categories: []model.AssetCategory{model.Grid, model.Icon},
	}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	runDryRun(&out, mgr, []model.Game{{Name: "Celeste", Slug: "celeste"}})

	s := out.String()
	assert.Contains(t, s, "DRY RUN")
	assert.Contains(t, s, "Celeste (celeste)")
	assert.Contains(t, s, "Grid: would download → "+layout.Path(model.Grid, "celeste"))
	assert.Contains(t, s, "Icon: exists")
	assert.Contains(t, s, "Summary: 1 assets to download, 1 already exist")
}

func TestRootCmd_RejectsBadAssets(t *testing.T) {
	tests := []struct {
		name    string
		assets  string
		wantErr string
	}{
		{"unknown", "posters", "invalid asset type"},
		{"empty", "", "no asset types selected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd(&out)
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs([]string{"--no-tui", "--assets=" + tt.assets})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCmd_DryRunReadsDatabase(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))

	dbPath := filepath.Join(home, "pga.db")
	db, err := sqlx.Open(lutris.DriverName, dbPath)
	require.NoError(t, err)
	db.MustExec(`CREATE TABLE games (id INTEGER PRIMARY KEY, name TEXT, slug TEXT, runner TEXT,
		platform TEXT, service TEXT, service_id TEXT, installed INTEGER, has_custom_banner INTEGER)`)
	db.MustExec(`INSERT INTO games (name, slug, installed) VALUES ('Hades', 'hades', 1)`)
	require.NoError(t, db.Close())

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--dry-run", "--db", dbPath, "--assets", "grids"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Hades (hades)")
	assert.Contains(t, out.String(), filepath.Join(home, "data", "lutris", "coverart", "hades.jpg"))
	assert.FileExists(t, filepath.Join(home, "config", "lutris-art-fetcher", "config.toml"))
}
