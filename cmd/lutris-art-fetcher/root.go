package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/handiism/lutris-art-fetcher/internal/config"
	"github.com/handiism/lutris-art-fetcher/internal/download"
	httpclient "github.com/handiism/lutris-art-fetcher/internal/http"
	"github.com/handiism/lutris-art-fetcher/internal/logging"
	"github.com/handiism/lutris-art-fetcher/internal/lutris"
	"github.com/handiism/lutris-art-fetcher/internal/model"
	"github.com/handiism/lutris-art-fetcher/internal/steamgriddb"
	"github.com/handiism/lutris-art-fetcher/internal/tui"
)

const rootLong = `Download cover art for Lutris games from SteamGridDB.

Installed games are read from the Lutris database. For every game the grid,
hero, logo and icon art is looked up on SteamGridDB and written where Lutris
expects it. Existing files are kept unless --force is given.

The API key is read from the config file or the STEAMGRIDDB_API_KEY
environment variable. In interactive mode it can be entered on first start.
`

type rootOptions struct {
	noTUI       bool
	force       bool
	dryRun      bool
	verbose     bool
	assets      []string
	concurrency int
	configPath  string
	dbPath      string
}

func newRootCmd(out io.Writer) *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "lutris-art-fetcher",
		Short:        "Download cover art for Lutris games from SteamGridDB",
		Long:         rootLong,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, out)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&o.noTUI, "no-tui", false, "run without the TUI and print progress to stdout")
	f.BoolVar(&o.force, "force", false, "re-download art that already exists")
	f.BoolVar(&o.dryRun, "dry-run", false, "show what would be downloaded without downloading")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	f.StringSliceVar(&o.assets, "assets", []string{"grids", "heroes", "logos", "icons"}, "asset types to download")
	f.IntVar(&o.concurrency, "concurrency", download.DefaultConcurrency, "number of games processed in parallel")
	f.StringVar(&o.configPath, "config", "", "path to config file")
	f.StringVar(&o.dbPath, "db", "", "path to the Lutris database (default $XDG_DATA_HOME/lutris/pga.db)")

	return cmd
}

func (o *rootOptions) run(cmd *cobra.Command, out io.Writer) error {
	cats, err := model.ParseCategories(o.assets)
	if err != nil {
		return errors.Wrap(err, "invalid asset type")
	}
	if len(cats) == 0 {
		return download.ErrNoCategories
	}

	interactive := !o.noTUI && !o.dryRun
	log, closeLog, err := o.newLogger(interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	configPath := o.configPath
	if configPath == "" {
		if configPath, err = config.ConfigPath(); err != nil {
			return err
		}
	}
	settings, err := config.Load(configPath, log)
	if err != nil {
		return err
	}
	if err := settings.ApplyEnv(filepath.Dir(configPath)); err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		settings.MaxConcurrentDownloads = o.concurrency
	}
	if err := settings.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	layout, err := config.DefaultLayout()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	games, err := o.loadGames(ctx, log)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(out, "No installed games found in the Lutris database.")
		return nil
	}

	opts := settings.ToOptions(cats, o.force)

	switch {
	case o.dryRun:
		mgr, err := download.NewManager(nil, layout, opts, log)
		if err != nil {
			return err
		}
		runDryRun(out, mgr, games)
		return nil

	case o.noTUI:
		if settings.APIKey == "" {
			return errors.Errorf("no API key configured; run without --no-tui to set one interactively or set %s", config.APIKeyEnv)
		}
		remote := newCatalogClient(settings.APIKey, settings.RequestDelay())
		mgr, err := download.NewManager(remote, layout, opts, log)
		if err != nil {
			return err
		}
		return runHeadless(ctx, out, mgr, games)
	}

	return tui.Run(tui.Options{
		Settings:   settings,
		ConfigPath: configPath,
		Games:      games,
		Categories: cats,
		Force:      o.force,
		Layout:     layout,
		Validate: func(ctx context.Context, apiKey string) (bool, error) {
			return newCatalogClient(apiKey, 0).ValidateKey(ctx)
		},
		NewRemote: func(apiKey string) download.Remote {
			return newCatalogClient(apiKey, settings.RequestDelay())
		},
		Log: log,
	})
}

// newLogger logs to stderr, or to a file in the state directory while the
// TUI owns the terminal.
func (o *rootOptions) newLogger(interactive bool) (*logrus.Logger, func(), error) {
	if !interactive {
		return logging.New(os.Stderr, o.verbose), func() {}, nil
	}

	dir, err := config.StateDir()
	if err != nil {
		return nil, nil, err
	}
	log, closer, err := logging.NewFile(dir, o.verbose)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { closer.Close() }, nil
}

func (o *rootOptions) loadGames(ctx context.Context, log logrus.FieldLogger) ([]model.Game, error) {
	path := o.dbPath
	if path == "" {
		var err error
		if path, err = config.LutrisDBPath(); err != nil {
			return nil, err
		}
	}

	db, err := lutris.Open(path, log)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.InstalledGames(ctx)
}

func newCatalogClient(apiKey string, delay time.Duration) *steamgriddb.Client {
	return steamgriddb.NewClient(httpclient.NewClient(apiKey), delay)
}
