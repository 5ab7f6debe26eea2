package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/handiism/lutris-art-fetcher/internal/download"
)

// AppName names the config and state directories.
const AppName = "lutris-art-fetcher"

// ConfigDir returns $XDG_CONFIG_HOME/lutris-art-fetcher.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot determine config directory")
	}
	return filepath.Join(base, AppName), nil
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns $XDG_DATA_HOME, defaulting to ~/.local/share.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// StateDir returns $XDG_STATE_HOME/lutris-art-fetcher, defaulting to
// ~/.local/state/lutris-art-fetcher. Log files go here.
func StateDir() (string, error) {
	base, err := xdgDir("XDG_STATE_HOME", ".local", "state")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// LutrisDataDir returns the Lutris data directory: $XDG_DATA_HOME/lutris.
func LutrisDataDir() (string, error) {
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "lutris"), nil
}

// LutrisDBPath returns the path of the Lutris SQLite database.
func LutrisDBPath() (string, error) {
	dir, err := LutrisDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pga.db"), nil
}

// LutrisIconDir returns the icon theme directory Lutris reads game icons
// from. It lives outside the Lutris data directory.
func LutrisIconDir() (string, error) {
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "icons", "hicolor", "128x128", "apps"), nil
}

func xdgDir(env string, fallback ...string) (string, error) {
	if v := os.Getenv(env); v != "" && filepath.IsAbs(v) {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrapf(err, "cannot determine %s", env)
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// DefaultLayout returns where Lutris looks for art on this machine.
func DefaultLayout() (download.Layout, error) {
	data, err := LutrisDataDir()
	if err != nil {
		return download.Layout{}, err
	}
	icons, err := LutrisIconDir()
	if err != nil {
		return download.Layout{}, err
	}
	return download.Layout{DataDir: data, IconDir: icons}, nil
}
