package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/handiism/lutris-art-fetcher/internal/download"
	ioutils "github.com/handiism/lutris-art-fetcher/internal/io"
	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// APIKeyEnv overrides Settings.APIKey when set.
const APIKeyEnv = "STEAMGRIDDB_API_KEY"

// MaxConcurrency is the upper bound accepted for max_concurrent_downloads.
const MaxConcurrency = 32

var dimensionPattern = regexp.MustCompile(`^\d+x\d+(,\d+x\d+)*$`)

// Settings holds all configuration options.
type Settings struct {
	// APIKey is the SteamGridDB bearer token.
	APIKey string `toml:"api_key,omitempty"`

	// PreferredGridDimension filters grid candidates, e.g. "600x900".
	// Empty disables the filter.
	PreferredGridDimension string `toml:"preferred_grid_dimension"`

	// MaxConcurrentDownloads is how many games are processed at once.
	MaxConcurrentDownloads int `toml:"max_concurrent_downloads"`

	// NSFWFilter and HumorFilter drop candidates carrying those flags.
	NSFWFilter  bool `toml:"nsfw_filter"`
	HumorFilter bool `toml:"humor_filter"`

	// RequestDelayMS is the pause before every SteamGridDB API request.
	RequestDelayMS int64 `toml:"request_delay_ms"`

	// ConvertImages re-encodes downloads to match their file extension
	// (JPEG for grids/heroes/logos, 128x128 PNG for icons).
	ConvertImages bool `toml:"convert_images"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		PreferredGridDimension: "600x900",
		MaxConcurrentDownloads: 3,
		NSFWFilter:             true,
		HumorFilter:            true,
		RequestDelayMS:         100,
		ConvertImages:          false,
	}
}

// Load reads settings from a TOML file.
//
// A missing file yields defaults, and a default file is written on a best
// effort basis. Fields absent from the file keep their defaults. A file that
// cannot be parsed is reported as a warning and defaults are used, so a bad
// edit never prevents startup.
func Load(path string, log logrus.FieldLogger) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read config at %s", path)
		}
		settings := DefaultSettings()
		if err := settings.Save(path); err != nil {
			log.WithError(err).Warn("could not write default config")
		}
		return settings, nil
	}

	settings := DefaultSettings()
	if _, err := toml.Decode(string(data), settings); err != nil {
		log.WithError(err).WithField("path", path).Warn("config file is malformed, using defaults")
		return DefaultSettings(), nil
	}
	return settings, nil
}

// Save writes settings to a TOML file.
//
// The write holds an advisory lock on "<path>.lock" so two instances saving
// at once cannot interleave, and the file is replaced atomically with mode
// 0600 since it carries the API key.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	lock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return errors.Wrap(err, "failed to lock config file")
	}
	if locked {
		defer lock.Unlock()
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return errors.Wrap(err, "failed to serialize config")
	}

	if err := ioutils.WriteFileAtomicMode(ctx, path, buf.Bytes(), 0600); err != nil {
		return errors.Wrapf(err, "failed to write config to %s", path)
	}
	return nil
}

// ApplyEnv loads an optional .env file from dir and applies environment
// overrides. Variables already set in the process environment win over the
// .env file.
func (s *Settings) ApplyEnv(dir string) error {
	envFile := filepath.Join(dir, ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return errors.Wrapf(err, "failed to load %s", envFile)
	}
	if key := os.Getenv(APIKeyEnv); key != "" {
		s.APIKey = key
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (s *Settings) Validate() error {
	var result *multierror.Error

	if s.PreferredGridDimension != "" && !dimensionPattern.MatchString(s.PreferredGridDimension) {
		result = multierror.Append(result, errors.Errorf("preferred_grid_dimension %q is not WIDTHxHEIGHT", s.PreferredGridDimension))
	}
	if s.MaxConcurrentDownloads < 1 || s.MaxConcurrentDownloads > MaxConcurrency {
		result = multierror.Append(result, errors.Errorf("max_concurrent_downloads must be between 1 and %d, got %d", MaxConcurrency, s.MaxConcurrentDownloads))
	}
	if s.RequestDelayMS < 0 {
		result = multierror.Append(result, errors.Errorf("request_delay_ms must not be negative, got %d", s.RequestDelayMS))
	}

	return result.ErrorOrNil()
}

// RequestDelay returns RequestDelayMS as a duration.
func (s *Settings) RequestDelay() time.Duration {
	return time.Duration(s.RequestDelayMS) * time.Millisecond
}

// ToOptions converts settings to download.Options.
func (s *Settings) ToOptions(categories []model.AssetCategory, force bool) download.Options {
	return download.Options{
		GridDimension: s.PreferredGridDimension,
		Concurrency:   s.MaxConcurrentDownloads,
		ExcludeNSFW:   s.NSFWFilter,
		ExcludeHumor:  s.HumorFilter,
		Force:         force,
		ConvertImages: s.ConvertImages,
		Categories:    categories,
	}
}
