// Package config provides configuration management for lutris-art-fetcher.
//
// This package handles:
//   - Loading and saving settings from a TOML file
//   - Default configuration values
//   - Environment overrides for the API key
//   - XDG paths for the config file, the Lutris database and art directories
//   - Conversion to download.Options
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// 600x900 grids, 3 games at a time, NSFW and humor filtered,
//	// 100ms between API requests
//
// # Loading from File
//
//	path, _ := config.ConfigPath()
//	settings, err := config.Load(path, logger)
//	// Uses defaults if the file doesn't exist or cannot be parsed
//
// # Saving Settings
//
//	settings.APIKey = key
//	err := settings.Save(path)
//
// # Environment
//
// STEAMGRIDDB_API_KEY, from the process environment or a .env file in the
// config directory, overrides api_key.
package config
