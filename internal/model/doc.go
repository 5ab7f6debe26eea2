// Package model defines the core data structures used throughout
// lutris-art-fetcher.
//
// # Game
//
// Game is one installed Lutris game, read once from pga.db and never
// mutated afterwards:
//
//	game := model.Game{Name: "Hades", Slug: "hades", Service: "steam", ServiceID: "1145360"}
//	game.IsSteam() // true
//
// # Asset categories
//
// AssetCategory is the closed set of art kinds that can be fetched. Each
// category knows its SteamGridDB API path and the Lutris subdirectory it is
// stored in:
//
//	model.Grid.APIPath() // "grids"
//	model.Grid.Subdir()  // "coverart"
//
// # Status and progress
//
// Status is a tagged union describing where one (game, category) pair is in
// the pipeline. Done, Skipped and Failed are terminal:
//
//	st := model.Failed("no art found")
//	st.IsTerminal() // true
//
// ProgressEvent carries a Status transition from the downloader to whoever
// observes the run (TUI, headless printer, tests).
package model
