// Package download runs the art fetching pipeline for Lutris games.
//
// # Pipeline
//
// For every game the Manager:
//
//  1. Resolves the SteamGridDB game id (Steam app id, then name, then slug)
//  2. For each selected category, in order:
//     skips it if the target file exists (unless Force is set),
//     lists candidates, picks the first one passing the NSFW and humor
//     filters, downloads it and writes it atomically
//
// # Basic Usage
//
//	mgr, err := download.NewManager(client, layout, settings.ToOptions(cats, false), logger)
//	if err != nil {
//	    return err
//	}
//
//	for ev := range mgr.Start(ctx, games) {
//	    fmt.Println(ev.Slug, ev.Category, ev.Status)
//	}
//
// # Concurrency
//
// Options.Concurrency bounds how many games are in flight. Categories of a
// single game are processed sequentially.
//
// # Progress Events
//
// Every (game, category) pair gets Searching, optionally Downloading, and
// exactly one terminal status: Done, Skipped or Failed. Failures never abort
// other pairs.
package download
