// Package lutris reads installed games from the Lutris SQLite database
// (pga.db). The database is opened read-only.
//
//	db, err := lutris.Open(path, logger)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	games, err := db.InstalledGames(ctx)
package lutris
