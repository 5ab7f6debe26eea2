package lutris

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// DriverName is the database/sql driver used to open pga.db.
const DriverName = "sqlite"

const coverartColumn = "has_custom_coverart_big"

// DB reads installed games from the Lutris database.
type DB struct {
	db  *sqlx.DB
	log logrus.FieldLogger
}

type gameRow struct {
	ID                int64          `db:"id"`
	Name              sql.NullString `db:"name"`
	Slug              sql.NullString `db:"slug"`
	Runner            sql.NullString `db:"runner"`
	Platform          sql.NullString `db:"platform"`
	Service           sql.NullString `db:"service"`
	ServiceID         sql.NullString `db:"service_id"`
	HasCustomBanner   int64          `db:"has_custom_banner"`
	HasCustomCoverart int64          `db:"has_custom_coverart"`
}

func (r gameRow) toGame() model.Game {
	return model.Game{
		ID:                r.ID,
		Name:              r.Name.String,
		Slug:              r.Slug.String,
		Runner:            r.Runner.String,
		Platform:          r.Platform.String,
		Service:           r.Service.String,
		ServiceID:         r.ServiceID.String,
		HasCustomBanner:   r.HasCustomBanner != 0,
		HasCustomCoverart: r.HasCustomCoverart != 0,
	}
}

// ValidatePath checks that path is an existing regular file.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.Errorf("Lutris database not found at %s\nIs Lutris installed?", path)
	}
	if err != nil {
		return errors.Wrapf(err, "cannot read metadata for %s", path)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("%s exists but is not a regular file", path)
	}
	return nil
}

// Open validates path and opens the database read-only.
func Open(path string, log logrus.FieldLogger) (*DB, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Lutris database at %s", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to open Lutris database at %s", path)
	}
	return NewDB(db, log), nil
}

// NewDB wraps an already opened connection.
func NewDB(db *sqlx.DB, log logrus.FieldLogger) *DB {
	return &DB{db: db, log: log}
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// InstalledGames returns every installed game sorted by name,
// case-insensitively.
//
// Older Lutris schemas lack has_custom_coverart_big; those games report
// HasCustomCoverart as false.
func (d *DB) InstalledGames(ctx context.Context) ([]model.Game, error) {
	coverart := "0"
	ok, err := d.hasColumn(ctx, "games", coverartColumn)
	if err != nil {
		d.log.WithError(err).Debug("could not inspect games table")
	}
	if ok {
		coverart = coverartColumn
	}

	query := fmt.Sprintf(`SELECT id, name, slug, runner, platform, service, service_id,
		COALESCE(has_custom_banner, 0) AS has_custom_banner,
		COALESCE(%s, 0) AS has_custom_coverart
		FROM games
		WHERE installed = 1
		ORDER BY name COLLATE NOCASE`, coverart)

	var rows []gameRow
	if err := d.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to query installed games")
	}

	games := make([]model.Game, 0, len(rows))
	for _, r := range rows {
		games = append(games, r.toGame())
	}
	d.log.WithField("count", len(games)).Debug("read installed games")
	return games, nil
}

func (d *DB) hasColumn(ctx context.Context, table, column string) (bool, error) {
	var n int
	err := d.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
