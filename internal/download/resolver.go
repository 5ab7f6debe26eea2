package download

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// Resolver maps a Lutris game to its SteamGridDB game id.
//
// For Steam games it first asks for the app id directly, then searches the
// display name. Every game finally falls back to searching its slug with
// dashes turned into spaces. The first hit of a search is taken as is.
type Resolver struct {
	remote Remote
	log    logrus.FieldLogger
}

// NewResolver creates a Resolver.
func NewResolver(remote Remote, log logrus.FieldLogger) *Resolver {
	return &Resolver{remote: remote, log: log}
}

// Resolve returns the SteamGridDB id of game, or ErrGameNotFound.
func (r *Resolver) Resolve(ctx context.Context, game model.Game) (uint64, error) {
	log := r.log.WithField("game", game.Slug)

	if game.IsSteam() {
		hit, err := r.remote.GameByPlatform(ctx, model.SteamService, game.ServiceID)
		if err != nil {
			return 0, errors.Wrap(err, "search error")
		}
		if hit != nil {
			log.WithField("id", hit.ID).Debug("resolved by steam app id")
			return hit.ID, nil
		}

		if game.Name != "" {
			id, ok, err := r.search(ctx, game.Name)
			if err != nil {
				return 0, err
			}
			if ok {
				log.WithField("id", id).Debug("resolved by name")
				return id, nil
			}
		}
	}

	term := game.SearchTerm()
	if term == "" {
		return 0, ErrGameNotFound
	}
	id, ok, err := r.search(ctx, term)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrGameNotFound
	}
	log.WithField("id", id).Debug("resolved by slug")
	return id, nil
}

func (r *Resolver) search(ctx context.Context, term string) (uint64, bool, error) {
	hits, err := r.remote.Search(ctx, term)
	if err != nil {
		return 0, false, errors.Wrap(err, "search error")
	}
	if len(hits) == 0 {
		return 0, false, nil
	}
	return hits[0].ID, true, nil
}
