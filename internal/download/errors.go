package download

import (
	"context"

	"github.com/pkg/errors"

	ioutils "github.com/handiism/lutris-art-fetcher/internal/io"
	"github.com/handiism/lutris-art-fetcher/internal/steamgriddb"
)

var (
	// ErrNoCategories is returned by NewManager when no category is selected.
	ErrNoCategories = errors.New("no asset types selected")

	// ErrUnknownCategory is returned by NewManager for an out of range category.
	ErrUnknownCategory = errors.New("unknown asset type")

	// ErrGameNotFound means no search matched the game.
	ErrGameNotFound = errors.New("game not found on SteamGridDB")

	// ErrNoArt means candidates were missing or all filtered out.
	ErrNoArt = errors.New("no art found")

	// ErrEmptyPayload means the image download returned zero bytes.
	ErrEmptyPayload = errors.New("downloaded 0 bytes")
)

// failureMessage turns a pipeline error into the short reason carried by a
// Failed status.
func failureMessage(err error) string {
	var se *ioutils.StorageError

	switch {
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, steamgriddb.ErrUnauthorized):
		return "invalid API key"
	case errors.Is(err, ErrGameNotFound):
		return ErrGameNotFound.Error()
	case errors.Is(err, ErrNoArt):
		return ErrNoArt.Error()
	case errors.Is(err, ErrEmptyPayload):
		return ErrEmptyPayload.Error()
	case errors.As(err, &se):
		return se.Error()
	}
	return err.Error()
}
