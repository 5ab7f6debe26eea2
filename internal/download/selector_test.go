package download

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	ioutils "github.com/handiism/lutris-art-fetcher/internal/io"
	"github.com/handiism/lutris-art-fetcher/internal/model"
	"github.com/handiism/lutris-art-fetcher/internal/steamgriddb"
)

func TestSelectCandidate(t *testing.T) {
	plain := model.Candidate{ID: 1}
	nsfw := model.Candidate{ID: 2, NSFW: true}
	humor := model.Candidate{ID: 3, Humor: true}
	both := model.Candidate{ID: 4, NSFW: true, Humor: true}

	tests := []struct {
		name         string
		candidates   []model.Candidate
		excludeNSFW  bool
		excludeHumor bool
		wantID       uint64
		wantOK       bool
	}{
		{"empty", nil, true, true, 0, false},
		{"first wins", []model.Candidate{nsfw, plain}, false, false, 2, true},
		{"skip nsfw", []model.Candidate{nsfw, humor, plain}, true, false, 3, true},
		{"skip humor", []model.Candidate{humor, nsfw, plain}, false, true, 2, true},
		{"skip both", []model.Candidate{both, nsfw, humor, plain}, true, true, 1, true},
		{"all filtered", []model.Candidate{both, nsfw}, true, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectCandidate(tt.candidates, tt.excludeNSFW, tt.excludeHumor)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestLayout_Path(t *testing.T) {
	l := Layout{DataDir: "/home/u/.local/share/lutris", IconDir: "/home/u/.local/share/icons/hicolor/128x128/apps"}

	assert.Equal(t, "/home/u/.local/share/lutris/coverart/celeste.jpg", l.Path(model.Grid, "celeste"))
	assert.Equal(t, "/home/u/.local/share/lutris/heroes/celeste.jpg", l.Path(model.Hero, "celeste"))
	assert.Equal(t, "/home/u/.local/share/lutris/logos/celeste.jpg", l.Path(model.Logo, "celeste"))
	assert.Equal(t, "/home/u/.local/share/icons/hicolor/128x128/apps/lutris_celeste.png", l.Path(model.Icon, "celeste"))
	assert.Equal(t, "/home/u/.local/share/lutris/coverart/_etc_passwd.jpg", l.Path(model.Grid, "../etc/passwd"))
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.Wrap(context.Canceled, "search error"), "cancelled"},
		{errors.Wrap(steamgriddb.ErrUnauthorized, "403"), "invalid API key"},
		{ErrGameNotFound, "game not found on SteamGridDB"},
		{ErrNoArt, "no art found"},
		{ErrEmptyPayload, "downloaded 0 bytes"},
		{&ioutils.StorageError{Op: "write", Path: "/x", Err: errors.New("disk full")}, "write failed: /x: disk full"},
		{errors.New("download error: timeout"), "download error: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, failureMessage(tt.err))
		})
	}
}
