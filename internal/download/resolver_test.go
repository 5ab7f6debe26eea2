package download

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/lutris-art-fetcher/internal/model"
)

func TestResolver_Resolve(t *testing.T) {
	steam := model.Game{Slug: "half-life-2", Name: "Half-Life 2", Service: model.SteamService, ServiceID: "220"}

	tests := []struct {
		name         string
		game         model.Game
		setup        func(*fakeRemote)
		want         uint64
		wantErr      error
		wantSearches []string
	}{
		{
			name:  "steam app id",
			game:  steam,
			setup: func(f *fakeRemote) { f.platformHits["220"] = &model.SearchHit{ID: 11} },
			want:  11,
		},
		{
			name:         "steam falls back to name",
			game:         steam,
			setup:        func(f *fakeRemote) { f.searchHits["Half-Life 2"] = []model.SearchHit{{ID: 12}, {ID: 13}} },
			want:         12,
			wantSearches: []string{"Half-Life 2"},
		},
		{
			name:         "steam falls back to slug",
			game:         steam,
			setup:        func(f *fakeRemote) { f.searchHits["half life 2"] = []model.SearchHit{{ID: 14}} },
			want:         14,
			wantSearches: []string{"Half-Life 2", "half life 2"},
		},
		{
			name:         "non steam searches slug only",
			game:         model.Game{Slug: "hollow-knight", Name: "Hollow Knight"},
			setup:        func(f *fakeRemote) { f.searchHits["hollow knight"] = []model.SearchHit{{ID: 15}} },
			want:         15,
			wantSearches: []string{"hollow knight"},
		},
		{
			name:         "not found",
			game:         model.Game{Slug: "nothing"},
			setup:        func(*fakeRemote) {},
			wantErr:      ErrGameNotFound,
			wantSearches: []string{"nothing"},
		},
		{
			name:    "empty slug",
			game:    model.Game{},
			setup:   func(*fakeRemote) {},
			wantErr: ErrGameNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeRemote()
			tt.setup(remote)
			log, _ := test.NewNullLogger()

			id, err := NewResolver(remote, log).Resolve(context.Background(), tt.game)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, id)
			}
			assert.Equal(t, tt.wantSearches, remote.searches)
		})
	}
}

func TestResolver_SearchErrorIsWrapped(t *testing.T) {
	remote := newFakeRemote()
	remote.searchErr = errors.New("connection refused")
	log, _ := test.NewNullLogger()

	_, err := NewResolver(remote, log).Resolve(context.Background(), model.Game{Slug: "x"})
	require.Error(t, err)
	assert.Equal(t, "search error: connection refused", err.Error())
}
