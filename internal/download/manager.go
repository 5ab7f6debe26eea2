package download

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/handiism/lutris-art-fetcher/internal/io"
	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// Stats summarizes the terminal statuses of one run.
type Stats struct {
	Downloaded int
	Skipped    int
	Failed     int
	Bytes      int64
}

// PlannedAsset is one (game, category) pair and where it would be written.
type PlannedAsset struct {
	GameIndex int
	Slug      string
	Name      string
	Category  model.AssetCategory
	Path      string
	Exists    bool
}

// Manager runs the art download pipeline for a list of games.
type Manager struct {
	remote   Remote
	resolver *Resolver
	layout   Layout
	opts     Options
	images   *ioutils.ImageService
	log      logrus.FieldLogger

	mu   sync.Mutex
	last Stats
}

// runCounter tallies the terminal statuses of a single Run.
type runCounter struct {
	downloaded int32
	skipped    int32
	failed     int32
	bytes      int64
}

// NewManager creates a Manager. It fails when opts selects no category.
func NewManager(remote Remote, layout Layout, opts Options, log logrus.FieldLogger) (*Manager, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Manager{
		remote:   remote,
		resolver: NewResolver(remote, log),
		layout:   layout,
		opts:     opts,
		images:   ioutils.NewImageService(),
		log:      log,
	}, nil
}

// Options returns the normalized options the Manager runs with.
func (m *Manager) Options() Options {
	return m.opts
}

// Run processes every game and blocks until each (game, category) pair has
// reached a terminal status.
//
// Up to Options.Concurrency games run at once. Categories of one game run in
// order. emit is never called concurrently. For a given pair it sees
// Searching, then optionally Downloading, then exactly one terminal status.
// Cancelling ctx fails the remaining pairs with "cancelled".
// The returned Stats cover this call only, so overlapping runs on one
// Manager do not mix their counts.
func (m *Manager) Run(ctx context.Context, games []model.Game, emit func(model.ProgressEvent)) Stats {
	counter := &runCounter{}

	runID := uuid.NewString()
	log := m.log.WithField("run", runID)
	log.WithFields(logrus.Fields{
		"games":       len(games),
		"categories":  len(m.opts.Categories),
		"concurrency": m.opts.Concurrency,
	}).Info("starting download run")

	var mu sync.Mutex
	send := func(ev model.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		counter.record(ev.Status)
		if emit != nil {
			emit(ev)
		}
	}

	var g errgroup.Group
	g.SetLimit(m.opts.Concurrency)

	for i := range games {
		g.Go(func() error {
			m.processGame(ctx, i, games[i], counter, send, log)
			return nil
		})
	}
	_ = g.Wait()

	stats := counter.stats()
	m.mu.Lock()
	m.last = stats
	m.mu.Unlock()

	log.WithFields(logrus.Fields{
		"downloaded": stats.Downloaded,
		"skipped":    stats.Skipped,
		"failed":     stats.Failed,
		"bytes":      stats.Bytes,
	}).Info("download run finished")
	return stats
}

// Start runs the pipeline in the background and returns its event stream.
// The channel is closed once every pair is terminal. It is buffered for the
// whole run, so a slow reader never stalls the workers.
func (m *Manager) Start(ctx context.Context, games []model.Game) <-chan model.ProgressEvent {
	events := make(chan model.ProgressEvent, 3*len(games)*len(m.opts.Categories))

	go func() {
		defer close(events)
		m.Run(ctx, games, func(ev model.ProgressEvent) {
			events <- ev
		})
	}()

	return events
}

// Stats returns the counts of the most recently finished run. The channel
// returned by Start is closed only after its run is recorded here.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Plan lists every pair Run would process, without touching the network.
func (m *Manager) Plan(games []model.Game) []PlannedAsset {
	plan := make([]PlannedAsset, 0, len(games)*len(m.opts.Categories))
	for i, game := range games {
		for _, cat := range m.opts.Categories {
			path := m.layout.Path(cat, game.Slug)
			plan = append(plan, PlannedAsset{
				GameIndex: i,
				Slug:      game.Slug,
				Name:      game.Name,
				Category:  cat,
				Path:      path,
				Exists:    ioutils.Exists(path),
			})
		}
	}
	return plan
}

func (m *Manager) processGame(ctx context.Context, index int, game model.Game, counter *runCounter, emit func(model.ProgressEvent), log logrus.FieldLogger) {
	log = log.WithField("game", game.Slug)
	event := func(cat model.AssetCategory, s model.Status) {
		emit(model.ProgressEvent{GameIndex: index, Slug: game.Slug, Category: cat, Status: s})
	}

	if ctx.Err() != nil {
		for _, cat := range m.opts.Categories {
			event(cat, model.Failed("cancelled"))
		}
		return
	}

	for _, cat := range m.opts.Categories {
		event(cat, model.Searching)
	}

	remoteID, err := m.resolver.Resolve(ctx, game)
	if err != nil {
		msg := failureMessage(err)
		log.WithError(err).Warn("could not resolve game")
		for _, cat := range m.opts.Categories {
			event(cat, model.Failed(msg))
		}
		return
	}

	for _, cat := range m.opts.Categories {
		status := m.fetchAsset(ctx, game, remoteID, cat, counter, func() { event(cat, model.Downloading) })
		clog := log.WithField("category", cat.String())
		switch status.Kind {
		case model.StatusFailed:
			clog.WithField("reason", status.Message).Warn("asset failed")
		case model.StatusDone:
			clog.WithField("path", status.Path).Debug("asset saved")
		}
		event(cat, status)
	}
}

// fetchAsset returns the terminal status of one pair. downloading is called
// once the pair leaves the existence check.
func (m *Manager) fetchAsset(ctx context.Context, game model.Game, remoteID uint64, cat model.AssetCategory, counter *runCounter, downloading func()) model.Status {
	path := m.layout.Path(cat, game.Slug)
	if !m.opts.Force && ioutils.Exists(path) {
		return model.Skipped("already exists")
	}
	if ctx.Err() != nil {
		return model.Failed("cancelled")
	}

	downloading()

	n, err := m.download(ctx, game, remoteID, cat, path)
	if err != nil {
		return model.Failed(failureMessage(err))
	}
	atomic.AddInt64(&counter.bytes, int64(n))
	return model.Done(path)
}

func (m *Manager) download(ctx context.Context, game model.Game, remoteID uint64, cat model.AssetCategory, path string) (int, error) {
	candidates, err := m.candidates(ctx, game, remoteID, cat)
	if err != nil {
		return 0, errors.Wrap(err, "fetch error")
	}

	chosen, ok := SelectCandidate(candidates, m.opts.ExcludeNSFW, m.opts.ExcludeHumor)
	if !ok {
		return 0, ErrNoArt
	}

	data, err := m.remote.DownloadImage(ctx, chosen.URL)
	if err != nil {
		return 0, errors.Wrap(err, "download error")
	}
	if len(data) == 0 {
		return 0, ErrEmptyPayload
	}

	if m.opts.ConvertImages {
		data, err = m.convert(ctx, cat, data)
		if err != nil {
			return 0, errors.Wrap(err, "convert error")
		}
	}

	if err := ioutils.WriteFileAtomic(ctx, path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// candidates lists art for a game. Steam games are asked for by app id
// first, since that hits the exact store entry.
func (m *Manager) candidates(ctx context.Context, game model.Game, remoteID uint64, cat model.AssetCategory) ([]model.Candidate, error) {
	dims := ""
	if cat == model.Grid {
		dims = m.opts.GridDimension
	}

	if game.IsSteam() {
		list, err := m.remote.AssetsByPlatform(ctx, cat, model.SteamService, game.ServiceID, dims)
		if err != nil {
			return nil, err
		}
		if len(list) > 0 {
			return list, nil
		}
	}
	return m.remote.Assets(ctx, cat, remoteID, dims)
}

func (m *Manager) convert(ctx context.Context, cat model.AssetCategory, data []byte) ([]byte, error) {
	if cat == model.Icon {
		return m.images.FitPNG(ctx, data, ioutils.IconSize)
	}
	return m.images.ConvertToJPEG(ctx, data)
}

func (c *runCounter) record(s model.Status) {
	switch s.Kind {
	case model.StatusDone:
		atomic.AddInt32(&c.downloaded, 1)
	case model.StatusSkipped:
		atomic.AddInt32(&c.skipped, 1)
	case model.StatusFailed:
		atomic.AddInt32(&c.failed, 1)
	}
}

func (c *runCounter) stats() Stats {
	return Stats{
		Downloaded: int(atomic.LoadInt32(&c.downloaded)),
		Skipped:    int(atomic.LoadInt32(&c.skipped)),
		Failed:     int(atomic.LoadInt32(&c.failed)),
		Bytes:      atomic.LoadInt64(&c.bytes),
	}
}
