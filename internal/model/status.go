package model

// StatusKind identifies the variant of a Status.
type StatusKind int

const (
	// StatusPending means the pair has not been touched yet.
	StatusPending StatusKind = iota
	// StatusSearching means the game is being resolved on SteamGridDB.
	StatusSearching
	// StatusDownloading means candidates are being fetched and downloaded.
	StatusDownloading
	// StatusDone means the image was saved; Status.Path holds its location.
	StatusDone
	// StatusSkipped means nothing was done; Status.Message holds the reason.
	StatusSkipped
	// StatusFailed means the pair failed; Status.Message holds the reason.
	StatusFailed
)

// Status is the state of one (game, category) download.
//
// Path is only set for StatusDone and Message only for StatusSkipped and
// StatusFailed. Use the constructors below rather than building the struct.
type Status struct {
	Kind    StatusKind
	Path    string
	Message string
}

var (
	Pending     = Status{Kind: StatusPending}
	Searching   = Status{Kind: StatusSearching}
	Downloading = Status{Kind: StatusDownloading}
)

// Done returns a terminal success status for the saved file.
func Done(path string) Status {
	return Status{Kind: StatusDone, Path: path}
}

// Skipped returns a terminal status for work that was not needed.
func Skipped(reason string) Status {
	return Status{Kind: StatusSkipped, Message: reason}
}

// Failed returns a terminal failure status carrying a displayable reason.
func Failed(msg string) Status {
	return Status{Kind: StatusFailed, Message: msg}
}

// IsTerminal reports whether the status ends the pipeline for its pair.
func (s Status) IsTerminal() bool {
	switch s.Kind {
	case StatusDone, StatusSkipped, StatusFailed:
		return true
	}
	return false
}

// IsActive reports whether work is in progress for the pair.
func (s Status) IsActive() bool {
	return s.Kind == StatusSearching || s.Kind == StatusDownloading
}

// Icon returns a one character glyph for list views.
func (s Status) Icon() string {
	switch s.Kind {
	case StatusSearching:
		return "⟳"
	case StatusDownloading:
		return "↓"
	case StatusDone:
		return "✓"
	case StatusSkipped:
		return "─"
	case StatusFailed:
		return "✗"
	}
	return "·"
}

func (s Status) String() string {
	switch s.Kind {
	case StatusPending:
		return "pending"
	case StatusSearching:
		return "searching"
	case StatusDownloading:
		return "downloading"
	case StatusDone:
		return "done: " + s.Path
	case StatusSkipped:
		return "skipped: " + s.Message
	case StatusFailed:
		return "failed: " + s.Message
	}
	return "unknown"
}

// ProgressEvent reports a status transition for one (game, category) pair.
//
// GameIndex is the position of the game in the slice handed to the run, so
// observers can keep their entries in a slice and update them in place.
type ProgressEvent struct {
	GameIndex int
	Slug      string
	Category  AssetCategory
	Status    Status
}

// GameEntry tracks the per-category status of one game during a run.
type GameEntry struct {
	Game     Game
	statuses [4]Status
}

// NewGameEntries wraps games in entries with every category pending.
func NewGameEntries(games []Game) []GameEntry {
	entries := make([]GameEntry, len(games))
	for i, g := range games {
		entries[i] = GameEntry{Game: g}
	}
	return entries
}

// Status returns the current status of a category.
func (e *GameEntry) Status(c AssetCategory) Status {
	if c < Grid || c > Icon {
		return Pending
	}
	return e.statuses[c]
}

// SetStatus replaces the status of a category.
func (e *GameEntry) SetStatus(c AssetCategory, s Status) {
	if c < Grid || c > Icon {
		return
	}
	e.statuses[c] = s
}

// OverallIcon summarises the statuses of the given categories: any active
// work wins, then any failure, then all-finished, otherwise pending.
func (e *GameEntry) OverallIcon(categories []AssetCategory) string {
	allDone := len(categories) > 0
	failed := false
	for _, c := range categories {
		st := e.Status(c)
		if st.IsActive() {
			return Downloading.Icon()
		}
		if st.Kind == StatusFailed {
			failed = true
		}
		if st.Kind != StatusDone && st.Kind != StatusSkipped {
			allDone = false
		}
	}
	switch {
	case failed:
		return "✗"
	case allDone:
		return "✓"
	}
	return "·"
}
