package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/handiism/lutris-art-fetcher/internal/download"
	"github.com/handiism/lutris-art-fetcher/internal/model"
)

// runHeadless prints one line per finished pair and a summary.
func runHeadless(ctx context.Context, out io.Writer, mgr *download.Manager, games []model.Game) error {
	fmt.Fprintf(out, "Found %d installed games\n", len(games))
	fmt.Fprintf(out, "Downloading: %s\n\n", categoryNames(mgr.Options().Categories))

	for ev := range mgr.Start(ctx, games) {
		name := displayName(games, ev)
		s := ev.Status
		switch s.Kind {
		case model.StatusDone:
			fmt.Fprintf(out, "  %s %s: %s saved to %s\n", s.Icon(), name, ev.Category, s.Path)
		case model.StatusSkipped:
			fmt.Fprintf(out, "  %s %s: %s skipped: %s\n", s.Icon(), name, ev.Category, s.Message)
		case model.StatusFailed:
			fmt.Fprintf(out, "  %s %s: %s failed: %s\n", s.Icon(), name, ev.Category, s.Message)
		}
	}

	stats := mgr.Stats()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Done! Downloaded: %d, Skipped: %d, Failed: %d (%s)\n",
		stats.Downloaded, stats.Skipped, stats.Failed, humanize.Bytes(uint64(stats.Bytes)))

	if ctx.Err() != nil {
		return errors.New("interrupted")
	}
	fmt.Fprintln(out, "Restart Lutris to see the changes.")
	return nil
}

// runDryRun lists every target path and whether it already exists.
func runDryRun(out io.Writer, mgr *download.Manager, games []model.Game) {
	fmt.Fprintln(out, "DRY RUN: no files will be downloaded")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Found %d installed games\n\n", len(games))

	var toDownload, existing int
	last := -1
	for _, p := range mgr.Plan(games) {
		if p.GameIndex != last {
			fmt.Fprintf(out, "  %s (%s)\n", p.Name, p.Slug)
			last = p.GameIndex
		}
		if p.Exists {
			existing++
			fmt.Fprintf(out, "    %s: exists\n", p.Category)
			continue
		}
		toDownload++
		fmt.Fprintf(out, "    %s: would download → %s\n", p.Category, p.Path)
	}

	fmt.Fprintf(out, "\nSummary: %d assets to download, %d already exist\n", toDownload, existing)
}

func displayName(games []model.Game, ev model.ProgressEvent) string {
	if ev.GameIndex >= 0 && ev.GameIndex < len(games) && games[ev.GameIndex].Name != "" {
		return games[ev.GameIndex].Name
	}
	return ev.Slug
}

func categoryNames(cats []model.AssetCategory) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
