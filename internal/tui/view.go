package tui

import (
	"fmt"
	"strings"

	"github.com/handiism/lutris-art-fetcher/internal/model"
)

const keyURL = "https://www.steamgriddb.com/profile/preferences/api"

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lutris Art Fetcher"))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.viewHelp())
		return b.String()
	}

	switch m.screen {
	case ScreenAPIKey:
		b.WriteString(m.viewAPIKey())
	case ScreenCategories:
		b.WriteString(m.viewCategories())
	case ScreenGames:
		b.WriteString(m.viewGames())
	case ScreenDownloading:
		b.WriteString(m.viewDownloading())
	case ScreenDone:
		b.WriteString(m.viewDone())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewAPIKey() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter your SteamGridDB API key to get started."))
	b.WriteString("\n\n")
	if m.validating {
		b.WriteString(m.spinner.View())
		b.WriteString(" Validating...")
	} else {
		b.WriteString(m.keyInput.View())
	}
	b.WriteString("\n\n")
	if m.keyErr != "" {
		b.WriteString(errorStyle.Render(m.keyErr))
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render("Get your key at: " + keyURL))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewCategories() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Select which asset types to download (space to toggle, a for all):"))
	b.WriteString("\n\n")

	for i, c := range model.AllCategories() {
		check := "[ ]"
		if m.selected[c] {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, c)
		if i == m.catCursor {
			b.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if len(m.selectedCategories()) == 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Select at least one asset type."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewGames() string {
	var b strings.Builder

	cats := m.selectedCategories()
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Games (%d installed)", len(m.entries))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Mode: " + joinCategories(cats)))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(warningStyle.Render("No installed games found in the Lutris database."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderGameList(cats))

	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d games already have all selected art", m.existing)))
	b.WriteString("\n")

	if m.cursor < len(m.entries) {
		g := m.entries[m.cursor].Game
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s  Runner: %s  Service: %s", g.Name, orDash(g.Runner), orDash(g.Service))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Downloading art..."))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d / %d", m.current, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderGameList(m.selectedCategories()))
	b.WriteString("\n")
	b.WriteString(m.renderLogs(8))

	return b.String()
}

func (m Model) viewDone() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"All downloads complete!\n\n"+
			"✓ Downloaded: %d\n"+
			"─ Skipped:    %d\n"+
			"✗ Failed:     %d\n\n"+
			"Time: %ds",
		m.stats.Downloaded,
		m.stats.Skipped,
		m.stats.Failed,
		int(m.elapsed.Seconds()),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs(10))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Restart Lutris to see changes."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewHelp() string {
	return boxStyle.Render(strings.Join([]string{
		"Keybindings",
		"",
		"Navigation",
		"  ↑/k        Move up",
		"  ↓/j        Move down",
		"  PgUp/PgDn  Scroll 10 items",
		"  Home/End   Jump to first/last",
		"",
		"Actions",
		"  Enter      Confirm / Start downloads",
		"  Space      Toggle selection",
		"  a          Toggle all (asset selection)",
		"",
		"General",
		"  ?          Toggle this help",
		"  q / Esc    Quit",
		"  Ctrl+C     Force quit",
	}, "\n"))
}

// renderGameList shows a window of games around the cursor.
func (m Model) renderGameList(cats []model.AssetCategory) string {
	var b strings.Builder

	rows := m.listHeight()
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.entries))

	for i := start; i < end; i++ {
		e := &m.entries[i]
		overall := e.OverallIcon(cats)

		var icons strings.Builder
		for _, c := range cats {
			ic := e.Status(c).Icon()
			icons.WriteString(iconStyle(ic).Render(ic))
		}

		line := fmt.Sprintf("%s %s  %s", iconStyle(overall).Render(overall), icons.String(), e.Game.Name)
		if i == m.cursor && m.screen == ScreenGames {
			b.WriteString(selectedStyle.Render("▸ ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if end < len(m.entries) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(m.entries)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderLogs(n int) string {
	var b strings.Builder

	logs := m.logs
	if len(logs) > n {
		logs = logs[len(logs)-n:]
	}
	for _, l := range logs {
		var prefix string
		style := infoStyle
		switch l.Level {
		case LevelOK:
			prefix, style = "[ OK ]", successStyle
		case LevelWarn:
			prefix, style = "[WARN]", warningStyle
		case LevelError:
			prefix, style = "[ ERR]", errorStyle
		default:
			prefix = "[INFO]"
		}
		b.WriteString(style.Render(prefix + " " + l.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpText() string {
	switch m.screen {
	case ScreenAPIKey:
		return "enter: validate • esc: quit"
	case ScreenCategories:
		return "↑↓: navigate • space: toggle • a: all • enter: confirm • q: quit • ?: help"
	case ScreenGames:
		return "enter: start all • ↑↓: navigate • q: quit • ?: help"
	case ScreenDownloading:
		return "q: quit • ?: help (downloading...)"
	case ScreenDone:
		return "q/enter: exit"
	}
	return ""
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 15
	}
	return max(m.height-18, 5)
}

func (m Model) countExisting(cats []model.AssetCategory) int {
	n := 0
	for i := range m.entries {
		if m.hasAllArt(m.entries[i].Game, cats) {
			n++
		}
	}
	return n
}

func (m Model) hasAllArt(g model.Game, cats []model.AssetCategory) bool {
	for _, c := range cats {
		if !m.opts.Layout.Exists(c, g.Slug) {
			return false
		}
	}
	return len(cats) > 0
}

func joinCategories(cats []model.AssetCategory) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
