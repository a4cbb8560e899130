package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, current view and connection status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("mealmarket")}
	parts = append(parts, styles.MutedText.Render(m.viewLabel()))
	parts = append(parts, styles.FavoriteMark.Render(fmt.Sprintf("♥ %d", m.favoriteCount())))

	switch {
	case m.snapshot.Loading:
		parts = append(parts, styles.WarningText.Render("loading"))
	case m.snapshot.IsOffline():
		parts = append(parts, styles.DangerText.Render("OFFLINE"))
	case m.snapshot.LastError != nil:
		parts = append(parts, styles.DangerText.Render(classifyError(m.snapshot.LastError)))
	case !m.snapshot.LastUpdated.IsZero():
		parts = append(parts, styles.FaintText.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05")))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) viewLabel() string {
	switch m.view {
	case ViewDetail:
		return "Recipe"
	case ViewFavorites:
		return "Favorites"
	}
	if m.snapshot.Searching() {
		return "Search"
	}
	if m.snapshot.Category != "" {
		return m.snapshot.Category
	}
	return "Browse"
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.searchFocused:
		commands = []cmd{
			{"enter", "Search"},
			{"esc", "Clear"},
		}
	case m.view == ViewDetail:
		commands = []cmd{
			{"f", "Favorite"},
			{"j/k", "Scroll"},
			{"r", "Reload"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case m.view == ViewFavorites:
		commands = []cmd{
			{"enter", "Open"},
			{"f", "Remove"},
			{"j/k", "Navigate"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"tab", "Category"},
			{"/", "Search"},
			{"enter", "Open"},
			{"f", "Favorite"},
			{"v", "Favorites"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, styles.AccentText.Render(c.key)+":"+styles.MutedText.Render(c.desc))
	}
	segments = append(segments, styles.AccentText.Render("T")+":"+styles.FaintText.Render(m.theme.Name))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

// renderFooter renders the latest feedback or the listing position.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var text string
	switch {
	case m.flash != "" && m.flashErr:
		text = styles.DangerText.Render(m.flash)
	case m.flash != "":
		text = styles.SuccessText.Render(m.flash)
	case m.view == ViewBrowse:
		text = styles.FaintText.Render(m.listingPosition())
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(text)
}

func (m Model) listingPosition() string {
	total := len(m.snapshot.Meals)
	if total == 0 {
		return ""
	}
	shown := len(m.snapshot.Visible())
	pos := fmt.Sprintf("%d/%d", m.selected+1, total)
	if shown < total {
		pos += fmt.Sprintf("  showing %d, m for more", shown)
	}
	return pos
}
