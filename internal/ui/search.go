package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// handleSearchKey processes keyboard input while the search box has focus.
// Typing schedules a debounced search; enter sends it at once and esc
// clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.searchFocused = false
		m.search.Blur()
		m.searchSeq++
		if m.search.Value() == "" && !m.snapshot.Searching() {
			return m, nil
		}
		m.search.SetValue("")
		return m, m.runSearch("")

	case "enter":
		m.searchFocused = false
		m.search.Blur()
		m.searchSeq++
		return m, m.runSearch(m.search.Value())
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.searchSeq++
		return m, tea.Batch(cmd, debounceSearchCmd(m.searchSeq, after))
	}
	return m, cmd
}

// runSearch sends query to the loader. A blank query returns the listing to
// the selected category.
func (m *Model) runSearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" && !m.snapshot.Searching() {
		return nil
	}
	m.snapshot.Query = query
	m.snapshot.Loading = true
	m.selected = 0

	loader := m.loader
	return m.loadCmd(func(ctx context.Context) error {
		return loader.Search(ctx, query)
	})
}

func debounceSearchCmd(seq int, query string) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: query}
	})
}

// renderSearchLine renders the search box, or the active query when the box
// is not focused.
func (m Model) renderSearchLine() string {
	styles := m.theme.Styles()
	if m.searchFocused {
		return m.search.View()
	}
	return styles.AccentText.Render("/ "+m.snapshot.Query) +
		styles.FaintText.Render("  (esc to clear)")
}
