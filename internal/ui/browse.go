package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beqramo/case/internal/mealdb"
)

// handleBrowseKey processes keyboard input for the listing.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchFocused = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.NextCategory):
		return m, m.selectCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		return m, m.selectCategory(-1)
	case key.Matches(msg, m.keys.Refresh):
		m.snapshot.Loading = true
		return m, m.loadCmd(func(ctx context.Context) error {
			return m.loader.Refresh(ctx)
		})
	case key.Matches(msg, m.keys.LoadMore):
		m.loadMore()
		return m, nil
	}

	visible := m.snapshot.Visible()
	if len(visible) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(visible)-1 {
			m.selected++
		} else if m.loadMore() {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = len(visible) - 1
	case key.Matches(msg, m.keys.Open):
		return m, m.openDetail(visible[m.selected])
	case key.Matches(msg, m.keys.ToggleFavorite):
		return m, m.toggleFavorite(visible[m.selected])
	}
	return m, nil
}

// selectCategory moves the category selection by offset, wrapping around,
// and loads the new category.
func (m *Model) selectCategory(offset int) tea.Cmd {
	cats := m.snapshot.Categories
	if len(cats) == 0 {
		return nil
	}
	idx := categoryIndex(cats, m.snapshot.Category)
	var next int
	switch {
	case idx < 0 && offset < 0:
		next = len(cats) - 1
	case idx < 0:
		next = 0
	default:
		next = ((idx+offset)%len(cats) + len(cats)) % len(cats)
	}
	name := cats[next].Name

	m.search.SetValue("")
	m.searchSeq++
	m.snapshot.Category = name
	m.snapshot.Query = ""
	m.snapshot.Loading = true
	m.selected = 0

	m.prefs.LastCategory = name
	m.savePrefs()

	loader := m.loader
	return m.loadCmd(func(ctx context.Context) error {
		return loader.SelectCategory(ctx, name)
	})
}

// loadMore reveals the next page of the listing.
func (m *Model) loadMore() bool {
	if m.browse == nil || !m.browse.LoadMore() {
		return false
	}
	m.snapshot = m.browse.Snapshot()
	return true
}

// clampSelection keeps the selected row inside the visible listing.
func (m *Model) clampSelection() {
	n := len(m.snapshot.Visible())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func categoryIndex(cats []mealdb.Category, name string) int {
	for i, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// renderBrowse renders the category bar (or search line) and the meal list.
func (m Model) renderBrowse() string {
	height := m.contentHeight()
	var top string
	if m.searchFocused || m.snapshot.Searching() {
		top = m.renderSearchLine()
	} else {
		top = m.renderCategoryBar()
	}
	rows := m.renderMealRows(m.snapshot.Visible(), m.selected, height-1, m.emptyListingText())
	return lipgloss.JoinVertical(lipgloss.Left, top, rows)
}

func (m Model) emptyListingText() string {
	switch {
	case m.snapshot.Loading:
		return "Loading meals..."
	case m.snapshot.LastError != nil:
		return "Could not load meals. Press r to retry."
	case m.snapshot.Searching():
		return fmt.Sprintf("No meals match %q.", m.snapshot.Query)
	default:
		return "No meals found."
	}
}

// renderCategoryBar renders category chips, scrolled so the active one fits.
func (m Model) renderCategoryBar() string {
	styles := m.theme.Styles()
	cats := m.snapshot.Categories
	if len(cats) == 0 {
		return styles.FaintText.Render("No categories")
	}

	active := categoryIndex(cats, m.snapshot.Category)
	chips := make([]string, len(cats))
	for i, c := range cats {
		if i == active {
			chips[i] = styles.ActiveChip.Render(c.Name)
		} else {
			chips[i] = styles.Chip.Render(c.Name)
		}
	}

	first := 0
	if active > 0 {
		for first < active && lipgloss.Width(strings.Join(chips[first:active+1], " ")) > m.width {
			first++
		}
	}
	line := strings.Join(chips[first:], " ")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// renderMealRows renders a scrolling list of meals with the selected row
// highlighted and saved meals marked.
func (m Model) renderMealRows(meals []mealdb.Meal, selected, height int, empty string) string {
	styles := m.theme.Styles()
	if height < 1 {
		height = 1
	}
	if len(meals) == 0 {
		return styles.MutedText.Render(empty)
	}

	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := start + height
	if end > len(meals) {
		end = len(meals)
	}

	nameWidth := m.width - 4
	if m.width >= 60 {
		nameWidth = m.width * 3 / 5
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		meal := meals[i]
		mark := "  "
		if m.favorites != nil && m.favorites.IsFavorite(meal.ID) {
			mark = styles.FavoriteMark.Render("♥") + " "
		}
		name := padRight(truncate(meal.Name, nameWidth), nameWidth)
		meta := strings.Join(nonEmpty(meal.Category, meal.Area), " · ")
		if i == selected {
			line := styles.Selected.Render(name)
			if meta != "" && m.width >= 60 {
				line += " " + styles.Selected.Render(meta)
			}
			lines = append(lines, mark+line)
			continue
		}
		line := styles.Text.Render(name)
		if meta != "" && m.width >= 60 {
			line += " " + styles.FaintText.Render(meta)
		}
		lines = append(lines, mark+line)
	}
	return strings.Join(lines, "\n")
}
