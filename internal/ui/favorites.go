package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/beqramo/case/internal/mealdb"
)

var errFavoritesUnreadable = errors.New("saved favorites could not be read")

// toggleFavorite flips the saved state of meal in the background.
func (m Model) toggleFavorite(meal mealdb.Meal) tea.Cmd {
	if m.favorites == nil || meal.ID == "" {
		return nil
	}
	ctx, favs := m.ctx, m.favorites
	if m.favLoadErr != nil {
		return func() tea.Msg {
			return favoriteMsg{meal: meal, added: favs.IsFavorite(meal.ID), err: errFavoritesUnreadable}
		}
	}
	return func() tea.Msg {
		added, err := favs.Toggle(ctx, meal)
		return favoriteMsg{meal: meal, added: added, err: err}
	}
}

func (m *Model) handleFavoriteResult(msg favoriteMsg) {
	switch {
	case errors.Is(msg.err, errFavoritesUnreadable):
		m.setFlash("Favorites are read-only: the saved list could not be read", true)
	case msg.err != nil:
		m.logger.Debug("favorite toggle not applied", zap.String("id", msg.meal.ID), zap.Error(msg.err))
		m.setFlash(fmt.Sprintf("Could not update favorites for %s", msg.meal.Name), true)
	case msg.added:
		m.setFlash(fmt.Sprintf("Added %s to favorites", msg.meal.Name), false)
	default:
		m.setFlash(fmt.Sprintf("Removed %s from favorites", msg.meal.Name), false)
	}

	if n := m.favoriteCount(); m.favSelected >= n {
		m.favSelected = n - 1
	}
	if m.favSelected < 0 {
		m.favSelected = 0
	}
	m.updateDetailViewport()
}

func (m Model) favoriteList() []mealdb.Meal {
	if m.favorites == nil {
		return nil
	}
	return m.favorites.Favorites()
}

func (m Model) favoriteCount() int {
	if m.favorites == nil {
		return 0
	}
	return m.favorites.Len()
}

// handleFavoritesKey processes keyboard input for the favorites view.
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	favs := m.favoriteList()
	if len(favs) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.favSelected > 0 {
			m.favSelected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.favSelected < len(favs)-1 {
			m.favSelected++
		}
	case key.Matches(msg, m.keys.Top):
		m.favSelected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.favSelected = len(favs) - 1
	case key.Matches(msg, m.keys.Open):
		return m, m.openDetail(favs[m.favSelected])
	case key.Matches(msg, m.keys.ToggleFavorite):
		return m, m.toggleFavorite(favs[m.favSelected])
	}
	return m, nil
}

func (m Model) renderFavorites() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render(fmt.Sprintf("Favorites (%d)", m.favoriteCount()))
	rows := m.renderMealRows(m.favoriteList(), m.favSelected, m.contentHeight()-1,
		"No favorites yet. Press f on a meal to save it.")
	return title + "\n" + rows
}
