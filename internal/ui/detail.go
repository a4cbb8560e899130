package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beqramo/case/internal/mealdb"
)

// openDetail switches to the detail view and fetches the full record.
func (m *Model) openDetail(meal mealdb.Meal) tea.Cmd {
	if m.view != ViewDetail {
		m.returnTo = m.view
	}
	m.view = ViewDetail
	m.detailMeal = meal
	m.detail = nil
	m.detailErr = nil
	m.detailLoading = true
	m.updateDetailViewport()
	return m.detailCmd(meal.ID)
}

func (m Model) detailCmd(id string) tea.Cmd {
	if m.loader == nil {
		return nil
	}
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		detail, err := loader.Detail(ctx, id)
		return detailMsg{id: id, detail: detail, err: err}
	}
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFavorite):
		return m, m.toggleFavorite(m.detailSummary())
	case key.Matches(msg, m.keys.Refresh):
		m.detailLoading = true
		m.detailErr = nil
		m.updateDetailViewport()
		return m, m.detailCmd(m.detailMeal.ID)
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// detailSummary is the summary saved when the meal is favorited from the
// detail view. The fetched record wins over the listing row once loaded.
func (m Model) detailSummary() mealdb.Meal {
	if m.detail != nil {
		return m.detail.Summary()
	}
	return m.detailMeal
}

func (m Model) detailHeight() int {
	return m.contentHeight()
}

func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

func (m Model) renderDetail() string {
	return m.detailViewport.View()
}

// detailContent builds the scrollable recipe text.
func (m Model) detailContent() string {
	styles := m.theme.Styles()
	width := m.width - 2
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	title := styles.AccentText.Bold(true).Render(m.detailMeal.Name)
	if m.favorites != nil && m.favorites.IsFavorite(m.detailMeal.ID) {
		title += "  " + styles.FavoriteMark.Render("♥ Favorite")
	}
	b.WriteString(title)
	b.WriteString("\n")

	switch {
	case m.detailLoading:
		b.WriteString(styles.MutedText.Render("Loading recipe..."))
		return b.String()
	case errors.Is(m.detailErr, mealdb.ErrNotFound):
		b.WriteString(styles.WarningText.Render("Recipe not found."))
		return b.String()
	case m.detailErr != nil:
		b.WriteString(styles.DangerText.Render("Could not load recipe: " + classifyError(m.detailErr)))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("Press r to retry."))
		return b.String()
	case m.detail == nil:
		return b.String()
	}

	d := m.detail
	if meta := strings.Join(nonEmpty(d.Category, d.Area), " · "); meta != "" {
		b.WriteString(styles.MutedText.Render(meta))
		b.WriteString("\n")
	}
	if tags := d.TagList(); len(tags) > 0 {
		b.WriteString(styles.FaintText.Render("Tags: " + strings.Join(tags, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.WarningText.Bold(true).Render("Ingredients"))
	b.WriteString("\n")
	ingredients := d.Ingredients()
	if len(ingredients) == 0 {
		b.WriteString(styles.FaintText.Render("  none listed"))
		b.WriteString("\n")
	}
	for _, ing := range ingredients {
		line := "  • " + ing.Name
		if measure := strings.TrimSpace(ing.Measure); measure != "" {
			line = fmt.Sprintf("  • %s %s", measure, ing.Name)
		}
		b.WriteString(styles.Text.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.WarningText.Bold(true).Render("Instructions"))
	b.WriteString("\n")
	instructions := strings.TrimSpace(d.Instructions)
	if instructions == "" {
		instructions = "No instructions provided."
	}
	b.WriteString(styles.Text.Width(width).Render(instructions))
	b.WriteString("\n")

	if d.Youtube != "" || d.Source != "" {
		b.WriteString("\n")
	}
	if d.Youtube != "" {
		b.WriteString(styles.FaintText.Render("Video:  " + d.Youtube))
		b.WriteString("\n")
	}
	if d.Source != "" {
		b.WriteString(styles.FaintText.Render("Source: " + d.Source))
		b.WriteString("\n")
	}
	return b.String()
}
