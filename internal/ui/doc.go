// Package ui provides the mealmarket terminal interface.
//
// # Architecture Overview
//
// The interface is a single Bubble Tea model (Model) rendered with lipgloss.
// It never talks to TheMealDB directly: listing loads go through a Loader,
// which writes into a shared state.Store, and favorite changes go through a
// FavoriteStore. Both are interfaces so the model can be driven from tests.
//
// # Views
//
//   - Browse: category chips across the top and the paginated meal list
//   - Recipe: the selected meal with ingredients, instructions and links
//   - Favorites: the saved meals, in the order they were added
//
// A help overlay (?) lists every binding.
//
// # Data Flow
//
//	key press ──> tea.Cmd ──> Loader.SelectCategory / Search / Refresh
//	                               │
//	                               └─> state.Store ──> snapshotMsg ──> Model
//
//	f ──> tea.Cmd ──> FavoriteStore.Toggle ──> favoriteMsg ──> footer
//
// Commands run off the update loop. A snapshot message carries a copy of the
// store, so rendering never holds the store lock.
//
// # Search
//
// Typing in the search box (/) schedules a search after SearchDebounce of
// quiet. Every keystroke bumps a sequence number and only the debounce tick
// carrying the latest number fires. Enter searches at once; esc or an empty
// box returns to the selected category.
//
// # Preferences
//
// Cycling the theme (T) and changing category both write prefs.toml, so the
// next launch opens with the same theme and category.
package ui
