// Package state provides thread-safe storage of the current meal listing.
//
// # Overview
//
// The loader (internal/app) writes listings fetched from TheMealDB and the UI
// reads snapshots to render them. Store mediates between the two goroutines:
//
//	Loader:                        UI:
//	┌────────────────────┐        ┌───────────────────┐
//	│ gen := Begin(c, q) │        │                   │
//	│ MealsByCategory()  │        │                   │
//	│ Update(gen, ...)   │──────→ │ store.Snapshot()  │
//	└────────────────────┘ (mutex)│ render listing    │
//	                              └───────────────────┘
//
// # Update Semantics
//
//	gen := store.Begin("Beef", "")
//
//	// Success: replace the listing, reset to page 1
//	store.Update(gen, meals, nil)
//
//	// Failure: keep the old listing, record the error
//	store.Fail(gen, err)
//
// Every Begin starts a new generation. A result carrying an older generation
// is dropped, so a slow search finishing after a category switch cannot
// replace the newer listing.
//
// The UI always has the most recent successful listing to show, plus the
// last error and a consecutive-failure count for an offline hint.
//
// # Pagination
//
// Listings are revealed PageSize (20) meals at a time. Snapshot.Visible
// returns the revealed prefix and Store.LoadMore advances one page.
//
// # Defensive Copying
//
// Snapshot clones the meal and category slices and the error value, so the
// UI can hold on to a snapshot while the loader keeps writing.
//
// The zero Store is ready to use.
package state
