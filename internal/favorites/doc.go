// Package favorites owns the user's saved meals.
//
// # Overview
//
// Manager holds one insertion-ordered list of mealdb.Meal summaries and is the
// only component that reads or writes the storage key "@meal_market_favorites".
// The UI and CLI observe the list through IsFavorite, Favorites and Len, and
// change it only through Add, Remove and Toggle.
//
// # Lifecycle
//
//	m := favorites.NewManager(store, logger)
//	if err := m.Load(ctx); err != nil {
//		// logged already; m is still usable and starts empty
//	}
//	fav, err := m.Toggle(ctx, meal)
//
// Load runs once at startup. A missing key leaves the list empty and writes
// nothing back. The stored value is adopted verbatim, duplicates included.
//
// # Persistence
//
// Every mutation builds a new full list, encodes it as a JSON array of meal
// summaries and writes it wholesale under the single key:
//
//	[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole","strMealThumb":"https://...","strCategory":"Chicken"}]
//
// The new list becomes the in-memory state only after the write succeeded.
// A failed write leaves both memory and storage at the previous list, so the
// two never drift apart.
//
// # Concurrency
//
// Mutations are serialized by one mutex held across read, persist and adopt.
// Two rapid toggles of the same meal therefore apply one after the other
// instead of both starting from the same snapshot. Reads take a separate
// RWMutex and never wait on storage I/O.
//
// # Error Handling
//
// Storage and decode failures are logged through the injected zap logger and
// returned to the caller. Callers may ignore them; the manager stays
// consistent either way.
package favorites
