// Package app is the composition root for mealmarket.
//
// Bootstrap reads the TOML config, opens the zap logger and the configured
// favorites store, and builds the TheMealDB client and the favorites manager.
// The TUI and every CLI subcommand share the resulting Env.
//
// # Startup
//
//	Run()
//	  ├── Bootstrap()        config, logger, store, client, favorites
//	  ├── Env.Warm()         favorites load and first listing, concurrently
//	  └── ui.Run()           blocks until quit or ctx cancel
//
// Warm never aborts startup. A failed favorites load leaves the list empty and
// a failed listing leaves the browse snapshot with its error set; both are
// logged and the UI shows them.
//
// # Loader
//
// Loader fetches listings into a state.Store. Category selection clears the
// search query; an empty search reloads the selected category; Refresh repeats
// whichever of the two produced the current listing. On failure the previous
// meals stay visible and the error is recorded in the snapshot.
package app
