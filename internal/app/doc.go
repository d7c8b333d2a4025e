// Package app wires configuration, logging, the catalog source, polling and
// the UI together. It is the composition root of the takedown TUI.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> ResolveConfig()     config file, env, flag overrides
//	       ├─────> logging.New()       JSON log file (never the terminal)
//	       ├─────> prefs.Load()        theme
//	       ├─────> BuildSource()       fixture | file | remote
//	       ├─────> StartPoller()       background refresh
//	       ├─────> watchCatalog()      file sources only
//	       ├─────> refresh()           populate the store before the UI starts
//	       └─────> ui.Run()            blocks until the user quits
//
// # Polling
//
// The poller fetches the whole catalog from the source every poll_seconds and
// stores it in a state.Store. A failed fetch keeps the previous catalog and
// the next attempt is delayed by calculateBackoff: the interval doubles per
// consecutive failure up to 30 seconds. Trigger forces an immediate refresh
// and is used after the catalog file is reloaded.
//
// # Errors
//
// Fatal (returned from Run): invalid config, unusable log file, a catalog
// file that is missing or fails validation at startup, an unparsable remote
// URL.
//
// Recoverable (logged, shown in the header): refresh failures, reload
// failures after the catalog file is edited, watcher setup failures.
//
// # Shutdown
//
// Run cancels its context on return and waits for the poller and watcher
// goroutines to exit.
package app
