// Package state provides thread-safe sharing of the athlete catalog between
// the background poller and the UI.
//
// # Overview
//
// The poller (and the catalog file watcher, which triggers the poller) writes
// the latest catalog into a Store. The UI reads copies of it on every tick.
//
//	Producer (poller):                Consumer (UI):
//	┌─────────────────────┐          ┌──────────────────┐
//	│ src.FetchCatalog()  │          │                  │
//	│         ↓           │          │                  │
//	│ store.Update()      │─────────→│ store.Snapshot() │
//	│         ↓           │ (mutex)  │        ↓         │
//	│ wait interval       │          │ render panels    │
//	└─────────────────────┘          └──────────────────┘
//
// # Update Semantics
//
//	// Success: replace the catalog
//	store.Update(cat, nil)
//	→ snapshot.Catalog = clone(cat)
//	→ snapshot.LastError = nil
//	→ snapshot.Generation++
//
//	// Failure: keep the old catalog, record the error
//	store.Update(nil, err)
//	→ snapshot.Catalog = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Generation lets the UI notice that a new catalog arrived without comparing
// catalogs field by field: it rebuilds panels and search results only when
// Generation moved.
//
// # Copying
//
// Update and Snapshot both deep-copy the catalog (merged records, internal
// record nicknames, event lists, participants). Errors are re-wrapped so the
// snapshot never shares the stored error value, while errors.Is still works.
//
// # Offline Detection
//
// IsOffline reports two or more consecutive failures. The header uses it to
// distinguish a transient error from an unreachable source.
//
// The zero Store is ready to use.
package state
