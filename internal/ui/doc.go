// Package ui implements the takedown terminal interface with Bubble Tea.
//
// # Screens
//
// The search screen offers two inputs: a lookup box that resolves a flo360
// ID, profile URL or provider ID through athlete.Source, and a name search
// that filters the catalog as the operator types. Selecting a result opens
// the profile screen.
//
// The profile screen shows a tab bar for the configured layout. In the admin
// layout the Merges and Events entries are dropdowns ("Remove Existing" and
// "Add New"); the review layout has three plain tabs. Each tab renders a
// panel of focusable actions that j/k move between and enter activates.
// Most actions are placeholders; only Save raises an alert.
//
// # State
//
// Navigation, disclosure (merge rows, raw JSON) and the internal/external
// view mode live in viewstate.State and change only through its methods.
// Model keeps widget state: text inputs, the panel viewport and cursors.
// Catalog data arrives from state.Store snapshots on a polling tick.
//
// # Files
//
//   - app.go: Model, Update/View and commands
//   - search_view.go: search screen
//   - profile_view.go: tab bar, dropdowns, panel viewport
//   - panels.go: panel builders and their actions
//   - cards.go: comparison cards
//   - rawjson.go: glamour rendering of raw JSON records
//   - header.go, help.go, modal.go: chrome
//   - theme.go, style_helpers.go: colors and styled text
//
// # Key Bindings
//
//   - tab: Switch search input (search screen)
//   - 1-3: Activate tab or open dropdown
//   - ]/[: Next/previous tab
//   - j/k, ↑/↓: Move focus
//   - enter, space: Activate
//   - v: Toggle internal/external view
//   - esc: Close dropdown, leave input or return to search
//   - T: Cycle theme (saved to prefs)
//   - ?: Help
//   - q, ctrl+c: Quit
package ui
