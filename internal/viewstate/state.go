package viewstate

import (
	"fmt"
	"maps"
	"strings"

	"github.com/five82/takedown/internal/athlete"
)

// Screen is the top-level view.
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenProfile
)

// Layout selects one of the two tab sets.
type Layout string

const (
	LayoutAdmin  Layout = "admin"
	LayoutReview Layout = "review"
)

// ParseLayout accepts "admin" or "review" (case-insensitive, empty means admin).
func ParseLayout(value string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(LayoutAdmin):
		return LayoutAdmin, nil
	case string(LayoutReview):
		return LayoutReview, nil
	default:
		return "", fmt.Errorf("unknown layout %q (want admin or review)", value)
	}
}

// Tab identifies a profile panel.
type Tab string

const (
	TabEditFields   Tab = "editFields"
	TabRemoveMerges Tab = "removeMerges"
	TabAddMerge     Tab = "addMerge"
	TabRemoveEvents Tab = "removeEvents"
	TabAddEvents    Tab = "addEvents"

	TabOverview Tab = "overview"
	TabMerges   Tab = "merges"
	TabMerge    Tab = "merge"
)

// Label is the tab's display name.
func (t Tab) Label() string {
	switch t {
	case TabEditFields:
		return "Edit Fields"
	case TabRemoveMerges:
		return "Remove merges"
	case TabAddMerge:
		return "Add merge"
	case TabRemoveEvents:
		return "Remove events"
	case TabAddEvents:
		return "Add events"
	case TabOverview:
		return "Overview"
	case TabMerges:
		return "Merges"
	case TabMerge:
		return "Merge"
	default:
		return string(t)
	}
}

// Dropdown identifies a tab-bar submenu. The zero value means none is open.
type Dropdown string

const (
	DropdownNone   Dropdown = ""
	DropdownMerges Dropdown = "merges"
	DropdownEvents Dropdown = "events"
)

// Label is the dropdown's tab-bar text.
func (d Dropdown) Label() string {
	switch d {
	case DropdownMerges:
		return "Merges"
	case DropdownEvents:
		return "Events"
	default:
		return ""
	}
}

// ViewMode gates personally identifying fields.
type ViewMode string

const (
	ViewInternal ViewMode = "internal"
	ViewExternal ViewMode = "external"
)

// ParseViewMode accepts "internal" or "external"; empty means internal.
func ParseViewMode(value string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ViewInternal):
		return ViewInternal, nil
	case string(ViewExternal):
		return ViewExternal, nil
	default:
		return "", fmt.Errorf("unknown view mode %q (want internal or external)", value)
	}
}

// Tabs lists the layout's panels in tab-bar order.
func (l Layout) Tabs() []Tab {
	if l == LayoutReview {
		return []Tab{TabOverview, TabMerges, TabMerge}
	}
	return []Tab{TabEditFields, TabRemoveMerges, TabAddMerge, TabRemoveEvents, TabAddEvents}
}

// DefaultTab is the tab shown right after selecting a profile.
func (l Layout) DefaultTab() Tab {
	if l == LayoutReview {
		return TabOverview
	}
	return TabEditFields
}

// Dropdowns lists the submenus available in the layout.
func (l Layout) Dropdowns() []Dropdown {
	if l == LayoutReview {
		return nil
	}
	return []Dropdown{DropdownMerges, DropdownEvents}
}

// DropdownTabs lists the tabs reachable from a submenu.
func (l Layout) DropdownTabs(d Dropdown) []Tab {
	if l == LayoutReview {
		return nil
	}
	switch d {
	case DropdownMerges:
		return []Tab{TabRemoveMerges, TabAddMerge}
	case DropdownEvents:
		return []Tab{TabRemoveEvents, TabAddEvents}
	default:
		return nil
	}
}

func (l Layout) hasTab(t Tab) bool {
	for _, candidate := range l.Tabs() {
		if candidate == t {
			return true
		}
	}
	return false
}

// SaveNotice is the placeholder alert shown by the save action.
const SaveNotice = "Save clicked (mocked)"

// State is the complete presentation state of one session.
type State struct {
	Selected     *athlete.Profile `json:"selected"`
	Query        string           `json:"query"`
	Layout       Layout           `json:"layout"`
	ActiveTab    Tab              `json:"activeTab"`
	OpenDropdown Dropdown         `json:"openDropdown"`
	ExpandedRows map[int]bool     `json:"expandedRows"`
	RawJSON      map[string]bool  `json:"rawJson"`
	ViewMode     ViewMode         `json:"viewMode"`
	Notice       string           `json:"notice,omitempty"`
}

// New returns the initial state for a layout: search screen, rows 0 and 1
// expanded, raw JSON collapsed, internal view.
func New(layout Layout) State {
	if layout != LayoutReview {
		layout = LayoutAdmin
	}
	return State{
		Layout:       layout,
		ActiveTab:    layout.DefaultTab(),
		ExpandedRows: defaultExpandedRows(),
		RawJSON:      map[string]bool{},
		ViewMode:     ViewInternal,
	}
}

func defaultExpandedRows() map[int]bool {
	return map[int]bool{0: true, 1: true}
}

// Screen reports which top-level view renders.
func (s State) Screen() Screen {
	if s.Selected == nil {
		return ScreenSearch
	}
	return ScreenProfile
}

// SetQuery replaces the search text.
func (s State) SetQuery(query string) State {
	s.Query = query
	return s
}

// Select opens a profile on its default tab.
func (s State) Select(p athlete.Profile) State {
	s.Selected = &p
	s.ActiveTab = s.Layout.DefaultTab()
	s.OpenDropdown = DropdownNone
	return s
}

// Deselect returns to search. The query and view mode survive; disclosure
// state goes back to its defaults.
func (s State) Deselect() State {
	s.Selected = nil
	s.ActiveTab = s.Layout.DefaultTab()
	s.OpenDropdown = DropdownNone
	s.ExpandedRows = defaultExpandedRows()
	s.RawJSON = map[string]bool{}
	s.Notice = ""
	return s
}

// SelectTab activates t and closes any open dropdown. Tabs outside the
// layout are ignored.
func (s State) SelectTab(t Tab) State {
	if !s.Layout.hasTab(t) {
		return s
	}
	s.ActiveTab = t
	s.OpenDropdown = DropdownNone
	return s
}

// ToggleDropdown opens d, or closes it when it is already open. Only one
// dropdown is ever open.
func (s State) ToggleDropdown(d Dropdown) State {
	if d == DropdownNone || len(s.Layout.DropdownTabs(d)) == 0 {
		return s
	}
	if s.OpenDropdown == d {
		s.OpenDropdown = DropdownNone
		return s
	}
	s.OpenDropdown = d
	return s
}

// CloseDropdown closes whichever dropdown is open.
func (s State) CloseDropdown() State {
	s.OpenDropdown = DropdownNone
	return s
}

// TabActive reports whether the active tab belongs to group d.
func (s State) TabActive(d Dropdown) bool {
	for _, t := range s.Layout.DropdownTabs(d) {
		if t == s.ActiveTab {
			return true
		}
	}
	return false
}

// ToggleRow flips the expansion flag of merge row i.
func (s State) ToggleRow(i int) State {
	rows := maps.Clone(s.ExpandedRows)
	if rows == nil {
		rows = map[int]bool{}
	}
	rows[i] = !rows[i]
	s.ExpandedRows = rows
	return s
}

// RowExpanded reports the expansion flag of merge row i.
func (s State) RowExpanded(i int) bool {
	return s.ExpandedRows[i]
}

// ToggleRawJSON flips a raw JSON disclosure panel.
func (s State) ToggleRawJSON(key string) State {
	flags := maps.Clone(s.RawJSON)
	if flags == nil {
		flags = map[string]bool{}
	}
	flags[key] = !flags[key]
	s.RawJSON = flags
	return s
}

// RawJSONShown reports whether a raw JSON panel is open. Panels are never
// shown in external view.
func (s State) RawJSONShown(key string) bool {
	return s.Internal() && s.RawJSON[key]
}

// ToggleViewMode flips between internal and external.
func (s State) ToggleViewMode() State {
	if s.ViewMode == ViewExternal {
		s.ViewMode = ViewInternal
	} else {
		s.ViewMode = ViewExternal
	}
	return s
}

// Internal reports whether sensitive fields are visible.
func (s State) Internal() bool {
	return s.ViewMode != ViewExternal
}

// ViewToggleLabel is the text of the view-mode button.
func (s State) ViewToggleLabel() string {
	if s.Internal() {
		return "View External"
	}
	return "View Internal"
}

// ViewToggleHint explains the view-mode button.
const ViewToggleHint = "External view hides PII (DOB, lat/lng) from users"

// Notify raises a blocking placeholder alert.
func (s State) Notify(msg string) State {
	s.Notice = msg
	return s
}

// DismissNotice clears the alert.
func (s State) DismissNotice() State {
	s.Notice = ""
	return s
}
