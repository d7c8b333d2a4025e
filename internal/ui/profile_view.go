package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/takedown/internal/viewstate"
)

// tabEntry is one slot of the tab bar: a plain tab or a dropdown group.
type tabEntry struct {
	tab      viewstate.Tab
	dropdown viewstate.Dropdown
}

func (e tabEntry) label() string {
	if e.dropdown != viewstate.DropdownNone {
		return e.dropdown.Label() + " ▾"
	}
	return e.tab.Label()
}

// tabBarEntries folds a layout's tabs into tab-bar slots, one per dropdown group.
func tabBarEntries(l viewstate.Layout) []tabEntry {
	var entries []tabEntry
	seen := map[viewstate.Dropdown]bool{}
	for _, t := range l.Tabs() {
		group := dropdownOf(l, t)
		if group == viewstate.DropdownNone {
			entries = append(entries, tabEntry{tab: t})
			continue
		}
		if !seen[group] {
			seen[group] = true
			entries = append(entries, tabEntry{dropdown: group})
		}
	}
	return entries
}

func dropdownOf(l viewstate.Layout, t viewstate.Tab) viewstate.Dropdown {
	for _, d := range l.Dropdowns() {
		for _, member := range l.DropdownTabs(d) {
			if member == t {
				return d
			}
		}
	}
	return viewstate.DropdownNone
}

// menuLabel is the dropdown item text for a tab.
func menuLabel(t viewstate.Tab) string {
	switch t {
	case viewstate.TabRemoveMerges, viewstate.TabRemoveEvents:
		return "Remove Existing"
	case viewstate.TabAddMerge, viewstate.TabAddEvents:
		return "Add New"
	default:
		return t.Label()
	}
}

// handleProfileKey processes input on the profile screen.
func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.profile.focused != noInput {
		return m.handleInputKey(msg)
	}
	if m.view.OpenDropdown != viewstate.DropdownNone {
		if next, cmd, handled := m.handleMenuKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Back):
		m.backToSearch()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.TabOne):
		m.activateEntry(0)
	case key.Matches(msg, m.keys.TabTwo):
		m.activateEntry(1)
	case key.Matches(msg, m.keys.TabThree):
		m.activateEntry(2)
	case key.Matches(msg, m.keys.NextTab):
		m.stepTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.stepTab(-1)
	case key.Matches(msg, m.keys.ToggleView):
		m.view = m.view.ToggleViewMode()
	case key.Matches(msg, m.keys.Up):
		m.profile.cursor--
	case key.Matches(msg, m.keys.Down):
		m.profile.cursor++
	case key.Matches(msg, m.keys.Top):
		m.profile.cursor = 0
		m.profile.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.profile.cursor = len(m.panelActions()) - 1
	case key.Matches(msg, m.keys.HalfPageUp):
		m.profile.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageDown):
		m.profile.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		cmd = m.activate()
	}
	m.refreshPanel()
	return m, cmd
}

// handleMenuKey drives an open dropdown. Keys it does not own fall through.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	items := m.view.Layout.DropdownTabs(m.view.OpenDropdown)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.profile.menuCursor = clamp(m.profile.menuCursor-1, 0, len(items)-1)
	case key.Matches(msg, m.keys.Down):
		m.profile.menuCursor = clamp(m.profile.menuCursor+1, 0, len(items)-1)
	case key.Matches(msg, m.keys.Activate):
		if len(items) > 0 {
			m.selectTab(items[clamp(m.profile.menuCursor, 0, len(items)-1)])
		}
	case key.Matches(msg, m.keys.Back):
		m.view = m.view.CloseDropdown()
	default:
		return m, nil, false
	}
	m.refreshPanel()
	return m, nil, true
}

// activateEntry presses the i-th tab-bar slot.
func (m *Model) activateEntry(i int) {
	entries := tabBarEntries(m.view.Layout)
	if i < 0 || i >= len(entries) {
		return
	}
	e := entries[i]
	if e.dropdown == viewstate.DropdownNone {
		m.selectTab(e.tab)
		return
	}
	m.view = m.view.ToggleDropdown(e.dropdown)
	m.profile.menuCursor = 0
	for j, t := range m.view.Layout.DropdownTabs(e.dropdown) {
		if t == m.view.ActiveTab {
			m.profile.menuCursor = j
		}
	}
}

func (m *Model) stepTab(delta int) {
	tabs := m.view.Layout.Tabs()
	if len(tabs) == 0 {
		return
	}
	idx := 0
	for i, t := range tabs {
		if t == m.view.ActiveTab {
			idx = i
		}
	}
	m.selectTab(tabs[(idx+delta+len(tabs))%len(tabs)])
}

func (m *Model) selectTab(t viewstate.Tab) {
	before := m.view.ActiveTab
	m.view = m.view.SelectTab(t)
	if m.view.ActiveTab != before {
		m.blurProfileInput()
		m.profile.cursor = 0
		m.profile.viewport.GotoTop()
	}
}

// activate presses the focused panel action.
func (m *Model) activate() tea.Cmd {
	actions := m.panelActions()
	if len(actions) == 0 {
		return nil
	}
	a := actions[clamp(m.profile.cursor, 0, len(actions)-1)]
	switch a.kind {
	case actFocusInput:
		return m.focusProfileInput(a.input)
	case actCycleGender:
		m.profile.form = m.profile.form.CycleGender()
	case actSave:
		m.view = m.view.Notify(viewstate.SaveNotice)
		m.modal = newAlertModal(m.view.Notice)
	case actToggleRow:
		m.view = m.view.ToggleRow(a.row)
	case actToggleJSON:
		m.view = m.view.ToggleRawJSON(a.key)
	case actToggleView:
		m.view = m.view.ToggleViewMode()
	default:
		m.logger.Debug("placeholder action", zap.String("label", a.label), zap.String("tab", string(m.view.ActiveTab)))
	}
	return nil
}

func (m Model) menuRows() int {
	if m.view.OpenDropdown == viewstate.DropdownNone {
		return 0
	}
	return len(m.view.Layout.DropdownTabs(m.view.OpenDropdown))
}

func (m Model) panelWidth() int {
	if w := m.width - 2; w > 0 {
		return w
	}
	return 1
}

func (m Model) panelHeight() int {
	h := m.height - headerRows - profileHeaderRows - m.menuRows() - 2
	if h < 1 {
		return 1
	}
	return h
}

// refreshPanel rebuilds the active panel and keeps the focused action visible.
func (m *Model) refreshPanel() {
	if !m.ready || m.view.Screen() != viewstate.ScreenProfile {
		return
	}
	vp := &m.profile.viewport
	vp.Width = m.panelWidth()
	vp.Height = m.panelHeight()

	p := m.buildPanel()
	if n := len(p.actions); n > 0 && (m.profile.cursor < 0 || m.profile.cursor >= n) {
		m.profile.cursor = clamp(m.profile.cursor, 0, n-1)
		p = m.buildPanel()
	}
	vp.SetContent(p.content())

	line := p.cursorLine
	switch {
	case line < vp.YOffset:
		vp.SetYOffset(line)
	case line >= vp.YOffset+vp.Height:
		vp.SetYOffset(line - vp.Height + 1)
	}
}

// renderProfile renders the profile title, tab bar, open dropdown and panel.
func (m Model) renderProfile() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	prof := m.view.Selected

	title := []string{
		bg.Render("← esc", styles.FaintText),
		bg.Render(prof.Name, styles.Text.Bold(true)),
		bg.Render(prof.ID, styles.MutedText),
	}
	if m.width >= LayoutCompactWidth && prof.URL != "" {
		title = append(title, bg.Render(truncateMiddle(prof.URL, 48), styles.FaintText))
	}

	var b strings.Builder
	b.WriteString(bg.FillLine(bg.Join(title, "  "), m.width))
	b.WriteString("\n")
	b.WriteString(m.renderTabBar(styles, bg))
	b.WriteString("\n")

	if m.view.OpenDropdown != viewstate.DropdownNone {
		indent := m.dropdownIndent()
		for i, t := range m.view.Layout.DropdownTabs(m.view.OpenDropdown) {
			item := "  " + menuLabel(t) + "  "
			style := styles.Text
			if i == m.profile.menuCursor {
				style = styles.Selected
			}
			b.WriteString(bg.FillLine(bg.Spaces(indent)+style.Render(item), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderTitledBox(m.view.ActiveTab.Label(), m.profile.viewport.View(), m.width, m.panelHeight()+2, true))
	return b.String()
}

func (m Model) renderTabBar(styles Styles, bg BgStyle) string {
	entries := tabBarEntries(m.view.Layout)
	parts := make([]string, 0, len(entries))
	for i, e := range entries {
		active := e.tab == m.view.ActiveTab
		if e.dropdown != viewstate.DropdownNone {
			active = m.view.TabActive(e.dropdown)
		}
		text := " " + strconv.Itoa(i+1) + " " + e.label() + " "
		switch {
		case active:
			parts = append(parts, styles.Selected.Bold(true).Render(text))
		case e.dropdown != viewstate.DropdownNone && e.dropdown == m.view.OpenDropdown:
			parts = append(parts, bg.Render(text, styles.AccentText.Bold(true)))
		default:
			parts = append(parts, bg.Render(text, styles.MutedText))
		}
	}
	return bg.FillLine(bg.Join(parts, " │ "), m.width)
}

// dropdownIndent lines the menu up under its tab-bar slot.
func (m Model) dropdownIndent() int {
	indent := 0
	for i, e := range tabBarEntries(m.view.Layout) {
		if e.dropdown == m.view.OpenDropdown {
			return indent
		}
		indent += len([]rune(" "+strconv.Itoa(i+1)+" "+e.label()+" ")) + 3
	}
	return 0
}
