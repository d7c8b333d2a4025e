package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/viewstate"
)

type actionKind int

const (
	actPlaceholder actionKind = iota // rendered but wired to nothing
	actFocusInput
	actCycleGender
	actSave
	actToggleRow
	actToggleJSON
	actToggleView
)

// action is one focusable control of a panel.
type action struct {
	kind  actionKind
	label string
	input int    // actFocusInput
	row   int    // actToggleRow
	key   string // actToggleJSON
}

// panelBuilder accumulates a panel's lines and its focusable actions in
// display order, so the cursor index means the same thing to rendering and
// key handling.
type panelBuilder struct {
	styles     Styles
	bg         BgStyle
	width      int
	cursor     int
	out        []string
	actions    []action
	cursorLine int
}

func (p *panelBuilder) line(parts ...string) {
	p.out = append(p.out, p.bg.Space()+strings.Join(parts, ""))
}

func (p *panelBuilder) blank() {
	p.out = append(p.out, "")
}

// addAt registers an action rendered on line and reports whether it has focus.
func (p *panelBuilder) addAt(a action, line int) bool {
	focused := len(p.actions) == p.cursor
	if focused {
		p.cursorLine = line
	}
	p.actions = append(p.actions, a)
	return focused
}

// add registers an action for the next line written.
func (p *panelBuilder) add(a action) bool {
	return p.addAt(a, len(p.out))
}

func (p *panelBuilder) button(a action) string {
	return p.bg.Button(a.label, p.add(a), p.styles)
}

func (p *panelBuilder) marker(focused bool) string {
	if focused {
		return p.bg.Render("▌", p.styles.AccentText)
	}
	return p.bg.Space()
}

// para word-wraps text to the panel width.
func (p *panelBuilder) para(text string, style lipgloss.Style) {
	wrapped := lipgloss.NewStyle().Width(p.width - 2).Render(text)
	for _, l := range strings.Split(wrapped, "\n") {
		p.line(p.bg.Render(strings.TrimRight(l, " "), style))
	}
}

func (p *panelBuilder) heading(text string) {
	p.line(p.bg.Render(text, p.styles.Text.Bold(true)))
}

func (p *panelBuilder) content() string {
	return strings.Join(p.out, "\n")
}

// buildPanel renders the active tab's panel.
func (m Model) buildPanel() *panelBuilder {
	bgColor := m.theme.FocusBg
	p := &panelBuilder{
		styles: m.theme.Styles().WithBackground(bgColor),
		bg:     NewBgStyle(bgColor),
		width:  m.panelWidth(),
		cursor: m.profile.cursor,
	}
	if m.view.Selected == nil {
		return p
	}
	switch m.view.ActiveTab {
	case viewstate.TabEditFields:
		m.editFieldsPanel(p)
	case viewstate.TabRemoveMerges, viewstate.TabMerges:
		m.mergesPanel(p)
	case viewstate.TabAddMerge, viewstate.TabMerge:
		m.addMergePanel(p)
	case viewstate.TabRemoveEvents:
		m.removeEventsPanel(p)
	case viewstate.TabAddEvents:
		m.addEventsPanel(p)
	case viewstate.TabOverview:
		m.overviewPanel(p)
	}
	return p
}

func (m Model) panelActions() []action {
	return m.buildPanel().actions
}

// fieldValue shows the live input while it has focus and the committed
// value otherwise.
func (m Model) fieldValue(p *panelBuilder, idx int, committed string) string {
	if m.profile.focused == idx {
		return m.inputView(idx)
	}
	if committed == "" {
		if ph := m.profile.inputs[idx].Placeholder; ph != "" {
			return p.bg.Render(ph, p.styles.FaintText)
		}
		return p.bg.Render("—", p.styles.FaintText)
	}
	return p.bg.Render(committed, p.styles.Text)
}

// inputRow renders a labelled text input followed by a placeholder button.
func (m Model) inputRow(p *panelBuilder, label string, idx int, buttonLabel string) {
	focused := p.add(action{kind: actFocusInput, label: label, input: idx})
	value := m.profile.inputs[idx].Value()
	parts := []string{
		p.marker(focused),
		p.bg.Render(padRight(label, inputLabelWidth), p.styles.MutedText),
		m.fieldValue(p, idx, value),
	}
	if buttonLabel != "" {
		parts = append(parts, p.bg.Spaces(2), p.button(action{label: buttonLabel}))
	}
	p.line(parts...)
}

func (m Model) viewModeBar(p *panelBuilder) {
	name, text := badgeInternal, "INTERNAL"
	if !m.view.Internal() {
		name, text = badgeExternal, "EXTERNAL"
	}
	p.line(p.button(action{kind: actToggleView, label: m.view.ViewToggleLabel()}), p.bg.Spaces(2), badge(text, name, p.styles))
	p.para(viewstate.ViewToggleHint, p.styles.FaintText)
}

func (m Model) editFieldsPanel(p *panelBuilder) {
	prof := *m.view.Selected
	p.heading("Profile Details")
	p.blank()

	avatar := p.styles.BadgeStyle(badgeCurrent).Bold(true).Render(prof.Initials())
	p.line(avatar, p.bg.Spaces(2),
		p.button(action{label: "Upload Photo"}), p.bg.Spaces(2),
		p.bg.Render("JPG or PNG, max 2MB", p.styles.FaintText))
	p.blank()

	for _, f := range viewstate.Fields() {
		label := p.bg.Render(padRight(f.Label(), inputLabelWidth), p.styles.MutedText)
		if f == viewstate.FieldGender {
			focused := p.add(action{kind: actCycleGender, label: f.Label()})
			style := p.styles.Text
			if focused {
				style = p.styles.AccentText.Bold(true)
			}
			p.line(p.marker(focused), label, p.bg.Render("‹ "+m.profile.form.Value(f)+" ›", style))
			continue
		}
		idx := int(f)
		focused := p.add(action{kind: actFocusInput, label: f.Label(), input: idx})
		p.line(p.marker(focused), label, m.fieldValue(p, idx, m.profile.form.Value(f)))
	}

	p.blank()
	p.line(p.button(action{kind: actSave, label: "Save Changes"}))
}

func (m Model) mergesPanel(p *panelBuilder) {
	prof := *m.view.Selected
	merged := m.snapshot.Catalog.Merged

	m.viewModeBar(p)
	p.blank()
	p.heading(fmt.Sprintf("%d %s been merged with %s",
		len(merged), plural(len(merged), "profile has", "profiles have"), prof.Name))

	for i, cand := range merged {
		p.blank()
		open := m.view.RowExpanded(i)
		arrow := "▶"
		if open {
			arrow = "▼"
		}
		focused := p.add(action{kind: actToggleRow, label: cand.Name, row: i})
		nameStyle := p.styles.Text.Bold(true)
		if focused {
			nameStyle = p.styles.Selected.Bold(true)
		}
		p.line(p.marker(focused), nameStyle.Render(arrow+" "+cand.Name), p.bg.Spaces(2),
			p.bg.Render(cand.ID, p.styles.FaintText), p.bg.Spaces(2),
			p.button(action{label: "Unmerge"}))
		p.line(p.bg.Spaces(3), p.bg.Render(candidateSummary(cand), p.styles.MutedText))
		if open {
			p.blank()
			m.addComparison(p, viewstate.Compare(prof, cand, m.view.ViewMode, viewstate.RowKey(i)))
		}
	}
}

func candidateSummary(c athlete.MergeCandidate) string {
	parts := []string{c.Team, c.WeightClass, c.CityLine()}
	out := parts[:0]
	for _, s := range parts {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " · ")
}

func (m Model) addMergePanel(p *panelBuilder) {
	prof := *m.view.Selected
	prospect := m.snapshot.Catalog.Prospect

	p.para("Paste the flo360 ID of the profile you want to merge with "+prof.Name, p.styles.MutedText)
	p.blank()
	m.inputRow(p, "flo360 ID", inputMergeID, "Load Profile")
	p.blank()

	p.heading("Comparison")
	p.blank()
	m.addComparison(p, viewstate.CompareProspect(prof, prospect, m.view.ViewMode))
	p.blank()
	p.line(p.bg.Render("⚠ This will merge "+prospect.Name+" into "+prof.Name, p.styles.WarningText))
	p.blank()
	p.line(p.button(action{label: "Cancel"}), p.bg.Spaces(2), p.button(action{label: "Merge Profiles"}))
}

func (m Model) removeEventsPanel(p *panelBuilder) {
	p.heading("Events on this Profile")
	p.para("Events are grouped by where they came from. If you see events from a merged profile that don't belong, consider unmerging that profile instead of removing individual events.", p.styles.MutedText)

	nameWidth := clamp(p.width/3, 16, 40)
	for _, src := range m.snapshot.Catalog.EventSources {
		p.blank()
		chip := badge("Merged", badgeMerged, p.styles)
		if src.IsCurrent {
			chip = badge("Current Profile", badgeCurrent, p.styles)
		}
		parts := []string{chip, p.bg.Spaces(2), p.bg.Render(src.ProfileName, p.styles.Text.Bold(true))}
		if m.view.Internal() {
			parts = append(parts, p.bg.Spaces(2), p.bg.Render(src.ProfileID, p.styles.FaintText))
		}
		n := len(src.Events)
		parts = append(parts, p.bg.Spaces(2), p.bg.Render(fmt.Sprintf("%d %s", n, plural(n, "event", "events")), p.styles.MutedText))
		p.line(parts...)

		for _, ev := range src.Events {
			p.line(p.bg.Spaces(2),
				p.bg.Render(padRight(truncate(ev.Name, nameWidth), nameWidth), p.styles.Text), p.bg.Spaces(2),
				p.button(action{label: "Remove"}), p.bg.Spaces(2),
				p.bg.Render(ev.Detail(), p.styles.MutedText))
		}
		if !src.IsCurrent {
			p.line(p.bg.Spaces(2), p.button(action{label: "⚠ Unmerge this profile"}))
		}
	}
}

func (m Model) addEventsPanel(p *panelBuilder) {
	prof := *m.view.Selected
	ev := m.snapshot.Catalog.LoadedEvent

	p.heading("Add Events to this Profile")
	p.para("Paste an event URL to find participants and add them to this profile.", p.styles.MutedText)
	p.blank()
	m.inputRow(p, "Event URL", inputEventURL, "Load Event")

	if ev.Name == "" {
		return
	}
	p.blank()
	p.heading(ev.Name)
	p.line(p.bg.Render(ev.Detail, p.styles.MutedText))
	p.blank()
	p.heading("Select Participant")
	p.para("Choose which participant from this event should be added to "+prof.Name+"'s profile.", p.styles.MutedText)
	p.para("Note: Participant identification in events is still being designed. Internal users will see participant IDs. External user experience TBD.", p.styles.WarningText)
	p.blank()

	nameWidth := clamp(p.width/4, 16, 32)
	for _, pt := range ev.Participants {
		parts := []string{
			p.bg.Spaces(2),
			p.bg.Render(padRight(truncate(pt.Name, nameWidth), nameWidth), p.styles.Text.Bold(true)),
			p.bg.Render(pt.WeightClass+" · "+pt.Placement, p.styles.MutedText),
		}
		if m.view.Internal() {
			parts = append(parts, p.bg.Spaces(2), p.bg.Render(pt.ID, p.styles.FaintText))
		}
		parts = append(parts, p.bg.Spaces(2), p.button(action{label: "Add to Profile"}))
		p.line(parts...)
	}
}

func (m Model) overviewPanel(p *panelBuilder) {
	prof := *m.view.Selected
	cat := m.snapshot.Catalog

	m.viewModeBar(p)
	p.blank()
	m.addCard(p, viewstate.ProfileCard(prof, m.view.ViewMode, "overview-jb"))
	p.blank()

	n := len(cat.Merged)
	events := cat.EventCount()
	p.line(p.bg.Render(fmt.Sprintf("%d merged %s", n, plural(n, "record", "records")), p.styles.MutedText),
		p.bg.Render(" · ", p.styles.FaintText),
		p.bg.Render(fmt.Sprintf("%d %s across %d %s", events, plural(events, "event", "events"),
			len(cat.EventSources), plural(len(cat.EventSources), "source", "sources")), p.styles.MutedText))
}
