package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/takedown/internal/viewstate"
)

const exampleProfileID = "0Y4KrP3a43fZbBiL"

// handleSearchKey processes input on the search screen. Printable keys
// always go to the focused input, so only control keys act as shortcuts.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f1":
		m.showHelp = true
		return m, nil
	case "ctrl+t":
		m.cycleTheme()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.SwitchInput):
		if m.search.focus == focusLookup {
			m.focusSearch(focusName)
		} else {
			m.focusSearch(focusLookup)
		}
		return m, textinput.Blink

	case msg.Type == tea.KeyEsc:
		if m.search.focus == focusLookup {
			m.search.lookup.SetValue("")
			m.search.lookupErr = ""
			return m, nil
		}
		m.search.name.SetValue("")
		m.view = m.view.SetQuery("")
		m.search.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.search.focus == focusLookup {
			return m.submitLookup()
		}
		matches := m.searchResult().Matches
		if len(matches) > 0 {
			m.selectProfile(matches[clamp(m.search.cursor, 0, len(matches)-1)])
		}
		return m, nil

	case msg.Type == tea.KeyUp:
		m.search.cursor--
		m.clampResultCursor()
		return m, nil

	case msg.Type == tea.KeyDown:
		m.search.cursor++
		m.clampResultCursor()
		return m, nil
	}

	var cmd tea.Cmd
	if m.search.focus == focusLookup {
		m.search.lookup, cmd = m.search.lookup.Update(msg)
		return m, cmd
	}
	m.search.name, cmd = m.search.name.Update(msg)
	if q := m.search.name.Value(); q != m.view.Query {
		m.view = m.view.SetQuery(q)
		m.search.cursor = 0
	}
	return m, cmd
}

func (m Model) submitLookup() (tea.Model, tea.Cmd) {
	if m.search.pending {
		return m, nil
	}
	m.search.pending = true
	m.search.lookupErr = ""
	return m, lookupCmd(m.ctx, m.src, m.search.lookup.Value())
}

func (m *Model) focusSearch(f searchFocus) {
	m.search.focus = f
	if f == focusLookup {
		m.search.name.Blur()
		m.search.lookup.Focus()
		return
	}
	m.search.lookup.Blur()
	m.search.name.Focus()
}

func (m Model) searchResult() viewstate.SearchResult {
	return viewstate.Search(m.snapshot.Catalog.Searchable(), m.view.Query)
}

func (m *Model) clampResultCursor() {
	m.search.cursor = clamp(m.search.cursor, 0, len(m.searchResult().Matches)-1)
}

// renderSearch renders the lookup and name search cards.
func (m Model) renderSearch() string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	width := m.width - 4

	var b strings.Builder
	line := func(parts ...string) {
		b.WriteString(" ")
		b.WriteString(strings.Join(parts, ""))
		b.WriteString("\n")
	}
	marker := func(f searchFocus) string {
		if m.search.focus == f {
			return bg.Render("▌", styles.AccentText)
		}
		return bg.Space()
	}

	line(bg.Render("Lookup by ID or URL", styles.Text.Bold(true)))
	line(bg.Render("• flo360 ID (e.g. ", styles.MutedText), bg.Render(exampleProfileID, styles.InfoText), bg.Render(")", styles.MutedText))
	line(bg.Render("• Profile URL (e.g. flowrestling.org/nextgen/people/...)", styles.MutedText))
	line(bg.Render("• Provider ID (e.g. Core, TrackWrestling)", styles.MutedText))
	line(marker(focusLookup), m.search.lookup.View(), bg.Spaces(2), bg.Render("enter: Go", styles.FaintText))
	switch {
	case m.search.pending:
		line(bg.Render("Looking up...", styles.WarningText))
	case m.search.lookupErr != "":
		line(bg.Render(m.search.lookupErr, styles.DangerText))
	default:
		line()
	}
	line()

	line(bg.Render("Search by Name", styles.Text.Bold(true)))
	line(bg.Render("Find a profile by searching for an athlete's name", styles.MutedText))
	line(marker(focusName), m.search.name.View())
	line()

	switch {
	case !m.snapshot.HasCatalog:
		line(bg.Render("Loading catalog...", styles.WarningText))
	default:
		res := m.searchResult()
		for i, p := range res.Matches {
			nameStyle := styles.Text.Bold(true)
			pointer := bg.Spaces(2)
			if i == m.search.cursor {
				nameStyle = styles.Selected.Bold(true)
				pointer = bg.Render("> ", styles.AccentText)
			}
			line(pointer, nameStyle.Render(p.Name), bg.Spaces(3), bg.Render("View Profile →", styles.AccentText))
			line(bg.Spaces(2), bg.Render(truncate(p.Summary(), width-2), styles.MutedText))
			line(bg.Spaces(2), bg.Render(p.ID, styles.FaintText))
		}
		if res.Shown() {
			if len(res.Matches) > 0 {
				line()
			}
			line(bg.Render(res.Label(), styles.MutedText))
		}
	}

	return m.renderTitledBox("Athlete Profile Tool", b.String(), m.width, m.height-headerRows, true)
}
