package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/takedown/internal/viewstate"
)

const cardLabelWidth = 14

// addComparison lays the two cards side by side when both fit, stacked
// otherwise. Raw JSON toggles register as actions, left card first.
func (m Model) addComparison(p *panelBuilder, c viewstate.Comparison) {
	next := len(p.actions)
	leftFocus := c.Left.JSONKey != "" && p.cursor == next
	if c.Left.JSONKey != "" {
		next++
	}
	rightFocus := c.Right.JSONKey != "" && p.cursor == next

	colW := (p.width - 4) / 2
	if colW >= LayoutMinCardWidth {
		left, lj := m.renderCard(c.Left, colW, leftFocus, p)
		right, rj := m.renderCard(c.Right, colW, rightFocus, p)
		base := len(p.out)
		m.registerJSON(p, c.Left, base+lj)
		m.registerJSON(p, c.Right, base+rj)

		blank := m.cardCell(colW).Render("")
		sep := p.bg.Space() + p.bg.Render("│", p.styles.FaintText) + p.bg.Space()
		for i := 0; i < max(len(left), len(right)); i++ {
			l, r := blank, blank
			if i < len(left) {
				l = left[i]
			}
			if i < len(right) {
				r = right[i]
			}
			p.line(l, sep, r)
		}
		return
	}

	width := p.width - 2
	left, lj := m.renderCard(c.Left, width, leftFocus, p)
	m.registerJSON(p, c.Left, len(p.out)+lj)
	for _, l := range left {
		p.line(l)
	}
	p.blank()
	right, rj := m.renderCard(c.Right, width, rightFocus, p)
	m.registerJSON(p, c.Right, len(p.out)+rj)
	for _, l := range right {
		p.line(l)
	}
}

// addCard renders a single full-width card.
func (m Model) addCard(p *panelBuilder, card viewstate.Card) {
	focused := card.JSONKey != "" && p.cursor == len(p.actions)
	lines, jl := m.renderCard(card, p.width-2, focused, p)
	m.registerJSON(p, card, len(p.out)+jl)
	for _, l := range lines {
		p.line(l)
	}
}

func (m Model) registerJSON(p *panelBuilder, card viewstate.Card, line int) {
	if card.JSONKey == "" {
		return
	}
	p.addAt(action{kind: actToggleJSON, label: "raw JSON", key: card.JSONKey}, line)
}

func (m Model) cardCell(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.FocusBg)).
		Width(width)
}

// renderCard returns the card's lines padded to width and the line index of
// its raw JSON toggle, or -1 when it has none.
func (m Model) renderCard(card viewstate.Card, width int, jsonFocused bool, p *panelBuilder) ([]string, int) {
	cell := m.cardCell(width)
	styles, bg := p.styles, p.bg

	var lines []string
	add := func(s string) {
		lines = append(lines, cell.Render(ansi.Truncate(s, width, "")))
	}

	add(bg.Render(strings.ToUpper(card.Title), styles.FaintText.Bold(true)))
	add(bg.Render(truncate(card.Name, width), styles.Text.Bold(true)))
	if card.ID != "" {
		add(bg.Render(card.ID, styles.MutedText))
	}

	section := viewstate.SectionIdentity
	for _, r := range card.Rows {
		if r.Section != section {
			section = r.Section
			add(bg.Render(strings.TrimSpace("── "+section), styles.FaintText))
		}
		valueStyle := styles.Text
		if r.Sensitive {
			valueStyle = styles.WarningText
		}
		add(bg.Render(padRight(r.Label, cardLabelWidth), styles.MutedText) +
			bg.Render(truncate(r.Value, width-cardLabelWidth), valueStyle))
	}

	jsonLine := -1
	if card.JSONKey != "" {
		shown := m.view.RawJSONShown(card.JSONKey)
		label := "▶ Show raw JSON"
		if shown {
			label = "▼ Hide raw JSON"
		}
		jsonLine = len(lines)
		add(bg.Button(label, jsonFocused, styles))
		if shown {
			for _, l := range strings.Split(m.json.render(card.RawJSON, width-4), "\n") {
				add(l)
			}
		}
	}
	return lines, jsonLine
}
