package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/takedown/internal/viewstate"
)

// renderHeader renders the status bar: logo, source, catalog freshness,
// view mode and layout.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{
		bg.Render("takedown", styles.Logo),
		bg.Render("source", styles.FaintText) + bg.Space() + bg.Render(truncateMiddle(m.sourceLabel, 40), styles.MutedText),
	}

	switch {
	case !m.snapshot.HasCatalog && m.snapshot.LastError == nil:
		parts = append(parts, bg.Render("Loading catalog...", styles.WarningText.Bold(true)))
	case m.snapshot.LastError != nil:
		label := "SOURCE " + classifyConnectionError(m.snapshot.LastError)
		if m.snapshot.IsOffline() {
			label = "OFFLINE"
		}
		last := "soon"
		if !m.lastUpdated.IsZero() {
			last = m.lastUpdated.Format("15:04:05")
		}
		parts = append(parts,
			bg.Render(label, styles.DangerText.Bold(true)),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
			bg.Render(last, styles.MutedText),
		)
	default:
		if ts := m.formatTimestamp(); ts != "" {
			parts = append(parts, bg.Render(ts, styles.MutedText))
		}
	}

	if m.view.Internal() {
		parts = append(parts, badge("INTERNAL", badgeInternal, styles))
	} else {
		parts = append(parts, badge("EXTERNAL", badgeExternal, styles))
	}
	if !compact {
		parts = append(parts, bg.Render("layout", styles.FaintText)+bg.Space()+bg.Render(string(m.view.Layout), styles.MutedText))
	}

	if err := m.snapshot.LastError; err != nil {
		maxErr := 80
		if compact {
			maxErr = 30
		}
		parts = append(parts, bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
			bg.Render(truncate(err.Error(), maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last catalog refresh with a relative hint.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}
	since := time.Since(m.lastUpdated)
	ts := m.lastUpdated.Format("15:04:05")
	switch {
	case since < time.Minute:
		ts += " (now)"
	case since < time.Hour:
		ts += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		ts += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return ts
}

// classifyConnectionError returns a short description of a source error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "no such file"):
		return "MISSING"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	if m.view.Screen() == viewstate.ScreenSearch {
		commands = []cmd{
			{"tab", "Switch input"},
			{"enter", "Go"},
			{"↑/↓", "Results"},
			{"f1", "Help"},
			{"ctrl+c", "Quit"},
		}
	} else {
		commands = []cmd{
			{"1-3", "Tabs"},
			{"j/k", "Navigate"},
			{"enter", "Activate"},
			{"v", m.view.ViewToggleLabel()},
			{"esc", "Search"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
