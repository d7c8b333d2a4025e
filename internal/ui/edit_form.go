package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/takedown/internal/viewstate"
)

const inputLabelWidth = 15

func newProfileInputs() []textinput.Model {
	inputs := make([]textinput.Model, inputCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		inputs[i] = ti
	}
	inputs[int(viewstate.FieldDOB)].Placeholder = "YYYY-MM-DD"
	inputs[int(viewstate.FieldGradYear)].CharLimit = 4
	inputs[inputMergeID].Placeholder = "e.g. " + exampleProfileID
	inputs[inputEventURL].Placeholder = "e.g. flowrestling.org/events/12345-ncaa-championships"
	return inputs
}

func (m *Model) resizeInputs() {
	w := m.width - 8
	m.search.lookup.Width = w
	m.search.name.Width = w

	field := m.panelWidth() - inputLabelWidth - 4
	if field < 10 {
		field = 10
	}
	for i := range m.profile.inputs {
		m.profile.inputs[i].Width = field
	}
	// URL and id inputs share their row with a button.
	m.profile.inputs[inputMergeID].Width = field - 18
	m.profile.inputs[inputEventURL].Width = field - 16
}

func (m *Model) focusProfileInput(idx int) tea.Cmd {
	m.blurProfileInput()
	if idx < 0 || idx >= len(m.profile.inputs) || idx == int(viewstate.FieldGender) {
		return nil
	}
	m.profile.focused = idx
	return m.profile.inputs[idx].Focus()
}

// blurProfileInput commits the focused form field, if any, and drops focus.
func (m *Model) blurProfileInput() {
	idx := m.profile.focused
	if idx == noInput {
		return
	}
	if idx <= int(viewstate.FieldLocation) {
		m.profile.form = m.profile.form.Set(viewstate.FormField(idx), m.profile.inputs[idx].Value())
	}
	m.profile.inputs[idx].Blur()
	m.profile.focused = noInput
}

// handleInputKey routes keys to the focused profile input. Enter and esc
// leave the input; nothing is submitted anywhere.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.blurProfileInput()
		m.refreshPanel()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		next := m.nextFormInput(msg.Type == tea.KeyTab)
		if next == noInput {
			m.blurProfileInput()
			m.refreshPanel()
			return m, nil
		}
		cmd := m.focusProfileInput(next)
		m.moveCursorToInput(next)
		m.refreshPanel()
		return m, cmd
	}

	idx := m.profile.focused
	var cmd tea.Cmd
	m.profile.inputs[idx], cmd = m.profile.inputs[idx].Update(msg)
	m.refreshPanel()
	return m, cmd
}

// nextFormInput steps through the edit form's text fields, skipping the
// gender select. Inputs outside the form have no neighbours.
func (m Model) nextFormInput(forward bool) int {
	cur := m.profile.focused
	if cur > int(viewstate.FieldLocation) {
		return noInput
	}
	fields := viewstate.Fields()
	step := 1
	if !forward {
		step = -1
	}
	for i := cur + step; i >= 0 && i < len(fields); i += step {
		if fields[i] != viewstate.FieldGender {
			return int(fields[i])
		}
	}
	return noInput
}

func (m *Model) moveCursorToInput(idx int) {
	for i, a := range m.panelActions() {
		if a.kind == actFocusInput && a.input == idx {
			m.profile.cursor = i
			return
		}
	}
}

// inputView renders a profile input, showing the live edit while focused.
func (m Model) inputView(idx int) string {
	return m.profile.inputs[idx].View()
}
