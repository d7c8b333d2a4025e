package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/prefs"
	"github.com/five82/takedown/internal/state"
	"github.com/five82/takedown/internal/viewstate"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Source      athlete.Source
	Store       *state.Store
	Layout      viewstate.Layout
	OpenProfile bool // select the primary profile as soon as the catalog loads
	SourceLabel string
	PollTick    time.Duration
	ThemeName   string
	PrefsPath   string
	Logger      *zap.Logger
}

type searchFocus int

const (
	focusLookup searchFocus = iota
	focusName
)

// searchState holds the search screen's inputs and result cursor.
type searchState struct {
	lookup    textinput.Model
	name      textinput.Model
	focus     searchFocus
	cursor    int
	lookupErr string
	pending   bool
}

// Profile screen text inputs. Form fields use their FormField value as index;
// the gender slot is unused because gender is a select.
const (
	inputMergeID  = int(viewstate.FieldLocation) + 1
	inputEventURL = inputMergeID + 1
	inputCount    = inputEventURL + 1
	noInput       = -1
)

// profileState holds the profile screen's widgets. Navigation, disclosure and
// view mode live in viewstate.State.
type profileState struct {
	viewport   viewport.Model
	cursor     int // focused panel action
	menuCursor int // focused dropdown item
	form       viewstate.EditForm
	inputs     []textinput.Model
	focused    int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx         context.Context
	src         athlete.Source
	store       *state.Store
	logger      *zap.Logger
	prefsPath   string
	pollTick    time.Duration
	sourceLabel string
	openProfile bool

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	snapshot    state.Snapshot
	lastUpdated time.Time

	view    viewstate.State
	search  searchState
	profile profileState

	modal    Modal
	showHelp bool
	json     *jsonRenderer
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sourceLabel := opts.SourceLabel
	if sourceLabel == "" {
		sourceLabel = "fixture"
	}

	lookup := textinput.New()
	lookup.Placeholder = "Paste ID or URL..."
	lookup.CharLimit = 200
	lookup.Prompt = "› "

	name := textinput.New()
	name.Placeholder = "Enter athlete name..."
	name.CharLimit = 100
	name.Prompt = "› "
	name.Focus()

	return Model{
		ctx:         ctx,
		src:         opts.Source,
		store:       opts.Store,
		logger:      logger.Named("ui"),
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		sourceLabel: sourceLabel,
		openProfile: opts.OpenProfile,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		view:        viewstate.New(opts.Layout),
		search: searchState{
			lookup: lookup,
			name:   name,
			focus:  focusName,
		},
		profile: profileState{
			inputs:  newProfileInputs(),
			focused: noInput,
		},
		json: newJSONRenderer(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick), textinput.Blink}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.profile.viewport = viewport.New(m.panelWidth(), m.panelHeight())
		}
		m.ready = true
		m.resizeInputs()
		m.refreshPanel()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case lookupMsg:
		m.handleLookup(msg)
		return m, nil
	}

	// Cursor blink and other input messages.
	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}

	content := m.renderSearch()
	if m.view.Screen() == viewstate.ScreenProfile {
		content = m.renderProfile()
	}
	return m.renderHeader() + "\n" + m.renderCommandBar() + "\n" + content
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
			m.view = m.view.DismissNotice()
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.view.Screen() == viewstate.ScreenSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleProfileKey(msg)
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// applySnapshot stores the latest snapshot. Panels and results are rebuilt
// only when Generation moved; error-only snapshots just update the header.
func (m *Model) applySnapshot(snap state.Snapshot) {
	changed := snap.Generation != m.snapshot.Generation
	m.snapshot = snap
	if snap.HasCatalog {
		m.lastUpdated = snap.LastUpdated
	}
	if m.openProfile && snap.HasCatalog && m.view.Screen() == viewstate.ScreenSearch {
		m.openProfile = false
		m.selectProfile(snap.Catalog.Primary)
		return
	}
	if !changed {
		return
	}
	m.clampResultCursor()
	m.refreshPanel()
}

func (m *Model) handleLookup(msg lookupMsg) {
	m.search.pending = false
	if m.view.Screen() != viewstate.ScreenSearch {
		// A name result was chosen while the lookup was in flight.
		m.logger.Debug("dropping stale lookup reply", zap.String("ref", msg.ref))
		return
	}
	if msg.err != nil {
		m.search.lookupErr = lookupErrorText(msg.err)
		m.logger.Warn("profile lookup failed", zap.String("ref", msg.ref), zap.Error(msg.err))
		return
	}
	m.search.lookupErr = ""
	m.logger.Info("profile lookup", zap.String("ref", msg.ref), zap.String("profile_id", msg.profile.ID))
	m.selectProfile(*msg.profile)
}

func lookupErrorText(err error) string {
	if errors.Is(err, athlete.ErrNotFound) {
		return "No profile found for that ID or URL"
	}
	return "Lookup failed: " + truncate(err.Error(), 60)
}

// selectProfile enters the profile screen and reseeds the edit form.
func (m *Model) selectProfile(p athlete.Profile) {
	m.view = m.view.Select(p)
	m.search.lookup.Blur()
	m.search.name.Blur()
	m.profile.cursor = 0
	m.profile.menuCursor = 0
	m.profile.form = viewstate.NewEditForm(p)
	m.blurProfileInput()
	for _, f := range viewstate.Fields() {
		if f == viewstate.FieldGender {
			continue
		}
		m.profile.inputs[int(f)].SetValue(m.profile.form.Value(f))
	}
	m.profile.inputs[inputMergeID].SetValue("")
	m.profile.inputs[inputEventURL].SetValue("")
	m.profile.viewport.GotoTop()
	m.refreshPanel()
}

// backToSearch returns to the search screen with the query intact.
func (m *Model) backToSearch() {
	m.blurProfileInput()
	m.view = m.view.Deselect()
	m.focusSearch(m.search.focus)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save prefs", zap.Error(err))
	}
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.view.Screen() == viewstate.ScreenSearch && m.search.focus == focusLookup:
		m.search.lookup, cmd = m.search.lookup.Update(msg)
	case m.view.Screen() == viewstate.ScreenSearch:
		m.search.name, cmd = m.search.name.Update(msg)
	case m.profile.focused != noInput:
		m.profile.inputs[m.profile.focused], cmd = m.profile.inputs[m.profile.focused].Update(msg)
	}
	return m, cmd
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type lookupMsg struct {
	ref     string
	profile *athlete.Profile
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func lookupCmd(ctx context.Context, src athlete.Source, ref string) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return lookupMsg{ref: ref, err: errors.New("no data source")}
		}
		ctx, cancel := context.WithTimeout(ctx, LookupTimeout)
		defer cancel()
		p, err := src.LookupProfile(ctx, ref)
		return lookupMsg{ref: ref, profile: p, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
