package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nowplaying/internal/lanyard"
	"github.com/five82/nowplaying/internal/presence"
)

// Controller is the part of the synchronizer the TUI talks to.
type Controller interface {
	AttachPanel(presence.Panel) error
	DetachPanel()
	Dispatch(ctx context.Context, intent presence.Intent) error
	Snapshot() presence.Snapshot
}

// viewMode is what the main area shows.
type viewMode int

const (
	modePending viewMode = iota
	modeConfig
	modePlaying
	modeIdle
)

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusSuccess
	statusError
)

type statusLine struct {
	kind statusKind
	text string
}

const (
	messageValidating = "Validating..."
	messageValidated  = "Discord ID validated successfully!"
	messageIdle       = "Not currently playing any music on Spotify."
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller Controller
	ThemeName  string
	SaveTheme  func(name string) error // nil skips persisting theme changes
	CopyText   func(text string) error // nil uses the system clipboard
	Tick       time.Duration

	// Decorate wraps the panel before it is attached, e.g. to add
	// notifications. nil attaches the TUI panel as is.
	Decorate func(presence.Panel) presence.Panel
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      Controller
	panel     presence.Panel
	keys      keyMap
	saveTheme func(string) error
	copyText  func(string) error
	tick      time.Duration
	now       func() time.Time

	// UI state
	theme    Theme
	width    int
	height   int
	mode     viewMode
	compact  bool
	showHelp bool
	status   statusLine

	// Data state
	track      lanyard.Track
	snapshot   presence.Snapshot
	validating bool

	// Components
	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultThemeName
	}

	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	input := textinput.New()
	input.Placeholder = "Discord user ID"
	input.CharLimit = 32
	input.Width = 24
	input.Prompt = "› "

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		keys:      DefaultKeyMap(),
		saveTheme: opts.SaveTheme,
		copyText:  copyText,
		tick:      tick,
		now:       time.Now,
		mode:      modePending,
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress:  progress.New(progress.WithoutPercentage(), progress.WithWidth(40)),
	}
	m.applyTheme(GetTheme(themeName))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(m.tick),
	}
	if m.ctrl != nil && m.panel != nil {
		cmds = append(cmds, attachCmd(m.ctrl, m.panel))
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
		m.progress.Width = minInt(ProgressMaxWidth, maxInt(10, m.width-24))
		return m, nil

	case signalMsg:
		return m.handleSignal(msg.signal)

	case tickMsg:
		if m.ctrl != nil {
			m.snapshot = m.ctrl.Snapshot()
		}
		return m, tickCmd(m.tick)

	case spinner.TickMsg:
		if m.mode != modePending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case attachedMsg:
		if msg.err != nil {
			m.status = statusLine{kind: statusError, text: "Could not start: " + msg.err.Error()}
		}
		return m, nil

	case intentDoneMsg:
		return m.handleIntentDone(msg)

	case copiedMsg:
		if msg.err != nil {
			m.status = statusLine{kind: statusError, text: "Copy failed: " + msg.err.Error()}
		} else {
			m.status = statusLine{kind: statusSuccess, text: "Copied " + msg.text}
		}
		return m, nil
	}

	if m.mode == modeConfig {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.compact {
		return m.renderCompact()
	}
	return m.renderMain()
}

// handleSignal applies a render signal from the synchronizer.
func (m Model) handleSignal(sig presence.Signal) (tea.Model, tea.Cmd) {
	switch s := sig.(type) {
	case presence.Update:
		m.mode = modePlaying
		m.track = s.Track
		m.clearStatus()
		m.input.Blur()
	case presence.NotPlaying:
		m.mode = modeIdle
		m.track = lanyard.Track{}
		m.clearStatus()
		m.input.Blur()
	case presence.ShowConfig:
		// The form needs the full view.
		m.compact = false
		m.mode = modeConfig
		m.track = lanyard.Track{}
		m.validating = false
		m.status = statusLine{}
		m.input.Reset()
		return m, m.input.Focus()
	case presence.IDValidated:
		m.validating = false
		m.status = statusLine{kind: statusSuccess, text: messageValidated}
		m.input.Blur()
	case presence.Error:
		m.validating = false
		m.status = statusLine{kind: statusError, text: s.Message}
	}
	if m.ctrl != nil {
		m.snapshot = m.ctrl.Snapshot()
	}
	return m, nil
}

// clearStatus drops error and success lines once fresh presence arrives.
// Info lines such as "Validating..." stay until their intent completes.
func (m *Model) clearStatus() {
	if m.status.kind == statusError || m.status.kind == statusSuccess {
		m.status = statusLine{}
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.mode == modeConfig {
		return m.handleConfigKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		if m.saveTheme != nil {
			if err := m.saveTheme(m.theme.Name); err != nil {
				m.status = statusLine{kind: statusError, text: "Could not save theme: " + err.Error()}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
		return m, nil

	case key.Matches(msg, m.keys.ChangeID):
		return m, m.dispatch(presence.ChangeDiscordID{})

	case key.Matches(msg, m.keys.OpenTrack):
		if link := m.track.URL(); m.mode == modePlaying && link != "" {
			return m, m.dispatch(presence.OpenLink{URL: link})
		}

	case key.Matches(msg, m.keys.OpenArtist):
		if link := m.track.ArtistSearchURL(); m.mode == modePlaying && link != "" {
			return m, m.dispatch(presence.OpenLink{URL: link})
		}

	case key.Matches(msg, m.keys.CopyLink):
		if link := m.track.URL(); m.mode == modePlaying && link != "" {
			return m, copyCmd(m.copyText, link)
		}
	}

	return m, nil
}

// handleConfigKey routes keys to the Discord ID form.
func (m Model) handleConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		if m.validating {
			return m, nil
		}
		id := strings.TrimSpace(m.input.Value())
		if id == "" {
			m.status = statusLine{kind: statusError, text: presence.MessageEmptyIdentifier}
			return m, nil
		}
		m.validating = true
		m.status = statusLine{kind: statusInfo, text: messageValidating}
		return m, m.dispatch(presence.SetDiscordID{ID: id})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleIntentDone reports failures the synchronizer does not signal itself.
func (m Model) handleIntentDone(msg intentDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		return m, nil
	}
	switch msg.intent.(type) {
	case presence.SetDiscordID:
		// Validation failures arrive as an Error signal.
		m.validating = false
	case presence.OpenLink:
		m.status = statusLine{kind: statusError, text: "Could not open link: " + msg.err.Error()}
	default:
		m.status = statusLine{kind: statusError, text: msg.err.Error()}
	}
	return m, nil
}

func (m *Model) applyTheme(th Theme) {
	m.theme = th
	m.progress.FullColor = th.Accent
	m.progress.EmptyColor = th.SurfaceAlt
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent))
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent))
	m.input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text))
	m.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Faint))
}

// dispatch sends an intent from a command goroutine so Update never blocks
// on the synchronizer.
func (m Model) dispatch(intent presence.Intent) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return intentDoneMsg{intent: intent, err: ctrl.Dispatch(ctx, intent)}
	}
}

// Messages

type tickMsg time.Time

type signalMsg struct {
	signal presence.Signal
}

type attachedMsg struct {
	err error
}

type intentDoneMsg struct {
	intent presence.Intent
	err    error
}

type copiedMsg struct {
	text string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func attachCmd(ctrl Controller, panel presence.Panel) tea.Cmd {
	return func() tea.Msg {
		return attachedMsg{err: ctrl.AttachPanel(panel)}
	}
}

func copyCmd(copyText func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: copyText(text)}
	}
}
