package tui

import (
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the daemon's current debug-view state.
type State int

const (
	StateIdle State = iota
	StateSubmap
	StateError
)

// TriggerMatchedMsg reports that the handler matched a rule for an
// inbound key, carrying enough of the resolved action to summarize it.
type TriggerMatchedMsg struct {
	Trigger    string
	Suppressed bool
	Submap     bool
}

// SubmapClearedMsg reports that the active sub-map context fell back
// to top-level, either on no-match or timeout.
type SubmapClearedMsg struct{}

// ErrorMsg surfaces a non-fatal runtime error (e.g. a write to the
// uinput sink failed).
type ErrorMsg struct{ Err error }

type errorTimeoutMsg struct{}

// DebugEntry is a structured debug log entry.
type DebugEntry struct {
	Time     string
	Category string
	Message  string
}

// DebugLogMsg carries a structured debug log entry into the TUI.
type DebugLogMsg struct {
	Entry DebugEntry
}

const maxDebugLines = 50

// Model is the Bubble Tea model for the xremap-core debug status view.
type Model struct {
	State State

	Device       string
	ModmapCount  int
	KeymapCount  int
	LastTrigger  string
	SubmapActive bool
	LastError    string

	Logger       *log.Logger
	DebugMode    bool
	DebugEntries []DebugEntry

	themeName string
}

// NewModel creates a new TUI model for device, reporting table size.
func NewModel(device string, modmapCount, keymapCount int, logger *log.Logger, debug bool) Model {
	applyTheme(LoadTheme("synthwave"))
	return Model{
		Device:      device,
		ModmapCount: modmapCount,
		KeymapCount: keymapCount,
		Logger:      logger,
		DebugMode:   debug,
		themeName:   "synthwave",
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and transitions state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			next := NextTheme(m.themeName)
			applyTheme(next)
			m.themeName = strings.ToLower(next.Name)
		}

	case TriggerMatchedMsg:
		m.LastTrigger = msg.Trigger
		m.SubmapActive = msg.Submap
		if msg.Submap {
			m.State = StateSubmap
		} else {
			m.State = StateIdle
		}

	case SubmapClearedMsg:
		m.SubmapActive = false
		m.State = StateIdle

	case ErrorMsg:
		m.State = StateError
		m.LastError = msg.Err.Error()
		return m, scheduleErrorTimeout()

	case errorTimeoutMsg:
		m.State = StateIdle
		m.LastError = ""

	case DebugLogMsg:
		m.DebugEntries = append(m.DebugEntries, msg.Entry)
		if len(m.DebugEntries) > maxDebugLines {
			m.DebugEntries = m.DebugEntries[len(m.DebugEntries)-maxDebugLines:]
		}
	}

	return m, nil
}

func scheduleErrorTimeout() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return errorTimeoutMsg{}
	})
}
