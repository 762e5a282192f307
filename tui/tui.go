// Package tui provides a Bubble Tea terminal UI for the dungeon engine.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/delvecore/engine"
	"github.com/nathoo/delvecore/engine/state"
	"github.com/nathoo/delvecore/types"
)

// Layout.
const (
	sidebarWidth = 34
	logHeight    = 8
	minMapCols   = 10
	minMapRows   = 5
)

// Starter builds a fresh engine for the chosen mode.
type Starter func(mode string) (*engine.Engine, error)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenUse
	screenPrompt
	screenConfirmQuit
	screenOver
)

// Model is the Bubble Tea model for the dungeon TUI.
type Model struct {
	engine  *engine.Engine
	start   Starter
	choices []string

	screen screen
	cursor int // menu entry or inventory slot, depending on screen

	keys    keyMap
	help    help.Model
	log     viewport.Model
	input   textinput.Model
	history *history

	notice []string // output of the last command that the game log does not hold
	err    error

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a model that opens on the mode-selection menu.
func New(choices []string, start Starter) Model {
	m := newModel()
	m.choices = choices
	m.start = start
	m.screen = screenMenu
	return m
}

// NewGame creates a model that skips the menu and plays eng.
func NewGame(eng *engine.Engine) Model {
	m := newModel()
	m.engine = eng
	m.screen = screenPlay
	return m
}

func newModel() Model {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.CharLimit = 64
	ti.PromptStyle = styleInputPrompt

	return Model{
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   ti,
		history: newHistory(50),
	}
}

// Run starts the Bubble Tea program.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles window resizes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.log = viewport.New(m.width, logHeight)
			m.log.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.log.Width = m.width
		}
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenPlay:
			return m.updatePlay(msg)
		case screenUse:
			return m.updateUse(msg)
		case screenPrompt:
			return m.updatePrompt(msg)
		case screenConfirmQuit:
			return m.updateConfirmQuit(msg)
		case screenOver:
			return m.updateOver(msg)
		}
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		return m.startGame(m.cursor)
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	default:
		if n, ok := digit(msg); ok && n <= len(m.choices) {
			return m.startGame(n - 1)
		}
	}
	return m, nil
}

func (m Model) startGame(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.choices) {
		return m, nil
	}
	eng, err := m.start(m.choices[i])
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.engine = eng
	m.notice = nil
	m.screen = screenPlay
	m.refreshLog()
	return m, nil
}

func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.do(types.Command{Kind: types.CmdMove, DY: -1}), nil
	case key.Matches(msg, m.keys.Down):
		return m.do(types.Command{Kind: types.CmdMove, DY: 1}), nil
	case key.Matches(msg, m.keys.Left):
		return m.do(types.Command{Kind: types.CmdMove, DX: -1}), nil
	case key.Matches(msg, m.keys.Right):
		return m.do(types.Command{Kind: types.CmdMove, DX: 1}), nil
	case key.Matches(msg, m.keys.Pickup):
		return m.do(types.Command{Kind: types.CmdPickup}), nil
	case key.Matches(msg, m.keys.Inventory):
		return m.do(types.Command{Kind: types.CmdInventory}), nil
	case key.Matches(msg, m.keys.Look):
		return m.do(types.Command{Kind: types.CmdLook}), nil
	case key.Matches(msg, m.keys.Use):
		if len(m.engine.State.Player.Inventory) == 0 {
			m.notice = []string{"You have nothing to use."}
			return m, nil
		}
		m.cursor = 0
		m.screen = screenUse
	case key.Matches(msg, m.keys.Prompt):
		m.screen = screenPrompt
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		m.screen = screenConfirmQuit
	default:
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateUse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inv := m.engine.State.Player.Inventory
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(inv)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Cancel):
		m.screen = screenPlay
	case msg.String() == "enter":
		m.screen = screenPlay
		return m.do(types.Command{Kind: types.CmdUse, Slot: m.cursor}), nil
	default:
		if n, ok := digit(msg); ok && n <= len(inv) {
			m.screen = screenPlay
			return m.do(types.Command{Kind: types.CmdUse, Slot: n - 1}), nil
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.history.reset()
		m.screen = screenPlay
		return m, nil

	case "enter":
		line := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		m.input.Blur()
		m.screen = screenPlay
		if line == "" {
			return m, nil
		}
		m.history.push(line)
		return m.submit(line)

	case "up":
		if prev, ok := m.history.older(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil

	case "down":
		if next, ok := m.history.newer(); ok {
			m.input.SetValue(next)
			m.input.CursorEnd()
		} else {
			m.input.SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs a line typed at the prompt: a meta-command or a game command.
func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	if strings.HasPrefix(line, "/") {
		switch strings.Fields(line)[0] {
		case "/quit", "/exit":
			m.screen = screenConfirmQuit
		case "/help":
			m.help.ShowAll = !m.help.ShowAll
		case "/state":
			m.notice = m.stateLines()
		default:
			m.notice = []string{fmt.Sprintf("Unknown command: %s", line)}
		}
		return m, nil
	}
	res := m.engine.Step(line)
	return m.apply(res), nil
}

func (m Model) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.screen = screenPlay
	}
	return m, nil
}

func (m Model) updateOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "enter" && m.start != nil:
		m.engine = nil
		m.notice = nil
		m.cursor = 0
		m.screen = screenMenu
	case key.Matches(msg, m.keys.Quit), msg.String() == "enter":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// do sends one command to the engine.
func (m Model) do(cmd types.Command) Model {
	return m.apply(m.engine.Do(cmd))
}

// apply records a command result and switches to the banner when the game
// has ended.
func (m Model) apply(res types.Result) Model {
	if res.Logged {
		m.notice = nil
	} else {
		m.notice = res.Output
	}
	if res.Status != types.StatusPlaying {
		m.screen = screenOver
	}
	m.refreshLog()
	return m
}

// refreshLog re-styles the game log and scrolls to the newest entry.
func (m *Model) refreshLog() {
	if !m.ready || m.engine == nil {
		return
	}
	lines := m.engine.LogTail(state.LogCapacity)
	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = renderLineKind(line, classifyLine(line))
	}
	m.log.SetContent(strings.Join(styled, "\n"))
	m.log.GotoBottom()
}

func (m Model) stateLines() []string {
	s := m.engine.State
	return []string{
		fmt.Sprintf("Mode: %s (%s)", s.Condition.Name(), s.Status),
		fmt.Sprintf("Turn: %d  NPCs: %d  Items on floor: %d", s.TurnCount, len(s.NPCs), len(s.World.Items)),
		fmt.Sprintf("RNG: seed %d, position %d", m.engine.RNG.Seed(), m.engine.RNG.Position()),
	}
}

// digit reports the value of a 1-9 key press.
func digit(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0'), true
	}
	return 0, false
}
