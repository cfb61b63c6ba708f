package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/seabattle/internal/battle"
	"github.com/vovakirdan/seabattle/internal/config"
	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/fleet"
	"github.com/vovakirdan/seabattle/internal/storage"
)

// phase is the screen the model is showing.
type phase int

const (
	phaseSetup phase = iota
	phaseGame
	phaseHistory
)

const nameLimit = 24

// Options configures a Model.
type Options struct {
	Config  config.Config
	Store   *storage.Store // Optional, finished games are not recorded when nil
	Runtime core.RuntimeConfig
	Logger  *log.Logger

	// PlayerName overrides the configured player name in the setup prompt.
	PlayerName string
}

// Model is the Bubble Tea model for one player's battle: the name prompt,
// the game screen and the history screen.
type Model struct {
	opts    Options
	session *battle.Session
	view    *boardView
	sched   *teaScheduler
	screen  *core.Screen
	keys    *KeyMapper
	help    help.Model

	phase     phase
	setup     setupForm
	history   HistoryModel
	cursor    fleet.Coord
	status    string
	statusErr bool

	playerName   string
	opponentName string
	width        int
	height       int
	quitting     bool
}

// setupForm is the name prompt shown before the first game.
type setupForm struct {
	inputs [2]textinput.Model
	focus  int
	err    string
	keys   SetupKeyMap
}

// NewModel creates a model showing the name prompt.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}

	bcfg := opts.Config.ToBattle()
	view := newBoardView(bcfg.Width, bcfg.Height)
	sched := newTeaScheduler()

	sessOpts := []battle.Option{
		battle.WithRenderer(view),
		battle.WithScheduler(sched),
		battle.WithRand(opts.Runtime.NewRand()),
		battle.WithLogger(opts.Logger),
	}
	if opts.Store != nil {
		sessOpts = append(sessOpts, battle.WithRecorder(opts.Store))
	}

	playerName := opts.Config.Players.Name
	if opts.PlayerName != "" {
		playerName = opts.PlayerName
	}

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		opts:         opts,
		session:      battle.New(bcfg, sessOpts...),
		view:         view,
		sched:        sched,
		screen:       core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH-1),
		keys:         NewKeyMapper(),
		help:         h,
		setup:        newSetupForm(playerName, opts.Config.Players.Opponent),
		playerName:   playerName,
		opponentName: opts.Config.Players.Opponent,
		width:        opts.Runtime.ScreenW,
		height:       opts.Runtime.ScreenH,
	}
}

func newSetupForm(player, opponent string) setupForm {
	var f setupForm
	for i, value := range []string{player, opponent} {
		ti := textinput.New()
		ti.CharLimit = nameLimit
		ti.Width = nameLimit
		ti.Prompt = "> "
		ti.SetValue(value)
		f.inputs[i] = ti
	}
	f.inputs[0].Placeholder = "your name"
	f.inputs[1].Placeholder = "opponent name"
	f.inputs[0].Focus()
	f.keys = DefaultSetupKeyMap()
	return f
}

func (f *setupForm) setFocus(i int) {
	f.focus = core.Wrap(i, len(f.inputs))
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// Session returns the underlying battle session.
func (m Model) Session() *battle.Session {
	return m.session
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleResize(msg)
		if m.phase == phaseHistory {
			var hm tea.Model
			hm, cmd = m.history.Update(msg)
			m.history = hm.(HistoryModel)
		}

	case opponentShotMsg:
		if m.sched.fire(msg.id) {
			m.reportOpponentShot()
		}

	case tea.KeyMsg:
		switch m.phase {
		case phaseSetup:
			m, cmd = m.updateSetup(msg)
		case phaseGame:
			m, cmd = m.updateGame(msg)
		case phaseHistory:
			m, cmd = m.updateHistory(msg)
		}

	case tea.MouseMsg:
		if m.phase == phaseGame {
			m = m.handleMouse(msg)
		}

	default:
		if m.phase == phaseSetup {
			m.setup.inputs[m.setup.focus], cmd = m.setup.inputs[m.setup.focus].Update(msg)
		}
	}

	// Opponent turns scheduled by the session during this update
	return m, tea.Batch(cmd, m.sched.drain())
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, max(0, msg.Height-1))
	m.help.Width = msg.Width
	return m
}

func (m Model) updateSetup(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.setup
	switch {
	case key.Matches(msg, f.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, f.keys.Next):
		f.setFocus(f.focus + 1)
		return m, nil
	case key.Matches(msg, f.keys.Prev):
		f.setFocus(f.focus - 1)
		return m, nil
	case key.Matches(msg, f.keys.Submit):
		if f.focus == 0 && strings.TrimSpace(f.inputs[1].Value()) == "" {
			f.setFocus(1)
			return m, nil
		}
		m = m.startGame(f.inputs[0].Value(), f.inputs[1].Value())
		return m, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// startGame starts a new game. Rejected names send the model back to the
// prompt with the offending field focused.
func (m Model) startGame(player, opponent string) Model {
	err := m.session.StartNewGame(player, opponent)

	var verr *battle.ValidationError
	switch {
	case errors.As(err, &verr):
		m.phase = phaseSetup
		m.setup.err = fmt.Sprintf("The %s %s.", verr.Field, verr.Reason)
		if verr.Field == "opponent name" {
			m.setup.setFocus(1)
		} else {
			m.setup.setFocus(0)
		}
		return m
	case err != nil:
		m.opts.Logger.Error("cannot start game", "error", err)
		if m.phase == phaseSetup {
			m.setup.err = err.Error()
		} else {
			m.setStatus(err.Error(), true)
		}
		return m
	}

	m.playerName, m.opponentName = m.session.Names()
	m.setup.err = ""
	m.phase = phaseGame
	m.cursor = fleet.C(0, 0)
	m.setStatus("Fire at will!", false)
	return m
}

func (m Model) updateGame(msg tea.KeyMsg) (Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		w, h := m.session.Size()
		dr, dc := action.Delta()
		m.cursor = fleet.C(core.Wrap(m.cursor.Row+dr, h), core.Wrap(m.cursor.Col+dc, w))
	case core.ActionFire:
		m = m.fire(m.cursor)
	case core.ActionNewGame:
		m = m.startGame(m.playerName, m.opponentName)
	case core.ActionHistory:
		m.history = NewHistoryModel(m.opts.Store, m.playerName, m.width, m.height)
		m.phase = phaseHistory
	case core.ActionBack:
		m.setup = newSetupForm(m.playerName, m.opponentName)
		m.phase = phaseSetup
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (Model, tea.Cmd) {
	hm, cmd := m.history.Update(msg)
	m.history = hm.(HistoryModel)
	switch {
	case m.history.IsQuitting():
		m.quitting = true
	case m.history.IsGoingBack():
		m.phase = phaseGame
	}
	return m, cmd
}

// handleMouse fires at the target cell under a left click.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return m
	}
	c, ok := m.view.targetAt(msg.X, msg.Y, m.screen.Width(), m.screen.Height())
	if !ok {
		return m
	}
	m.cursor = c
	return m.fire(c)
}

// fire shoots at c. Input during the opponent's turn is ignored.
func (m Model) fire(c fleet.Coord) Model {
	switch m.session.TurnState() {
	case battle.TurnOpponent:
		return m
	case battle.TurnGameOver:
		m.setStatus("The battle is over. Press n for a new game.", false)
		return m
	}

	out, err := m.session.FireAtOpponent(c)
	switch {
	case errors.Is(err, battle.ErrAlreadyFired):
		m.setStatus(fmt.Sprintf("You already fired at %s.", c), true)
		return m
	case err != nil:
		m.setStatus(err.Error(), true)
		return m
	}

	switch {
	case out.GameOver:
		m.setStatus("You sank the whole fleet! Press n for a new game.", false)
	case out.Result == battle.ShotHit:
		m.setStatus(fmt.Sprintf("Hit at %s! Fire again.", c), false)
	default:
		m.setStatus(fmt.Sprintf("Miss at %s.", c), false)
	}
	return m
}

// reportOpponentShot describes the opponent's latest shot in the status line.
func (m *Model) reportOpponentShot() {
	if !m.view.hasLast[battle.SidePlayer] {
		return
	}
	c := m.view.last[battle.SidePlayer]
	result := "miss"
	if m.view.shotAt(battle.SidePlayer, c) == battle.Hit {
		result = "hit"
	}

	if winner, over := m.session.Winner(); over && winner == battle.SideOpponent {
		m.setStatus(fmt.Sprintf("%s sank your fleet. Press n for a new game.", m.opponentName), true)
		return
	}
	m.setStatus(fmt.Sprintf("%s fired at %s: %s.", m.opponentName, c, result), false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseSetup:
		return m.viewSetup()
	case phaseHistory:
		return m.history.View()
	}

	color := core.ColorStatus
	if m.statusErr {
		color = core.ColorError
	}
	m.view.draw(m.screen, m.cursor, m.status, color)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

func (m Model) viewSetup() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3)

	var b strings.Builder
	b.WriteString(titleStyle.Render("SEA BATTLE"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Your name"))
	b.WriteString("\n")
	b.WriteString(m.setup.inputs[0].View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Opponent"))
	b.WriteString("\n")
	b.WriteString(m.setup.inputs[1].View())
	if m.setup.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errStyle.Render(m.setup.err))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.setup.keys)))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(b.String()))
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
