package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/seabattle/internal/battle"
	"github.com/vovakirdan/seabattle/internal/config"
	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/fleet"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Opponent.DelayMS = 10
	return NewModel(Options{
		Config:  cfg,
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: 7},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// startedModel returns a model that has passed the name prompt.
func startedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseGame {
		t.Fatalf("phase = %d after submitting names, expected game (err %q)", m.phase, m.setup.err)
	}
	return m
}

// missOnce fires along the board until a shot misses.
func missOnce(t *testing.T, m Model) Model {
	t.Helper()
	w, h := m.session.Size()
	for i := range w * h {
		c := fleet.C(i/w, i%w)
		if m.session.ShotState(battle.SideOpponent, c) != battle.Unfired {
			continue
		}
		m = m.fire(c)
		if m.session.TurnState() == battle.TurnOpponent {
			return m
		}
	}
	t.Fatal("no miss found")
	return m
}

func TestSetupPrefillsNames(t *testing.T) {
	m := newTestModel(t)
	if m.phase != phaseSetup {
		t.Fatalf("phase = %d, expected setup", m.phase)
	}
	if got := m.setup.inputs[0].Value(); got != "Player" {
		t.Errorf("player input = %q, expected config default", got)
	}
	if got := m.setup.inputs[1].Value(); got != "Computer" {
		t.Errorf("opponent input = %q, expected config default", got)
	}

	cfg := config.Default()
	m = NewModel(Options{Config: cfg, PlayerName: "alice"})
	if got := m.setup.inputs[0].Value(); got != "alice" {
		t.Errorf("player input = %q, expected override", got)
	}
	if !strings.Contains(m.View(), "SEA BATTLE") {
		t.Error("setup view should show the title")
	}
}

func TestSetupRejectsEmptyName(t *testing.T) {
	m := newTestModel(t)
	m.setup.inputs[1].SetValue("   ")
	m.setup.setFocus(1)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseSetup {
		t.Fatal("empty opponent name should keep the prompt open")
	}
	if !strings.Contains(m.setup.err, "opponent name") {
		t.Errorf("setup error = %q, expected it to name the field", m.setup.err)
	}
	if m.setup.focus != 1 {
		t.Errorf("focus = %d, expected the rejected field", m.setup.focus)
	}
	if m.session.TurnState() != battle.TurnIdle {
		t.Error("session should not start with an invalid name")
	}
}

func TestSetupFocusCycles(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.setup.focus != 1 {
		t.Errorf("focus = %d after tab, expected 1", m.setup.focus)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.setup.focus != 0 {
		t.Errorf("focus = %d after second tab, expected 0", m.setup.focus)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.setup.focus != 1 {
		t.Errorf("focus = %d after shift+tab, expected 1", m.setup.focus)
	}
}

func TestStartGame(t *testing.T) {
	m := startedModel(t)

	if m.session.TurnState() != battle.TurnPlayer {
		t.Errorf("TurnState = %v, expected player turn", m.session.TurnState())
	}
	if m.view.own.ShipCells() != 20 {
		t.Errorf("view fleet has %d cells, expected 20", m.view.own.ShipCells())
	}
	if m.playerName != "Player" || m.opponentName != "Computer" {
		t.Errorf("names = %q/%q, expected the submitted names", m.playerName, m.opponentName)
	}

	view := m.View()
	for _, want := range []string{"Player's fleet", "Computer's waters", "your turn"} {
		if !strings.Contains(view, want) {
			t.Errorf("game view missing %q", want)
		}
	}
}

func TestCursorMovementWraps(t *testing.T) {
	m := startedModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != fleet.C(9, 0) {
		t.Errorf("cursor = %v after up from top, expected wrap to bottom", m.cursor)
	}
	m, _ = update(t, m, runeKey("h"))
	if m.cursor != fleet.C(9, 9) {
		t.Errorf("cursor = %v after h from left edge, expected wrap to right", m.cursor)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, runeKey("j"))
	if m.cursor != fleet.C(0, 0) {
		t.Errorf("cursor = %v, expected wrap back to A1", m.cursor)
	}
}

func TestFireWithKey(t *testing.T) {
	m := startedModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.session.ShotState(battle.SideOpponent, fleet.C(0, 0)) == battle.Unfired {
		t.Fatal("space should fire at the cursor")
	}
	if m.view.shotAt(battle.SideOpponent, fleet.C(0, 0)) == battle.Unfired {
		t.Error("view should mark the fired cell")
	}
	if m.status == "" {
		t.Error("a shot should update the status line")
	}
}

func TestRepeatShotReportsError(t *testing.T) {
	m := startedModel(t)
	m = m.fire(fleet.C(0, 0))
	if m.session.TurnState() != battle.TurnPlayer {
		t.Skip("first shot missed, covered by the opponent turn test")
	}
	m = m.fire(fleet.C(0, 0))
	if !m.statusErr || !strings.Contains(m.status, "already fired") {
		t.Errorf("status = %q (err %v), expected a repeat-shot error", m.status, m.statusErr)
	}
}

func TestOpponentTurnRunsOnTick(t *testing.T) {
	m := startedModel(t)
	m = missOnce(t, m)

	if len(m.sched.pending) != 1 {
		t.Fatalf("pending continuations = %d, expected 1", len(m.sched.pending))
	}
	if cmd := m.sched.drain(); cmd == nil {
		t.Fatal("a miss should queue a tick command")
	}

	// Input is ignored while the opponent is aiming
	fired := m.session.Score().PlayerShots
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Score().PlayerShots != fired {
		t.Error("fire during the opponent's turn should be ignored")
	}

	// Unknown ids are ignored
	m, _ = update(t, m, opponentShotMsg{id: 999})
	if m.session.PoolSize() != 100 {
		t.Errorf("PoolSize = %d after a stray tick, expected 100", m.session.PoolSize())
	}

	m, _ = update(t, m, opponentShotMsg{id: m.sched.next})
	if m.session.PoolSize() != 99 {
		t.Errorf("PoolSize = %d after the opponent shot, expected 99", m.session.PoolSize())
	}
	if !m.view.hasLast[battle.SidePlayer] {
		t.Error("view should mark the opponent's shot on the player's board")
	}
	if !strings.Contains(m.status, "Computer fired at") {
		t.Errorf("status = %q, expected the opponent's shot", m.status)
	}
}

func TestNewGameCancelsPendingTurn(t *testing.T) {
	m := startedModel(t)
	first := m.session.MatchID()
	m = missOnce(t, m)
	pendingID := m.sched.next

	m, _ = update(t, m, runeKey("n"))
	if m.session.MatchID() == first {
		t.Error("n should start a new match")
	}
	if len(m.sched.pending) != 0 {
		t.Errorf("pending continuations = %d, expected the old one cancelled", len(m.sched.pending))
	}

	m, _ = update(t, m, opponentShotMsg{id: pendingID})
	if m.session.PoolSize() != 100 || m.session.TurnState() != battle.TurnPlayer {
		t.Error("a cancelled continuation must not touch the new game")
	}
}

func TestMouseClickFires(t *testing.T) {
	m := startedModel(t)

	grid := m.view.gridRect(battle.SideOpponent, m.screen.Width(), m.screen.Height())
	click := tea.MouseMsg{
		X:      grid.X + 2*cellW + 1,
		Y:      grid.Y + 3,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}
	m, _ = update(t, m, click)

	want := fleet.C(3, 2)
	if m.cursor != want {
		t.Errorf("cursor = %v, expected %v", m.cursor, want)
	}
	if m.session.ShotState(battle.SideOpponent, want) == battle.Unfired {
		t.Error("left click should fire at the clicked cell")
	}

	// Clicks on the player's own board do nothing
	own := m.view.gridRect(battle.SidePlayer, m.screen.Width(), m.screen.Height())
	shots := m.session.Score().PlayerShots
	m, _ = update(t, m, tea.MouseMsg{X: own.X, Y: own.Y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if m.session.Score().PlayerShots != shots {
		t.Error("click outside the target board should not fire")
	}
}

func TestHistoryScreenRoundTrip(t *testing.T) {
	m := startedModel(t)

	m, _ = update(t, m, runeKey("s"))
	if m.phase != phaseHistory {
		t.Fatalf("phase = %d, expected history", m.phase)
	}
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("history without a store should say so")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.phase != phaseGame {
		t.Errorf("phase = %d after esc, expected game", m.phase)
	}
}

func TestQuit(t *testing.T) {
	m := startedModel(t)
	m, cmd := update(t, m, runeKey("q"))
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestResize(t *testing.T) {
	m := startedModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
}
