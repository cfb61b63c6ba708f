// Package tui provides the Bubble Tea front end for the battle: the board
// renderer, input mapping, setup and history screens, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/seabattle/internal/battle"
)

// opponentShotMsg is delivered when a scheduled opponent turn is due.
type opponentShotMsg struct {
	id uint64
}

// teaScheduler runs delayed session continuations on the Bubble Tea loop.
// AfterFunc queues a tea.Tick command; the model collects the queued
// commands with drain and calls fire when the tick message arrives, so the
// continuation runs on the same goroutine as Update.
type teaScheduler struct {
	next    uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[uint64]func())}
}

// AfterFunc implements battle.Scheduler.
func (t *teaScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t.next++
	id := t.next
	t.pending[id] = fn
	t.cmds = append(t.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return opponentShotMsg{id: id}
	}))
	return func() { delete(t.pending, id) }
}

// fire runs the continuation for id. Cancelled or unknown ids are ignored.
func (t *teaScheduler) fire(id uint64) bool {
	fn, ok := t.pending[id]
	if !ok {
		return false
	}
	delete(t.pending, id)
	fn()
	return true
}

// drain returns the commands queued since the last call.
func (t *teaScheduler) drain() tea.Cmd {
	if len(t.cmds) == 0 {
		return nil
	}
	cmds := t.cmds
	t.cmds = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

var _ battle.Scheduler = (*teaScheduler)(nil)
