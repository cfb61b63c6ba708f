package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/seabattle/internal/storage"
)

func TestHistoryModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []storage.MatchRecord{
		{MatchID: "a", PlayerName: "Ann", OpponentName: "Bot", Winner: storage.WinnerPlayer, PlayerHits: 20, OpponentHits: 4, PlayerShots: 40, Duration: 125, CreatedAt: base},
		{MatchID: "b", PlayerName: "Ann", OpponentName: "Bot", Winner: storage.WinnerOpponent, PlayerHits: 9, OpponentHits: 20, PlayerShots: 40, CreatedAt: base.Add(time.Hour)},
		{MatchID: "c", PlayerName: "Ben", OpponentName: "Bot", Winner: storage.WinnerPlayer, PlayerHits: 20, PlayerShots: 30, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range records {
		if _, err := store.SaveMatch(r); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	m := NewHistoryModel(store, "Ann", 100, 30)
	if len(m.matches) != 2 {
		t.Fatalf("loaded %d matches, expected Ann's 2", len(m.matches))
	}
	if m.stats == nil || m.stats.Games != 2 || m.stats.Wins != 1 {
		t.Errorf("stats = %+v, expected 2 games and 1 win", m.stats)
	}
	if rows := m.table.Rows(); len(rows) != 2 || rows[0][3] != "Bot" || rows[1][6] != "2:05" {
		t.Errorf("rows = %v, expected newest first with formatted duration", rows)
	}

	view := m.View()
	for _, want := range []string{"MATCH HISTORY - Ann", "2 games, 1 won, 1 lost"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if !m.showAll || len(m.matches) != 3 {
		t.Errorf("tab should show all players, got %d matches", len(m.matches))
	}

	next, cmd := m.Update(runeKey("b"))
	m = next.(HistoryModel)
	if !m.IsGoingBack() || m.IsQuitting() || cmd != nil {
		t.Error("b should go back without quitting")
	}
}

func TestHistoryModelEmpty(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := NewHistoryModel(store, "Ann", 80, 24)
	if !strings.Contains(m.View(), "No battles recorded yet") {
		t.Error("empty history should show a placeholder")
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(HistoryModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{0: "0:00", 59: "0:59", 60: "1:00", 605: "10:05"}
	for secs, want := range tests {
		if got := formatDuration(secs); got != want {
			t.Errorf("formatDuration(%d) = %q, expected %q", secs, got, want)
		}
	}
}
