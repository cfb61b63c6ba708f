package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/seabattle/internal/battle"
	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/fleet"
)

func testFleet(t *testing.T) fleet.ShipMap {
	t.Helper()
	m, err := fleet.ParseShipMap("#..\n...\n.##")
	if err != nil {
		t.Fatalf("ParseShipMap() failed: %v", err)
	}
	return m
}

func TestBoardViewMarks(t *testing.T) {
	b := newBoardView(3, 3)
	b.OnShipMapReady(battle.SidePlayer, testFleet(t))

	if r, c := b.glyph(battle.SidePlayer, fleet.C(0, 0)); r != glyphShip || c != core.ColorShip {
		t.Errorf("own ship glyph = %q/%v, expected ship", r, c)
	}
	if r, _ := b.glyph(battle.SidePlayer, fleet.C(1, 1)); r != glyphWater {
		t.Errorf("own water glyph = %q, expected water", r)
	}

	b.MarkCell(battle.SidePlayer, fleet.C(0, 0), battle.Hit)
	b.MarkCell(battle.SideOpponent, fleet.C(2, 2), battle.Miss)
	b.MarkCell(battle.SideOpponent, fleet.C(5, 5), battle.Hit) // Off the board, dropped

	if r, c := b.glyph(battle.SidePlayer, fleet.C(0, 0)); r != glyphHit || c != core.ColorHit {
		t.Errorf("hit glyph = %q/%v, expected hit", r, c)
	}
	if r, _ := b.glyph(battle.SideOpponent, fleet.C(2, 2)); r != glyphMiss {
		t.Errorf("miss glyph = %q, expected miss", r)
	}
	if !b.hasLast[battle.SideOpponent] || b.last[battle.SideOpponent] != fleet.C(2, 2) {
		t.Errorf("last opponent-board mark = %v, expected C3", b.last[battle.SideOpponent])
	}
}

func TestBoardViewRevealAndReset(t *testing.T) {
	b := newBoardView(3, 3)
	b.OnShipMapReady(battle.SidePlayer, testFleet(t))

	if r, _ := b.glyph(battle.SideOpponent, fleet.C(2, 1)); r != glyphWater {
		t.Error("opponent ships must stay hidden before the reveal")
	}
	b.OnShipMapReady(battle.SideOpponent, testFleet(t))
	if r, _ := b.glyph(battle.SideOpponent, fleet.C(2, 1)); r != glyphShip {
		t.Error("revealed opponent ships should be drawn")
	}

	b.MarkCell(battle.SidePlayer, fleet.C(1, 1), battle.Miss)
	b.OnShipMapReady(battle.SidePlayer, testFleet(t))
	if b.shotAt(battle.SidePlayer, fleet.C(1, 1)) != battle.Unfired {
		t.Error("a new player map should clear the previous marks")
	}
	if b.revealed.Width() != 0 || b.hasLast[battle.SidePlayer] {
		t.Error("a new player map should hide the opponent fleet again")
	}
}

func TestBoardViewTargetAt(t *testing.T) {
	b := newBoardView(10, 10)
	const w, h = 100, 29

	grid := b.gridRect(battle.SideOpponent, w, h)
	tests := []struct {
		name string
		x, y int
		want fleet.Coord
		ok   bool
	}{
		{"top left", grid.X, grid.Y, fleet.C(0, 0), true},
		{"inside cell", grid.X + 4, grid.Y + 1, fleet.C(1, 1), true},
		{"bottom right", grid.Right() - 1, grid.Bottom() - 1, fleet.C(9, 9), true},
		{"left of grid", grid.X - 1, grid.Y, fleet.Coord{}, false},
		{"below grid", grid.X, grid.Bottom(), fleet.Coord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.targetAt(tt.x, tt.y, w, h)
			if ok != tt.ok || got != tt.want {
				t.Errorf("targetAt(%d, %d) = %v, %v; expected %v, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
			}
		})
	}

	own := b.gridRect(battle.SidePlayer, w, h)
	if _, ok := b.targetAt(own.X, own.Y, w, h); ok {
		t.Error("the player's own board is not a target")
	}
}

func TestBoardViewDraw(t *testing.T) {
	b := newBoardView(10, 10)
	b.UpdateScoreboard(battle.Scoreboard{
		State:        battle.TurnPlayer,
		PlayerName:   "Ann",
		OpponentName: "Bot",
		HitsForWin:   20,
	})

	s := core.NewScreen(100, 29)
	b.draw(s, fleet.C(0, 0), "Fire at will!", core.ColorStatus)
	text := s.String()

	for _, want := range []string{"SEA BATTLE", "Ann's fleet", "Bot's waters", "Score 0:0, your turn", "20 to win", "Fire at will!"} {
		if !strings.Contains(text, want) {
			t.Errorf("scene missing %q", want)
		}
	}

	grid := b.gridRect(battle.SideOpponent, s.Width(), s.Height())
	if s.Get(grid.X, grid.Y) != '[' || s.Get(grid.X+2, grid.Y) != ']' {
		t.Error("cursor brackets should surround the aimed cell")
	}
	if s.GetCell(grid.X+1, grid.Y).Color != core.ColorWater {
		t.Error("unfired cells should be drawn as water")
	}
}
