package tui

import (
	"fmt"

	"github.com/vovakirdan/seabattle/internal/battle"
	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/fleet"
)

// Board layout constants
const (
	labelW   = 3 // Row number column
	cellW    = 3 // Columns per board cell
	boardGap = 4 // Space between the two boards
	sceneTop = 5 // Rows from the scene origin to the first grid row
)

// Cell glyphs
const (
	glyphWater = '~'
	glyphMiss  = '·'
	glyphHit   = 'X'
	glyphShip  = '■'
)

// boardView is the battle.Renderer used by the terminal UI. It keeps its own
// copy of everything it draws, so View never has to query the session.
type boardView struct {
	width  int
	height int

	shots    [2][]battle.CellShotState // Indexed by board owner
	own      fleet.ShipMap
	revealed fleet.ShipMap // Zero until the opponent's fleet is revealed
	last     [2]fleet.Coord
	hasLast  [2]bool
	sb       battle.Scoreboard
}

func newBoardView(width, height int) *boardView {
	b := &boardView{width: width, height: height}
	b.reset()
	return b
}

func (b *boardView) reset() {
	for i := range b.shots {
		b.shots[i] = make([]battle.CellShotState, b.width*b.height)
	}
	b.own = fleet.ShipMap{}
	b.revealed = fleet.ShipMap{}
	b.hasLast = [2]bool{}
}

// MarkCell implements battle.Renderer.
func (b *boardView) MarkCell(board battle.Side, c fleet.Coord, state battle.CellShotState) {
	if !b.inBounds(c) {
		return
	}
	b.shots[board][c.Row*b.width+c.Col] = state
	b.last[board] = c
	b.hasLast[board] = true
}

// UpdateScoreboard implements battle.Renderer.
func (b *boardView) UpdateScoreboard(sb battle.Scoreboard) {
	b.sb = sb
}

// OnShipMapReady implements battle.Renderer. The player's map marks the start
// of a new game and clears the previous one.
func (b *boardView) OnShipMapReady(board battle.Side, m fleet.ShipMap) {
	if board == battle.SidePlayer {
		b.width, b.height = m.Width(), m.Height()
		b.reset()
		b.own = m
		return
	}
	b.revealed = m
}

var _ battle.Renderer = (*boardView)(nil)

func (b *boardView) inBounds(c fleet.Coord) bool {
	return c.Row >= 0 && c.Row < b.height && c.Col >= 0 && c.Col < b.width
}

func (b *boardView) shotAt(board battle.Side, c fleet.Coord) battle.CellShotState {
	if !b.inBounds(c) {
		return battle.Unfired
	}
	return b.shots[board][c.Row*b.width+c.Col]
}

// blockW is the width of one board including labels and frame.
func (b *boardView) blockW() int {
	return labelW + b.width*cellW + 2
}

func (b *boardView) sceneW() int {
	return 2*b.blockW() + boardGap
}

func (b *boardView) sceneH() int {
	return sceneTop + b.height + 4
}

// origin returns the top-left corner of the scene centered on a w x h
// screen.
func (b *boardView) origin(w, h int) (x, y int) {
	return max(0, (w-b.sceneW())/2), max(0, (h-b.sceneH())/2)
}

// gridRect returns the screen area covered by the cells of board.
func (b *boardView) gridRect(board battle.Side, w, h int) core.Rect {
	ox, oy := b.origin(w, h)
	bx := ox + int(board)*(b.blockW()+boardGap)
	return core.NewRect(bx+labelW+1, oy+sceneTop, b.width*cellW, b.height)
}

// targetAt maps a screen position to a cell of the opponent's board.
func (b *boardView) targetAt(x, y, w, h int) (fleet.Coord, bool) {
	r := b.gridRect(battle.SideOpponent, w, h)
	if !r.Contains(x, y) {
		return fleet.Coord{}, false
	}
	return fleet.C(y-r.Y, (x-r.X)/cellW), true
}

// draw renders the whole scene. cursor is the aim on the opponent's board;
// status is an optional message shown under the scoreboard.
func (b *boardView) draw(s *core.Screen, cursor fleet.Coord, status string, statusColor core.Color) {
	s.Clear()
	ox, oy := b.origin(s.Width(), s.Height())

	title := "SEA BATTLE"
	s.DrawTextColored(ox+(b.sceneW()-len(title))/2, oy, title, core.ColorTitle)

	playerName, opponentName := b.sb.PlayerName, b.sb.OpponentName
	if playerName == "" {
		playerName = "Your"
	} else {
		playerName += "'s"
	}
	if opponentName == "" {
		opponentName = "Opponent"
	}
	b.drawBoard(s, battle.SidePlayer, playerName+" fleet", nil)
	b.drawBoard(s, battle.SideOpponent, opponentName+"'s waters", &cursor)

	footer := oy + sceneTop + b.height + 2
	s.DrawTextColored(ox, footer, b.sb.Label(), core.ColorStatus)
	if b.sb.State != battle.TurnIdle {
		hits := fmt.Sprintf("%d to win", b.sb.HitsForWin)
		s.DrawTextColored(ox+b.sceneW()-len(hits), footer, hits, core.ColorLabel)
	}
	if status != "" {
		s.DrawTextColored(ox, footer+1, status, statusColor)
	}
}

func (b *boardView) drawBoard(s *core.Screen, board battle.Side, caption string, cursor *fleet.Coord) {
	grid := b.gridRect(board, s.Width(), s.Height())
	bx := grid.X - labelW - 1

	captionX := bx + (b.blockW()-len([]rune(caption)))/2
	s.DrawTextColored(captionX, grid.Y-3, caption, core.ColorTitle)

	for col := range b.width {
		s.SetColored(grid.X+col*cellW+1, grid.Y-2, 'A'+rune(col), core.ColorLabel)
	}
	s.DrawBox(core.NewRect(grid.X-1, grid.Y-1, grid.W+2, grid.H+2), core.ColorLabel)

	for row := range b.height {
		s.DrawTextColored(bx, grid.Y+row, fmt.Sprintf("%2d", row+1), core.ColorLabel)
		for col := range b.width {
			c := fleet.C(row, col)
			r, color := b.glyph(board, c)
			x := grid.X + col*cellW
			s.SetColored(x+1, grid.Y+row, r, color)
			if b.hasLast[board] && b.last[board] == c {
				s.SetColored(x, grid.Y+row, '>', core.ColorCursor)
			}
		}
	}

	if cursor != nil && b.sb.State == battle.TurnPlayer && b.inBounds(*cursor) {
		x := grid.X + cursor.Col*cellW
		s.SetColored(x, grid.Y+cursor.Row, '[', core.ColorCursor)
		s.SetColored(x+2, grid.Y+cursor.Row, ']', core.ColorCursor)
	}
}

// glyph picks what to show for a cell. Ships are visible on the player's own
// board, and on the opponent's board once it has been revealed.
func (b *boardView) glyph(board battle.Side, c fleet.Coord) (rune, core.Color) {
	switch b.shotAt(board, c) {
	case battle.Hit:
		return glyphHit, core.ColorHit
	case battle.Miss:
		return glyphMiss, core.ColorMiss
	}

	fleetMap := b.own
	if board == battle.SideOpponent {
		fleetMap = b.revealed
	}
	if fleetMap.InBounds(c) && fleetMap.IsShip(c) {
		return glyphShip, core.ColorShip
	}
	return glyphWater, core.ColorWater
}
