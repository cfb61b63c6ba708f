package battle

import "github.com/vovakirdan/seabattle/internal/fleet"

// Renderer receives presentation updates from a Session. All methods are
// called with the session lock held, in the order the events happen.
type Renderer interface {
	// MarkCell reports a resolved shot on the board owned by board.
	MarkCell(board Side, c fleet.Coord, state CellShotState)

	// UpdateScoreboard reports new counters or a new turn state.
	UpdateScoreboard(sb Scoreboard)

	// OnShipMapReady hands over a fleet layout. The player's map arrives at
	// the start of every game; the opponent's map only once the game is over.
	OnShipMapReady(board Side, m fleet.ShipMap)
}

// NopRenderer discards all updates.
type NopRenderer struct{}

func (NopRenderer) MarkCell(Side, fleet.Coord, CellShotState) {}
func (NopRenderer) UpdateScoreboard(Scoreboard)                {}
func (NopRenderer) OnShipMapReady(Side, fleet.ShipMap)         {}

var _ Renderer = NopRenderer{}
