// Package battle runs a single-player naval battle against a computer
// opponent: turn order, shot resolution, scoring and the delayed opponent
// turn. It knows nothing about terminals; presentation goes through the
// Renderer interface and timing through the Scheduler interface.
package battle

import (
	"fmt"
	"time"

	"github.com/vovakirdan/seabattle/internal/fleet"
)

// Side identifies one of the two participants. Used as a board argument it
// names the owner of the board.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "Player"
	case SideOpponent:
		return "Opponent"
	default:
		return "Unknown"
	}
}

// TurnState is the phase of the session state machine.
type TurnState int

const (
	// TurnIdle is the state before the first game has been started.
	TurnIdle TurnState = iota
	TurnPlayer
	TurnOpponent
	TurnGameOver
)

// String returns a human-readable name for the state.
func (t TurnState) String() string {
	switch t {
	case TurnIdle:
		return "Idle"
	case TurnPlayer:
		return "PlayerTurn"
	case TurnOpponent:
		return "OpponentTurn"
	case TurnGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// ShotResult is the outcome of a single shot.
type ShotResult int

const (
	ShotMiss ShotResult = iota
	ShotHit
)

// String returns a human-readable name for the result.
func (r ShotResult) String() string {
	switch r {
	case ShotMiss:
		return "Miss"
	case ShotHit:
		return "Hit"
	default:
		return "Unknown"
	}
}

// CellShotState records whether a board cell has been fired at.
type CellShotState int

const (
	Unfired CellShotState = iota
	Miss
	Hit
)

// String returns a human-readable name for the cell state.
func (c CellShotState) String() string {
	switch c {
	case Unfired:
		return "Unfired"
	case Miss:
		return "Miss"
	case Hit:
		return "Hit"
	default:
		return "Unknown"
	}
}

// Outcome describes a resolved shot.
type Outcome struct {
	Shooter  Side
	Coord    fleet.Coord
	Result   ShotResult
	GameOver bool
	Winner   Side // Valid only when GameOver is set
}

// Score holds the per-game counters.
type Score struct {
	PlayerHits    int
	OpponentHits  int
	PlayerShots   int
	OpponentShots int
}

// PlayerAccuracy returns the player's hit ratio, 0 when no shots were fired.
func (s Score) PlayerAccuracy() float64 {
	if s.PlayerShots == 0 {
		return 0
	}
	return float64(s.PlayerHits) / float64(s.PlayerShots)
}

// Scoreboard is everything a renderer needs for the status line.
type Scoreboard struct {
	Score        Score
	State        TurnState
	Winner       Side // Valid only in TurnGameOver
	PlayerName   string
	OpponentName string
	HitsForWin   int
}

// Label formats the toolbar text, e.g. "Score 3:5, your turn".
func (b Scoreboard) Label() string {
	score := fmt.Sprintf("Score %d:%d", b.Score.PlayerHits, b.Score.OpponentHits)
	switch b.State {
	case TurnPlayer:
		return score + ", your turn"
	case TurnOpponent:
		return score + ", opponent's turn"
	case TurnGameOver:
		if b.Winner == SidePlayer {
			return score + ", you won"
		}
		return fmt.Sprintf("%s, %s won", score, b.OpponentName)
	default:
		return "No game in progress"
	}
}

// MatchResult is the summary of a finished game handed to a ResultRecorder.
type MatchResult struct {
	MatchID      string
	PlayerName   string
	OpponentName string
	Winner       Side
	Score        Score
	HitsForWin   int
	StartedAt    time.Time
	Duration     time.Duration
}

// WinnerName returns the display name of the winning side.
func (r MatchResult) WinnerName() string {
	if r.Winner == SidePlayer {
		return r.PlayerName
	}
	return r.OpponentName
}

// ResultRecorder persists finished games.
type ResultRecorder interface {
	RecordMatch(result MatchResult) error
}

// TurnListener is notified of every turn transition, including the start of
// each game. It runs while the session lock is held and must not call back
// into the session.
type TurnListener func(state TurnState)
