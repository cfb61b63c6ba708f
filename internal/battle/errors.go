package battle

import (
	"errors"
	"fmt"
)

// ErrInvalidTurn is the parent of every error caused by firing at the wrong
// time or at the wrong cell.
var ErrInvalidTurn = errors.New("battle: invalid turn")

var (
	ErrNoGame        = fmt.Errorf("%w: no game in progress", ErrInvalidTurn)
	ErrGameOver      = fmt.Errorf("%w: game is over", ErrInvalidTurn)
	ErrNotPlayerTurn = fmt.Errorf("%w: not the player's turn", ErrInvalidTurn)
	ErrAlreadyFired  = fmt.Errorf("%w: cell already fired at", ErrInvalidTurn)
)

// ErrOutOfBounds is returned for shots outside the board.
var ErrOutOfBounds = errors.New("battle: coordinate out of bounds")

// ValidationError reports bad user input such as an empty player name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("battle: %s %s", e.Field, e.Reason)
}
