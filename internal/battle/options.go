package battle

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/seabattle/internal/fleet"
)

// Config holds the game rules.
type Config struct {
	Width         int
	Height        int
	Manifest      fleet.Manifest
	OpponentDelay time.Duration // Pause before each opponent shot
	MaxAttempts   int           // Placement attempts per pass, 0 for the default
	MaxRestarts   int           // Placement passes, 0 for the default
}

// DefaultOpponentDelay is the pause before each opponent shot.
const DefaultOpponentDelay = 800 * time.Millisecond

// DefaultConfig returns the classic 10x10 game.
func DefaultConfig() Config {
	return Config{
		Width:         fleet.DefaultWidth,
		Height:        fleet.DefaultHeight,
		Manifest:      fleet.DefaultManifest(),
		OpponentDelay: DefaultOpponentDelay,
	}
}

// Option configures a Session.
type Option func(*Session)

// WithRenderer sets the presentation sink.
func WithRenderer(r Renderer) Option {
	return func(s *Session) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithScheduler sets how the delayed opponent turn is run.
func WithScheduler(sch Scheduler) Option {
	return func(s *Session) {
		if sch != nil {
			s.scheduler = sch
		}
	}
}

// WithRand sets the random source used for placement and opponent shots.
func WithRand(rng fleet.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRecorder sets where finished games are recorded.
func WithRecorder(r ResultRecorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithTurnListener registers a callback for turn transitions.
func WithTurnListener(fn TurnListener) Option {
	return func(s *Session) {
		s.listener = fn
	}
}

// WithClock overrides time.Now, used for match timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}
