package battle

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/seabattle/internal/fleet"
)

// Session is one player's battle against the computer. It is safe for
// concurrent use; every method takes the session lock.
type Session struct {
	mu sync.Mutex

	cfg       Config
	placer    *fleet.Placer
	rng       fleet.Rand
	renderer  Renderer
	scheduler Scheduler
	recorder  ResultRecorder
	listener  TurnListener
	log       *log.Logger
	now       func() time.Time

	state      TurnState
	generation uint64
	cancel     func() // Pending opponent continuation, nil when none

	playerName   string
	opponentName string
	maps         [2]fleet.ShipMap   // Indexed by owner
	shots        [2][]CellShotState // Shots received, indexed by board owner
	pool         []fleet.Coord      // Cells the opponent has not fired at yet
	score        Score
	hitsForWin   int
	winner       Side
	matchID      uuid.UUID
	startedAt    time.Time
}

// New creates an idle session. Zero fields of cfg take their defaults.
func New(cfg Config, opts ...Option) *Session {
	def := DefaultConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if len(cfg.Manifest) == 0 {
		cfg.Manifest = def.Manifest
	}
	if cfg.OpponentDelay < 0 {
		cfg.OpponentDelay = 0
	}

	placer := fleet.NewPlacer(cfg.Width, cfg.Height)
	if cfg.MaxAttempts > 0 {
		placer.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.MaxRestarts > 0 {
		placer.MaxRestarts = cfg.MaxRestarts
	}

	s := &Session{
		cfg:       cfg,
		placer:    placer,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		renderer:  NopRenderer{},
		scheduler: TimerScheduler{},
		log:       log.New(io.Discard),
		now:       time.Now,
		state:     TurnIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartNewGame abandons any game in progress and starts a fresh one with
// newly placed fleets. Names are trimmed and must not be empty. On error the
// session is left untouched.
func (s *Session) StartNewGame(playerName, opponentName string) error {
	playerName = strings.TrimSpace(playerName)
	opponentName = strings.TrimSpace(opponentName)
	if playerName == "" {
		return &ValidationError{Field: "player name", Reason: "must not be empty"}
	}
	if opponentName == "" {
		return &ValidationError{Field: "opponent name", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	playerMap, err := s.placer.Place(s.rng, s.cfg.Manifest)
	if err != nil {
		return fmt.Errorf("battle: place player fleet: %w", err)
	}
	opponentMap, err := s.placer.Place(s.rng, s.cfg.Manifest)
	if err != nil {
		return fmt.Errorf("battle: place opponent fleet: %w", err)
	}

	s.cancelPendingLocked()
	s.generation++

	cells := s.cfg.Width * s.cfg.Height
	s.playerName = playerName
	s.opponentName = opponentName
	s.maps = [2]fleet.ShipMap{SidePlayer: playerMap, SideOpponent: opponentMap}
	s.shots = [2][]CellShotState{
		SidePlayer:   make([]CellShotState, cells),
		SideOpponent: make([]CellShotState, cells),
	}
	s.pool = playerMap.Coords()
	s.score = Score{}
	s.hitsForWin = s.cfg.Manifest.TotalCells()
	s.winner = SidePlayer
	s.matchID = uuid.New()
	s.startedAt = s.now()
	s.state = TurnPlayer

	s.log.Info("new game",
		"match", s.matchID.String(),
		"player", playerName,
		"opponent", opponentName,
		"hits_for_win", s.hitsForWin,
	)

	s.renderer.OnShipMapReady(SidePlayer, playerMap.Clone())
	s.publishLocked(true)
	return nil
}

// FireAtOpponent fires the player's shot at c on the opponent's board. A hit
// keeps the turn; a miss passes it to the opponent, who fires after the
// configured delay.
func (s *Session) FireAtOpponent(c fleet.Coord) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case TurnIdle:
		return Outcome{}, ErrNoGame
	case TurnGameOver:
		return Outcome{}, ErrGameOver
	case TurnOpponent:
		return Outcome{}, ErrNotPlayerTurn
	}

	target := s.maps[SideOpponent]
	if !target.InBounds(c) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if s.shots[SideOpponent][s.index(c)] != Unfired {
		return Outcome{}, fmt.Errorf("%w: %s", ErrAlreadyFired, c)
	}

	out := s.resolveLocked(SidePlayer, c)
	switch {
	case out.GameOver:
	case out.Result == ShotMiss:
		s.state = TurnOpponent
		s.publishLocked(true)
		s.scheduleOpponentLocked()
	default:
		s.publishLocked(false)
	}
	return out, nil
}

// opponentTurn is the delayed continuation. gen pins it to the game that
// scheduled it; a continuation from an earlier game does nothing.
func (s *Session) opponentTurn(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.state != TurnOpponent {
		return
	}
	s.cancel = nil

	if len(s.pool) == 0 {
		s.log.Warn("opponent has no cells left to fire at", "match", s.matchID.String())
		s.state = TurnPlayer
		s.publishLocked(true)
		return
	}

	i := s.rng.Intn(len(s.pool))
	c := s.pool[i]
	last := len(s.pool) - 1
	s.pool[i] = s.pool[last]
	s.pool = s.pool[:last]

	out := s.resolveLocked(SideOpponent, c)
	switch {
	case out.GameOver:
	case out.Result == ShotMiss:
		s.state = TurnPlayer
		s.publishLocked(true)
	default:
		s.publishLocked(false)
		s.scheduleOpponentLocked()
	}
}

// resolveLocked applies a shot by shooter at c on the other side's board.
func (s *Session) resolveLocked(shooter Side, c fleet.Coord) Outcome {
	board := shooter.Other()
	out := Outcome{Shooter: shooter, Coord: c, Result: ShotMiss}
	state := Miss
	if s.maps[board].IsShip(c) {
		out.Result = ShotHit
		state = Hit
	}
	s.shots[board][s.index(c)] = state

	hits := s.countShotLocked(shooter, out.Result)
	s.log.Debug("shot", "shooter", shooter, "cell", c.String(), "result", out.Result)
	s.renderer.MarkCell(board, c, state)

	if hits >= s.hitsForWin {
		s.finishLocked(shooter)
		out.GameOver = true
		out.Winner = shooter
	}
	return out
}

// countShotLocked updates the counters and returns the shooter's hit total.
func (s *Session) countShotLocked(shooter Side, r ShotResult) int {
	if shooter == SidePlayer {
		s.score.PlayerShots++
		if r == ShotHit {
			s.score.PlayerHits++
		}
		return s.score.PlayerHits
	}
	s.score.OpponentShots++
	if r == ShotHit {
		s.score.OpponentHits++
	}
	return s.score.OpponentHits
}

func (s *Session) finishLocked(winner Side) {
	s.cancelPendingLocked()
	s.state = TurnGameOver
	s.winner = winner

	result := s.resultLocked()
	s.log.Info("game over",
		"match", result.MatchID,
		"winner", result.WinnerName(),
		"score", fmt.Sprintf("%d:%d", s.score.PlayerHits, s.score.OpponentHits),
		"duration", result.Duration.Round(time.Second),
	)

	s.renderer.OnShipMapReady(SideOpponent, s.maps[SideOpponent].Clone())
	s.publishLocked(true)

	if s.recorder != nil {
		if err := s.recorder.RecordMatch(result); err != nil {
			s.log.Warn("could not record match", "match", result.MatchID, "error", err)
		}
	}
}

func (s *Session) scheduleOpponentLocked() {
	gen := s.generation
	s.cancel = s.scheduler.AfterFunc(s.cfg.OpponentDelay, func() {
		s.opponentTurn(gen)
	})
}

func (s *Session) cancelPendingLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// publishLocked pushes the scoreboard and, if the turn changed, notifies the
// turn listener.
func (s *Session) publishLocked(turnChanged bool) {
	s.renderer.UpdateScoreboard(s.scoreboardLocked())
	if turnChanged && s.listener != nil {
		s.listener(s.state)
	}
}

func (s *Session) scoreboardLocked() Scoreboard {
	return Scoreboard{
		Score:        s.score,
		State:        s.state,
		Winner:       s.winner,
		PlayerName:   s.playerName,
		OpponentName: s.opponentName,
		HitsForWin:   s.hitsForWin,
	}
}

func (s *Session) resultLocked() MatchResult {
	return MatchResult{
		MatchID:      s.matchID.String(),
		PlayerName:   s.playerName,
		OpponentName: s.opponentName,
		Winner:       s.winner,
		Score:        s.score,
		HitsForWin:   s.hitsForWin,
		StartedAt:    s.startedAt,
		Duration:     s.now().Sub(s.startedAt),
	}
}

func (s *Session) index(c fleet.Coord) int {
	return c.Row*s.cfg.Width + c.Col
}

// Score returns the current counters.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Scoreboard returns the current status line data.
func (s *Session) Scoreboard() Scoreboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoreboardLocked()
}

// TurnState returns the current phase.
func (s *Session) TurnState() TurnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsGameOver reports whether the current game has been won.
func (s *Session) IsGameOver() bool {
	return s.TurnState() == TurnGameOver
}

// Winner returns the winning side once the game is over.
func (s *Session) Winner() (Side, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != TurnGameOver {
		return 0, false
	}
	return s.winner, true
}

// HitsForWin returns the number of hits needed to win the current game.
func (s *Session) HitsForWin() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hitsForWin
}

// PoolSize returns how many cells the opponent has not fired at yet.
func (s *Session) PoolSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool)
}

// MatchID returns the id of the current game, empty before the first game.
func (s *Session) MatchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == TurnIdle {
		return ""
	}
	return s.matchID.String()
}

// Names returns the player and opponent names of the current game.
func (s *Session) Names() (player, opponent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerName, s.opponentName
}

// Size returns the board dimensions.
func (s *Session) Size() (width, height int) {
	return s.cfg.Width, s.cfg.Height
}

// ShotState returns what is known about cell c on the board owned by board.
func (s *Session) ShotState(board Side, c fleet.Coord) CellShotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == TurnIdle || c.Row < 0 || c.Row >= s.cfg.Height || c.Col < 0 || c.Col >= s.cfg.Width {
		return Unfired
	}
	return s.shots[board][s.index(c)]
}

// PlayerShipMap returns a copy of the player's fleet.
func (s *Session) PlayerShipMap() fleet.ShipMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maps[SidePlayer].Clone()
}

// OpponentShipMap returns a copy of the opponent's fleet. It is only
// available once the game is over.
func (s *Session) OpponentShipMap() (fleet.ShipMap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != TurnGameOver {
		return fleet.ShipMap{}, false
	}
	return s.maps[SideOpponent].Clone(), true
}
