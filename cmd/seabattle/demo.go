package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/seabattle/internal/battle"
	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/fleet"
	"github.com/vovakirdan/seabattle/internal/storage"
)

var (
	flagDemoGames  int
	flagDemoDelay  time.Duration
	flagDemoRecord bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch a bot play headless games",
	Long: `Run battles without a terminal UI. A bot fires at random cells on the
player's behalf while the computer opponent plays as usual, with its turns
delivered by real timers. Every shot is logged to stderr and a summary is
printed at the end.

Examples:
  seabattle demo
  seabattle demo --games 10 --delay 0s
  seabattle demo --record --db ./demo.db`,
	Args: cobra.NoArgs,
	Run:  runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagDemoGames, "games", 1, "Number of games to play")
	demoCmd.Flags().DurationVar(&flagDemoDelay, "delay", 50*time.Millisecond, "Opponent delay, overrides the config")
	demoCmd.Flags().BoolVar(&flagDemoRecord, "record", false, "Record finished games in the history database")
}

// shotLogger logs the opponent's shots. The player's shots are logged by the
// bot, which sees their outcomes directly.
type shotLogger struct {
	battle.NopRenderer
	log *log.Logger
}

func (r shotLogger) MarkCell(board battle.Side, c fleet.Coord, state battle.CellShotState) {
	if board == battle.SidePlayer {
		r.log.Info("opponent shot", "cell", c.String(), "result", state.String())
	}
}

type demoSummary struct {
	games       int
	playerWins  int
	playerShots int
}

func runDemo(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	cfg.Opponent.DelayMS = int(flagDemoDelay / time.Millisecond)

	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wakes the bot whenever the turn changes
	turns := make(chan battle.TurnState, 1)

	rt := core.RuntimeConfig{Seed: flagSeed}
	opts := []battle.Option{
		battle.WithRenderer(shotLogger{log: logger}),
		battle.WithScheduler(battle.TimerScheduler{}),
		battle.WithRand(rt.NewRand()),
		battle.WithLogger(logger),
		battle.WithTurnListener(func(ts battle.TurnState) {
			select {
			case turns <- ts:
			default:
			}
		}),
	}

	if flagDemoRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open match history: %v\n", err)
		} else {
			defer store.Close()
			opts = append(opts, battle.WithRecorder(store))
		}
	}

	session := battle.New(cfg.ToBattle(), opts...)
	// The bot gets its own stream so a fixed seed does not mirror the opponent
	if rt.Seed != 0 {
		rt.Seed++
	}
	bot := rt.NewRand()

	var sum demoSummary
	for range flagDemoGames {
		if err := playDemoGame(ctx, session, bot, cfg.Players.Name, cfg.Players.Opponent, turns, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		sum.games++
		sum.playerShots += session.Score().PlayerShots
		if winner, _ := session.Winner(); winner == battle.SidePlayer {
			sum.playerWins++
		}
	}

	fmt.Printf("Games played: %d\n", sum.games)
	if sum.games > 0 {
		fmt.Printf("Bot won:      %d\n", sum.playerWins)
		fmt.Printf("%s won: %d\n", cfg.Players.Opponent, sum.games-sum.playerWins)
		fmt.Printf("Avg shots:    %.1f\n", float64(sum.playerShots)/float64(sum.games))
	}
}

// playDemoGame plays one game to the end. The bot fires without repeating a
// cell and waits for the opponent's turns to finish.
func playDemoGame(ctx context.Context, s *battle.Session, rng fleet.Rand, player, opponent string, turns <-chan battle.TurnState, logger *log.Logger) error {
	if err := s.StartNewGame(player, opponent); err != nil {
		return err
	}

	w, h := s.Size()
	targets := fleet.NewShipMap(w, h).Coords()

	for {
		switch s.TurnState() {
		case battle.TurnGameOver:
			logger.Info("demo game finished", "result", s.Scoreboard().Label())
			return nil

		case battle.TurnPlayer:
			if len(targets) == 0 {
				return errors.New("bot ran out of targets")
			}
			i := rng.Intn(len(targets))
			c := targets[i]
			targets[i] = targets[len(targets)-1]
			targets = targets[:len(targets)-1]

			out, err := s.FireAtOpponent(c)
			if err != nil {
				return err
			}
			logger.Info("player shot", "cell", c.String(), "result", out.Result.String())

		default:
			select {
			case <-turns:
			case <-time.After(time.Second + 2*flagDemoDelay):
				// Poll in case a wake-up was dropped
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
