package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/platform/tui"
	"github.com/vovakirdan/seabattle/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a battle in the terminal",
	Long: `Start a battle against the computer.

Controls:
  Arrows/hjkl  - Move the target cursor
  Space/Enter  - Fire (or left-click a cell on the target board)
  N            - New game
  S            - Match history
  Esc/B        - Back to the name prompt
  Q/Ctrl+C     - Quit

Examples:
  seabattle play
  seabattle play --name alice
  seabattle play --config ./my-fleet.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "name", "", "Player name offered by the setup prompt")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	// Logs would corrupt the alt screen, so they are dropped unless --log-file is set
	logger, closeLog := newLogger(io.Discard)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open match history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match history: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Store:  store,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Logger:     logger,
		PlayerName: flagPlayer,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
