// seabattle is a terminal naval battle against a computer opponent.
//
// Usage:
//
//	seabattle play       - Play in the terminal
//	seabattle serve      - Start SSH server for remote play
//	seabattle history    - Show recorded matches
//	seabattle demo       - Let a bot play a few headless games
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible fleets and shots
//	--db <path>       - Set database path (default: ~/.seabattle/history.db)
//	--config <path>   - Use a custom battleship.yaml
//	--log-file <path> - Write logs to a file while the TUI is running
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/seabattle/internal/config"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "seabattle",
	Short: "Sea Battle - sink the computer's fleet in your terminal",
	Long: `Sea Battle is the classic naval guessing game played in the terminal
against a computer opponent.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  history  - Show recorded matches
  demo     - Let a bot play headless games

Examples:
  seabattle play
  seabattle play --seed 42
  seabattle serve --ssh :2222
  seabattle history --player alice
  seabattle demo --games 3 --delay 0s`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.seabattle/history.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom battleship.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(demoCmd)
}

// loadConfig reads .env and the game config, exiting on error.
func loadConfig() config.Config {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the CLI logger. When --log-file is set logs go there
// instead of fallback. The returned close function is never nil.
func newLogger(fallback io.Writer) (*log.Logger, func()) {
	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			out, closeFn = f, func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "seabattle",
	})
	return logger, closeFn
}
