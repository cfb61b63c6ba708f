package config

import (
	_ "embed"

	"github.com/vovakirdan/seabattle/internal/fleet"
)

//go:embed defaults/battleship.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when even the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Players: PlayersConfig{
			Name:     "Player",
			Opponent: "Computer",
		},
		Opponent: OpponentConfig{
			DelayMS: 800,
		},
		Placement: PlacementConfig{
			MaxAttempts: fleet.DefaultMaxAttempts,
			MaxRestarts: fleet.DefaultMaxRestarts,
		},
		Fleet: fleet.DefaultManifest(),
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
