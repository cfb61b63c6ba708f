// Package config provides YAML-based game configuration loading with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/seabattle/internal/battle"
	"github.com/vovakirdan/seabattle/internal/fleet"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all configuration for a battleship game.
type Config struct {
	Players   PlayersConfig   `yaml:"players"`
	Opponent  OpponentConfig  `yaml:"opponent"`
	Placement PlacementConfig `yaml:"placement"`
	Fleet     fleet.Manifest  `yaml:"fleet"`
}

// PlayersConfig holds the names offered by the setup prompt.
type PlayersConfig struct {
	Name     string `yaml:"name"`
	Opponent string `yaml:"opponent"`
}

// OpponentConfig defines the computer opponent's pacing.
type OpponentConfig struct {
	DelayMS int `yaml:"delay_ms"` // Pause before each opponent shot
}

// PlacementConfig bounds the random fleet placement.
type PlacementConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // Random picks per pass
	MaxRestarts int `yaml:"max_restarts"` // Passes before giving up
}

// OpponentDelay returns the configured delay as a duration.
func (c Config) OpponentDelay() time.Duration {
	return time.Duration(c.Opponent.DelayMS) * time.Millisecond
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if c.Opponent.DelayMS < 0 {
		return fmt.Errorf("%w: opponent.delay_ms must not be negative, got %d", ErrInvalidConfig, c.Opponent.DelayMS)
	}
	if c.Placement.MaxAttempts < 0 {
		return fmt.Errorf("%w: placement.max_attempts must not be negative, got %d", ErrInvalidConfig, c.Placement.MaxAttempts)
	}
	if c.Placement.MaxRestarts < 0 {
		return fmt.Errorf("%w: placement.max_restarts must not be negative, got %d", ErrInvalidConfig, c.Placement.MaxRestarts)
	}
	if len(c.Fleet) > 0 {
		if err := c.Fleet.Validate(fleet.DefaultWidth, fleet.DefaultHeight); err != nil {
			return fmt.Errorf("%w: fleet: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ToBattle converts the configuration into session rules. The board is
// always the classic 10x10.
func (c Config) ToBattle() battle.Config {
	cfg := battle.DefaultConfig()
	cfg.OpponentDelay = c.OpponentDelay()
	cfg.MaxAttempts = c.Placement.MaxAttempts
	cfg.MaxRestarts = c.Placement.MaxRestarts
	if len(c.Fleet) > 0 {
		cfg.Manifest = c.Fleet.Clone()
	}
	return cfg
}
