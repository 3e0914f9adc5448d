// Package config loads client configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/hexhive/hive-client/internal/game"
)

// Config holds the client's runtime settings.
type Config struct {
	ServerURL   string `env:"HIVE_SERVER_URL" envDefault:"ws://localhost:8080/play"`
	DisplayName string `env:"HIVE_DISPLAY_NAME" envDefault:"guest"`
	// Role is "player" or "spectator".
	Role string `env:"HIVE_ROLE" envDefault:"player"`
	// PlayingAs is "white", "black", or empty for hot-seat play.
	PlayingAs string `env:"HIVE_PLAYING_AS"`
	Debug     bool   `env:"HIVE_DEBUG"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.Role != "player" && cfg.Role != "spectator" {
		return Config{}, fmt.Errorf("config: unknown role %q", cfg.Role)
	}
	if _, err := cfg.AssignedPlayer(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AssignedPlayer resolves PlayingAs to a player.
func (c Config) AssignedPlayer() (game.Player, error) {
	switch c.PlayingAs {
	case "white":
		return game.White, nil
	case "black":
		return game.Black, nil
	case "":
		return game.NoPlayer, nil
	default:
		return game.NoPlayer, fmt.Errorf("config: unknown player %q", c.PlayingAs)
	}
}
