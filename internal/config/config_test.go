package config

import (
	"testing"

	"github.com/hexhive/hive-client/internal/game"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "ws://localhost:8080/play" {
		t.Fatalf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Role != "player" {
		t.Fatalf("Role = %q", cfg.Role)
	}
	assigned, err := cfg.AssignedPlayer()
	if err != nil {
		t.Fatalf("AssignedPlayer: %v", err)
	}
	if assigned != game.NoPlayer {
		t.Fatalf("assigned = %s, want hot-seat", assigned)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HIVE_SERVER_URL", "ws://game.example:9000/play")
	t.Setenv("HIVE_ROLE", "spectator")
	t.Setenv("HIVE_PLAYING_AS", "black")
	t.Setenv("HIVE_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "ws://game.example:9000/play" {
		t.Fatalf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Role != "spectator" || !cfg.Debug {
		t.Fatalf("cfg = %+v", cfg)
	}
	assigned, err := cfg.AssignedPlayer()
	if err != nil {
		t.Fatalf("AssignedPlayer: %v", err)
	}
	if assigned != game.Black {
		t.Fatalf("assigned = %s, want black", assigned)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("HIVE_ROLE", "referee")
	if _, err := Load(); err == nil {
		t.Fatal("unknown role accepted")
	}

	t.Setenv("HIVE_ROLE", "player")
	t.Setenv("HIVE_PLAYING_AS", "red")
	if _, err := Load(); err == nil {
		t.Fatal("unknown player accepted")
	}
}
