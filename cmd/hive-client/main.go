package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/hexhive/hive-client/internal/config"
	"github.com/hexhive/hive-client/internal/session"
	"github.com/hexhive/hive-client/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client := transport.New(cfg.ServerURL, logger.Named("transport"))

	var role session.Role
	if cfg.Role == "spectator" {
		role = session.SpectatorRole()
	} else {
		assigned, err := cfg.AssignedPlayer()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		role = session.PlayerRole(assigned, false)
	}

	sess := session.New(role, session.Options{
		Transport: client,
		Logger:    logger.Named("session"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Headless client: the "view" is ready immediately.
	sess.ContentReady()
	sess.InteractionsReady()

	if err := client.Open(ctx); err != nil {
		logger.Fatal("connect failed", zap.String("url", cfg.ServerURL), zap.Error(err))
	}
	go sess.Run(ctx)

	logger.Info("session started",
		zap.String("role", cfg.Role),
		zap.String("player", cfg.PlayingAs),
		zap.String("name", cfg.DisplayName),
	)

	for {
		select {
		case <-ctx.Done():
			client.Close(websocket.StatusNormalClosure, "client shutting down")
			return
		case ev := <-sess.Events():
			printEvent(logger, ev)
			if ev.Kind == session.EventGameEnded {
				client.Close(websocket.StatusNormalClosure, "game over")
				return
			}
		}
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printEvent(logger *zap.Logger, ev session.Event) {
	switch ev.Kind {
	case session.EventTurnNotification:
		fmt.Println(ev.Text)
	case session.EventMustPass:
		fmt.Println(ev.Text)
	case session.EventGameEnded:
		switch {
		case ev.WasSpectating:
			fmt.Printf("Game over: %s wins\n", ev.Winner)
		case ev.WasForfeit:
			fmt.Printf("Game forfeit: %s wins\n", ev.Winner)
		default:
			fmt.Printf("Game over: %s wins\n", ev.Winner)
		}
	case session.EventConnectionLost:
		logger.Warn("connection lost", zap.Int("code", ev.Code))
	default:
		logger.Debug("event", zap.Uint8("kind", uint8(ev.Kind)))
	}
}
