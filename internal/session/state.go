// Package session is the turn-based game session controller. It owns the
// client-side notion of whose turn it is, turns gestures into validated
// and confirmable movements, transmits them, and reconciles authoritative
// updates from the server against the previously held state.
package session

import (
	"fmt"

	"github.com/hexhive/hive-client/internal/game"
)

// Phase enumerates the session flow states.
type Phase uint8

const (
	PhaseBegin Phase = iota
	PhaseGameStart
	PhasePlayerTurn
	PhaseOpponentTurn
	PhaseSending
	PhaseGameEnd
	PhaseForfeit
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseGameStart:
		return "gameStart"
	case PhasePlayerTurn:
		return "playerTurn"
	case PhaseOpponentTurn:
		return "opponentTurn"
	case PhaseSending:
		return "sendingMovement"
	case PhaseGameEnd:
		return "gameEnd"
	case PhaseForfeit:
		return "forfeit"
	default:
		return "unknown"
	}
}

// State is the session flow state. Movement is set only while
// Phase == PhaseSending and names the exact movement in flight.
type State struct {
	Phase    Phase
	Movement game.Movement
}

var (
	Begin        = State{Phase: PhaseBegin}
	GameStart    = State{Phase: PhaseGameStart}
	PlayerTurn   = State{Phase: PhasePlayerTurn}
	OpponentTurn = State{Phase: PhaseOpponentTurn}
	GameEnd      = State{Phase: PhaseGameEnd}
	Forfeited    = State{Phase: PhaseForfeit}
)

// Sending is the state carrying a movement in flight.
func Sending(m game.Movement) State {
	return State{Phase: PhaseSending, Movement: m}
}

// InGame reports whether play is underway.
func (s State) InGame() bool {
	switch s.Phase {
	case PhasePlayerTurn, PhaseOpponentTurn, PhaseSending:
		return true
	default:
		return false
	}
}

// HasGameEnded reports whether the session reached a terminal state.
func (s State) HasGameEnded() bool {
	return s.Phase == PhaseGameEnd || s.Phase == PhaseForfeit
}

func (s State) String() string {
	if s.Phase == PhaseSending {
		return fmt.Sprintf("sendingMovement(%s)", s.Movement)
	}
	return s.Phase.String()
}
