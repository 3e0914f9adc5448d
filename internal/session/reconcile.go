package session

import (
	"fmt"

	"github.com/hexhive/hive-client/internal/game"
)

// ReceiveState reconciles a new authoritative snapshot against the
// previously held one: the held reference is replaced wholesale, the
// history tails are diffed to derive a user-facing notification, and the
// state machine advances to the next phase. Reconciling the same snapshot
// twice is a no-op.
func (s *Session) ReceiveState(next *game.GameState) {
	if next == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		s.game = next
		s.maybeStart()
		return
	}
	if s.role.Kind != RoleSpectator && !s.state.InGame() {
		return
	}

	prev := s.game
	s.game = next

	tail, ok := next.LastMove()
	prevTail, prevOk := prev.LastMove()
	if !ok || (prevOk && tail == prevTail) {
		// Duplicate or heartbeat update.
		return
	}

	if s.role.Kind == RoleSpectator {
		if next.HasEnded() {
			s.transition(GameEnd)
			s.emit(Event{Kind: EventGameEnded, Winner: next.Winner, WasSpectating: true})
		}
		s.notifyMovement(tail.Player, tail.Movement)
		return
	}

	opponent := game.NoPlayer
	if s.role.Assigned != game.NoPlayer {
		opponent = s.role.Assigned.Next()
	}
	wasOpponentMove := opponent != game.NoPlayer && tail.Player == opponent

	switch {
	case next.HasEnded():
		s.transition(GameEnd)
		s.emit(Event{Kind: EventGameEnded, Winner: next.Winner})
	case s.role.Assigned == game.NoPlayer:
		// Hot-seat: the local device plays every turn.
		s.transition(PlayerTurn)
	case wasOpponentMove:
		s.transition(PlayerTurn)
	default:
		s.transition(OpponentTurn)
	}

	if wasOpponentMove {
		s.notifyMovement(opponent, tail.Movement)
	}
}

// notifyMovement synthesizes the human-readable event for a move made by
// another participant. A yoink is described by the displaced unit's owner:
// relocating the mover's own unit reads as a move, displacing ours reads
// as a yoink. Callers hold mu.
func (s *Session) notifyMovement(mover game.Player, m game.Movement) {
	var text string
	var icon Icon
	switch m.Kind {
	case game.KindPass:
		text = fmt.Sprintf("%s passed", mover)
		icon = IconPass
	case game.KindPlace:
		text = fmt.Sprintf("%s placed their %s", mover, m.Piece.Class)
		icon = IconPlace
	case game.KindMove, game.KindYoink:
		if m.Piece.Owner == mover {
			text = fmt.Sprintf("%s moved their %s", mover, m.Piece.Class)
			icon = IconMove
		} else {
			text = fmt.Sprintf("%s yoinked your %s", mover, m.Piece.Class)
			icon = IconYoink
		}
	default:
		return
	}
	s.emit(Event{Kind: EventTurnNotification, Text: text, Icon: icon})
}
