package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hexhive/hive-client/internal/game"
	"github.com/hexhive/hive-client/internal/hex"
	"github.com/hexhive/hive-client/internal/proto"
)

// SelectFromHand draws the first unplayed piece of the class from the
// owner's hand and parks it at the default position. Selecting from the
// other player's hand, or from any hand as a spectator, surfaces read-only
// class information instead.
func (s *Session) SelectFromHand(owner game.Player, class game.PieceClass) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.InGame() && s.role.Kind != RoleSpectator {
		return
	}
	if !s.role.mayAct() || owner != s.activePlayer() {
		s.emit(Event{Kind: EventHandInspection, PieceClass: class})
		return
	}

	piece, ok := s.game.FirstUnplayed(class, owner)
	if !ok {
		return
	}
	pos := s.defaultPlacement()
	s.setSelection(&SelectedPiece{Piece: piece, Position: pos})
	s.emit(Event{Kind: EventAnimateTo, Position: pos})
}

// EnquireFromHand surfaces read-only information about a piece class.
func (s *Session) EnquireFromHand(class game.PieceClass) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emit(Event{Kind: EventHandInspection, PieceClass: class})
}

// UpdatePosition moves the provisional selection. A nil target deselects.
// With shouldMove false this is drag feedback with no validation. With
// shouldMove true the target must match a legal move for the piece; a
// mismatch is soft-rejected and the provisional position kept, otherwise a
// confirmation prompt opens.
func (s *Session) UpdatePosition(piece game.Piece, target *hex.Position, shouldMove bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.InGame() {
		return
	}
	if target == nil {
		s.setSelection(nil)
		return
	}
	if !shouldMove {
		s.setSelection(&SelectedPiece{Piece: piece, Position: *target})
		return
	}

	movement, ok := s.findLegalMove(piece, *target)
	if !ok {
		s.diag.RejectedMoves++
		s.logger.Debug("move rejected",
			zap.Stringer("piece", piece),
			zap.Stringer("target", *target),
		)
		s.emit(Event{Kind: EventMoveRejected})
		return
	}

	s.setSelection(&SelectedPiece{Piece: piece, Position: *target})

	_, onBoard := s.game.PositionOf(piece)
	verb := "Place"
	if onBoard {
		verb = "Move"
	}
	s.pending = &PendingConfirmation{
		Title:       fmt.Sprintf("%s %s?", verb, piece.Class),
		Message:     s.describeMovement(movement, verb),
		AcceptLabel: verb,
		CancelLabel: "Cancel",
		Movement:    movement,
	}
	s.emit(Event{Kind: EventConfirmationOpened, Confirmation: s.pending})
}

// Confirm transmits a movement the user accepted.
func (s *Session) Confirm(m game.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closePending()
	s.confirmLocked(m)
}

// confirmLocked runs the confirm path for both users and the local agent.
// The movement must still convert to a relative encoding against the
// current state; if the board changed underneath it the movement is
// abandoned quietly. Callers hold mu.
func (s *Session) confirmLocked(m game.Movement) {
	if !s.state.InGame() {
		return
	}
	rel, err := game.ToRelative(m, s.game)
	if err != nil {
		s.diag.AbandonedConfirmations++
		s.logger.Debug("confirmation abandoned", zap.Stringer("movement", m), zap.Error(err))
		return
	}
	if !s.transition(Sending(m)) {
		return
	}
	s.dispatch(proto.MovementMsg(rel))
}

// Cancel clears the selection and any open confirmation.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closePending()
	s.setSelection(nil)
}

// Forfeit concedes the game. Legal from any non-terminal state.
func (s *Session) Forfeit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.role.mayAct() {
		return
	}
	if !s.transition(Forfeited) {
		return
	}
	s.dispatch(proto.ForfeitMsg())
	s.emit(Event{
		Kind:       EventGameEnded,
		Winner:     s.role.Assigned.Next(),
		WasForfeit: true,
	})
}

// setSelection replaces the selection pair atomically. Callers hold mu.
func (s *Session) setSelection(next *SelectedPiece) {
	s.selection = SelectionPair{Previous: s.selection.Current, Current: next}
	s.emit(Event{Kind: EventSelectionChanged, Selection: s.selection})
}

// closePending dismisses the open confirmation. Callers hold mu.
func (s *Session) closePending() {
	if s.pending == nil {
		return
	}
	s.pending = nil
	s.emit(Event{Kind: EventConfirmationClosed})
}

// findLegalMove looks the (piece, target) pair up in the authoritative
// legal-move list. Callers hold mu.
func (s *Session) findLegalMove(piece game.Piece, target hex.Position) (game.Movement, bool) {
	for _, m := range s.game.LegalMoves() {
		unit, ok := m.MovedUnit()
		if ok && unit == piece && m.Target == target {
			return m, true
		}
	}
	return game.Movement{}, false
}

// describeMovement renders the confirmation body from the relative
// encoding when one exists. Callers hold mu.
func (s *Session) describeMovement(m game.Movement, verb string) string {
	rel, err := game.ToRelative(m, s.game)
	if err != nil || rel.Reference == nil {
		return fmt.Sprintf("%s %s?", verb, m.Piece)
	}
	return fmt.Sprintf("%s %s %s of %s?", verb, m.Piece, rel.Direction, *rel.Reference)
}
