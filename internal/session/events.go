package session

import (
	"github.com/hexhive/hive-client/internal/game"
	"github.com/hexhive/hive-client/internal/hex"
)

// SelectedPiece is an in-progress, unconfirmed placement or move. The
// position is UI-local and never applied to the authoritative state.
type SelectedPiece struct {
	Piece    game.Piece
	Position hex.Position
}

// SelectionPair holds the previously selected piece and the current one,
// replaced atomically on every change so the UI can animate between them.
type SelectionPair struct {
	Previous *SelectedPiece
	Current  *SelectedPiece
}

// PendingConfirmation wraps a not-yet-sent movement together with the
// prompt needed to accept or cancel it.
type PendingConfirmation struct {
	Title       string
	Message     string
	AcceptLabel string
	CancelLabel string
	Movement    game.Movement
}

// Icon identifies the glyph shown alongside a turn notification.
type Icon uint8

const (
	IconPlace Icon = iota
	IconMove
	IconYoink
	IconPass
)

// EventKind discriminates UI-facing events.
type EventKind uint8

const (
	// EventSelectionChanged carries the new selection pair.
	EventSelectionChanged EventKind = iota
	// EventConfirmationOpened carries the pending confirmation prompt.
	EventConfirmationOpened
	// EventConfirmationClosed signals the prompt was dismissed.
	EventConfirmationClosed
	// EventAnimateTo asks the view to pan to a board position.
	EventAnimateTo
	// EventTurnNotification carries the opponent-move text and icon.
	EventTurnNotification
	// EventMustPass signals the player's only legal move is to pass.
	EventMustPass
	// EventGameEnded carries the end-of-game summary.
	EventGameEnded
	// EventMoveRejected signals a drag target was not a legal move.
	EventMoveRejected
	// EventHandInspection surfaces read-only piece-class information.
	EventHandInspection
	// EventConnectionLost carries the disconnect code.
	EventConnectionLost
)

// Event is delivered to the UI on the session's event channel. Only the
// fields relevant to the Kind are populated.
type Event struct {
	Kind EventKind

	Selection    SelectionPair
	Confirmation *PendingConfirmation
	Position     hex.Position
	Text         string
	Icon         Icon
	PieceClass   game.PieceClass

	Winner        game.Player
	WasForfeit    bool
	WasSpectating bool

	Code int
}
