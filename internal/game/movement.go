package game

import (
	"errors"
	"fmt"

	"github.com/hexhive/hive-client/internal/hex"
)

var (
	// ErrNoReference means no occupied neighbor exists to anchor a
	// relative encoding of the movement.
	ErrNoReference = errors.New("game: no reference piece adjacent to target")
	// ErrUnknownReference means the relative movement names a piece that
	// is not on the board.
	ErrUnknownReference = errors.New("game: reference piece not on board")
)

// MoveKind tags the Movement variant.
type MoveKind uint8

const (
	KindPlace MoveKind = iota
	KindMove
	KindYoink
	KindPass
)

var kindNames = map[MoveKind]string{
	KindPlace: "place",
	KindMove:  "move",
	KindYoink: "yoink",
	KindPass:  "pass",
}

func (k MoveKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the kind as its lowercase name.
func (k MoveKind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("game: unknown move kind %d", k)
	}
	return []byte(s), nil
}

// UnmarshalText decodes a kind from its lowercase name.
func (k *MoveKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("game: unknown move kind %q", text)
}

// Movement is a single change to the board in absolute coordinates. For
// KindYoink, Piece is the displaced unit and Actor the player performing
// the move; for the other kinds Actor is the piece's owner. KindPass
// carries neither piece nor target.
type Movement struct {
	Kind   MoveKind     `json:"kind"`
	Piece  Piece        `json:"piece,omitempty"`
	Actor  Player       `json:"actor,omitempty"`
	Target hex.Position `json:"target,omitempty"`
}

// Pass is the no-move movement.
var Pass = Movement{Kind: KindPass}

// Place builds a placement of piece at target.
func Place(piece Piece, target hex.Position) Movement {
	return Movement{Kind: KindPlace, Piece: piece, Actor: piece.Owner, Target: target}
}

// Move builds a board move of piece to target.
func Move(piece Piece, target hex.Position) Movement {
	return Movement{Kind: KindMove, Piece: piece, Actor: piece.Owner, Target: target}
}

// Yoink builds a displacement of an opponent's piece to target.
func Yoink(actor Player, piece Piece, target hex.Position) Movement {
	return Movement{Kind: KindYoink, Piece: piece, Actor: actor, Target: target}
}

// MovedUnit returns the unit this movement relocates, if any.
func (m Movement) MovedUnit() (Piece, bool) {
	if m.Kind == KindPass {
		return Piece{}, false
	}
	return m.Piece, true
}

// TargetPosition returns the destination, if any.
func (m Movement) TargetPosition() (hex.Position, bool) {
	if m.Kind == KindPass {
		return hex.Position{}, false
	}
	return m.Target, true
}

func (m Movement) String() string {
	switch m.Kind {
	case KindPass:
		return "pass"
	case KindYoink:
		return fmt.Sprintf("%s yoinks %s to %s", m.Actor, m.Piece, m.Target)
	default:
		return fmt.Sprintf("%s %s to %s", m.Kind, m.Piece, m.Target)
	}
}

// RelativeMovement expresses a movement as a direction from a reference
// piece already on the board, so peers with a different logical origin can
// reconstruct it. A nil Reference marks the first placement of the game.
type RelativeMovement struct {
	Kind      MoveKind      `json:"kind"`
	Piece     Piece         `json:"piece,omitempty"`
	Actor     Player        `json:"actor,omitempty"`
	Direction hex.Direction `json:"direction,omitempty"`
	Reference *Piece        `json:"reference,omitempty"`
}

func (r RelativeMovement) String() string {
	if r.Kind == KindPass {
		return "pass"
	}
	if r.Reference == nil {
		return fmt.Sprintf("%s %s at origin", r.Kind, r.Piece)
	}
	return fmt.Sprintf("%s %s %s of %s", r.Kind, r.Piece, r.Direction, *r.Reference)
}

// ToRelative converts an absolute movement into its relative encoding
// against the given state. The reference is the top piece of the first
// occupied neighbor of the target, scanning directions in fixed order and
// skipping the moved unit itself. Moving onto an occupied cell anchors on
// top of that cell's stack. Fails with ErrNoReference when the board has
// pieces but none border the target, which signals the board changed
// underneath the caller.
func ToRelative(m Movement, s *GameState) (RelativeMovement, error) {
	if m.Kind == KindPass {
		return RelativeMovement{Kind: KindPass}, nil
	}

	rel := RelativeMovement{Kind: m.Kind, Piece: m.Piece, Actor: m.Actor}

	if top, ok := s.TopPiece(m.Target); ok && top != m.Piece {
		ref := top
		rel.Direction = hex.OnTop
		rel.Reference = &ref
		return rel, nil
	}

	for _, d := range hex.Directions {
		neighbor := m.Target.Offset(d)
		top, ok := s.TopPiece(neighbor)
		if !ok || top == m.Piece {
			continue
		}
		ref := top
		// The moved unit sits opposite the scan direction from the
		// reference's point of view.
		rel.Direction = d.Opposite()
		rel.Reference = &ref
		return rel, nil
	}

	if len(s.Stacks) == 0 {
		// First placement of the game: no anchor exists yet.
		return rel, nil
	}
	return RelativeMovement{}, ErrNoReference
}

// ToAbsolute resolves a relative movement against the given state. The
// reference piece's current position anchors the target.
func ToAbsolute(r RelativeMovement, s *GameState) (Movement, error) {
	if r.Kind == KindPass {
		return Pass, nil
	}

	m := Movement{Kind: r.Kind, Piece: r.Piece, Actor: r.Actor}
	if r.Reference == nil {
		m.Target = hex.Origin
		return m, nil
	}

	refPos, ok := s.PositionOf(*r.Reference)
	if !ok {
		return Movement{}, ErrUnknownReference
	}
	m.Target = refPos.Offset(r.Direction)
	return m, nil
}
