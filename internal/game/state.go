package game

import (
	"sort"

	"github.com/hexhive/hive-client/internal/hex"
)

// HistoryEntry records one applied movement and who made it.
type HistoryEntry struct {
	Player   Player   `json:"player"`
	Movement Movement `json:"movement"`
}

// GameState is the authoritative snapshot received from the server (or the
// local authority). The session never mutates it; every update replaces
// the held reference wholesale.
type GameState struct {
	Current Player                   `json:"currentPlayer"`
	History []HistoryEntry           `json:"moves"`
	Stacks  map[hex.Position][]Piece `json:"stacks"`
	Legal   []Movement               `json:"availableMoves"`
	Hands   map[Player][]Piece       `json:"unitsInHand"`
	Ended   bool                     `json:"hasEnded"`
	Winner  Player                   `json:"winner,omitempty"`
}

// CurrentPlayer is the player to move.
func (s *GameState) CurrentPlayer() Player { return s.Current }

// HasEnded reports whether the game is over, by win or forfeit.
func (s *GameState) HasEnded() bool { return s.Ended }

// LegalMoves is the authoritative legal-move enumeration.
func (s *GameState) LegalMoves() []Movement { return s.Legal }

// LastMove returns the most recent history entry.
func (s *GameState) LastMove() (HistoryEntry, bool) {
	if len(s.History) == 0 {
		return HistoryEntry{}, false
	}
	return s.History[len(s.History)-1], true
}

// TopPiece returns the topmost piece of the stack at pos.
func (s *GameState) TopPiece(pos hex.Position) (Piece, bool) {
	stack := s.Stacks[pos]
	if len(stack) == 0 {
		return Piece{}, false
	}
	return stack[len(stack)-1], true
}

// PositionOf locates a piece on the board, including pieces buried in a
// stack. Pieces still in hand have no position.
func (s *GameState) PositionOf(p Piece) (hex.Position, bool) {
	for pos, stack := range s.Stacks {
		for _, piece := range stack {
			if piece == p {
				return pos, true
			}
		}
	}
	return hex.Position{}, false
}

// FirstUnplayed returns the lowest-index piece of the given class still in
// the owner's hand.
func (s *GameState) FirstUnplayed(class PieceClass, owner Player) (Piece, bool) {
	hand := s.Hands[owner]
	best := Piece{}
	found := false
	for _, p := range hand {
		if p.Class != class {
			continue
		}
		if !found || p.Less(best) {
			best = p
			found = true
		}
	}
	return best, found
}

// PlaceableTargets collects the targets of the player's legal placements,
// sorted in position order.
func (s *GameState) PlaceableTargets(p Player) []hex.Position {
	seen := make(map[hex.Position]struct{})
	var out []hex.Position
	for _, m := range s.Legal {
		if m.Kind != KindPlace || m.Piece.Owner != p {
			continue
		}
		if _, ok := seen[m.Target]; ok {
			continue
		}
		seen[m.Target] = struct{}{}
		out = append(out, m.Target)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// MustPass reports whether passing is the only legal move.
func (s *GameState) MustPass() bool {
	return len(s.Legal) == 1 && s.Legal[0].Kind == KindPass
}

// OccupiedPositions returns the positions holding at least one piece,
// sorted in position order.
func (s *GameState) OccupiedPositions() []hex.Position {
	out := make([]hex.Position, 0, len(s.Stacks))
	for pos, stack := range s.Stacks {
		if len(stack) > 0 {
			out = append(out, pos)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
