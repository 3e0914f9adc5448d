package session

import (
	"context"
	"sync"
	"testing"

	"github.com/hexhive/hive-client/internal/game"
	"github.com/hexhive/hive-client/internal/hex"
	"github.com/hexhive/hive-client/internal/proto"
)

var (
	testWhiteQueen  = game.Piece{Owner: game.White, Class: game.Queen, Index: 1}
	testWhiteSpider = game.Piece{Owner: game.White, Class: game.Spider, Index: 1}
	testWhiteBeetle = game.Piece{Owner: game.White, Class: game.Beetle, Index: 1}
	testBlackQueen  = game.Piece{Owner: game.Black, Class: game.Queen, Index: 1}
	testBlackAnt    = game.Piece{Owner: game.Black, Class: game.Ant, Index: 1}

	spiderTarget = hex.Position{X: 1, Y: -1, Z: 0}
)

// twoQueens is a small fixed position: both queens placed, white spider
// placeable southeast of the origin.
func twoQueens(current game.Player) *game.GameState {
	return &game.GameState{
		Current: current,
		History: []game.HistoryEntry{
			{Player: game.White, Movement: game.Place(testWhiteQueen, hex.Origin)},
			{Player: game.Black, Movement: game.Place(testBlackQueen, hex.Position{X: 0, Y: 1, Z: -1})},
		},
		Stacks: map[hex.Position][]game.Piece{
			hex.Origin:          {testWhiteQueen},
			{X: 0, Y: 1, Z: -1}: {testBlackQueen},
		},
		Legal: []game.Movement{
			game.Place(testWhiteSpider, spiderTarget),
		},
		Hands: map[game.Player][]game.Piece{
			game.White: {testWhiteSpider, testWhiteBeetle},
			game.Black: {testBlackAnt},
		},
	}
}

// withTail clones the snapshot shallowly and appends a history entry.
func withTail(s *game.GameState, current game.Player, entry game.HistoryEntry) *game.GameState {
	next := *s
	next.Current = current
	next.History = append(append([]game.HistoryEntry{}, s.History...), entry)
	return &next
}

type captureDispatcher struct {
	mu   sync.Mutex
	msgs []proto.ClientMsg
}

func (d *captureDispatcher) Dispatch(_ context.Context, msg proto.ClientMsg) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.msgs = append(d.msgs, msg)
}

func (d *captureDispatcher) sent() []proto.ClientMsg {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]proto.ClientMsg{}, d.msgs...)
}

// newPlayerSession builds a networked-player session backed by a capture
// dispatcher and brings it into play against the given snapshot.
func newPlayerSession(t *testing.T, assigned game.Player, snapshot *game.GameState) (*Session, *captureDispatcher) {
	t.Helper()
	d := &captureDispatcher{}
	s := New(PlayerRole(assigned, false), Options{Dispatcher: d})
	s.Initialize(snapshot)
	s.ContentReady()
	s.InteractionsReady()
	return s, d
}

func drainEvents(s *Session) []Event {
	var out []Event
	for {
		select {
		case ev := <-s.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func findEvent(events []Event, kind EventKind) (Event, bool) {
	for _, ev := range events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}
