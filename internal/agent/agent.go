// Package agent provides the non-interactive local opponent and the
// offline loop that stands in for the server when no network peer exists.
package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/hexhive/hive-client/internal/game"
	"github.com/hexhive/hive-client/internal/proto"
)

// Agent chooses a move from an authoritative state. Implementations may
// use any policy.
type Agent interface {
	PlayMove(s *game.GameState) game.Movement
}

// FirstMove is the baseline agent: it plays the first legal move, passing
// when nothing else is available.
type FirstMove struct{}

func (FirstMove) PlayMove(s *game.GameState) game.Movement {
	if legal := s.LegalMoves(); len(legal) > 0 {
		return legal[0]
	}
	return game.Pass
}

// Authority is the local rules engine boundary: it applies a movement to a
// snapshot and produces the next one. The loop never mutates snapshots
// itself.
type Authority interface {
	Apply(current *game.GameState, m game.RelativeMovement) (*game.GameState, error)
}

// Loop is the offline dispatcher. Confirmed messages from the session are
// applied through the authority, resulting snapshots are delivered back
// through the same path a server echo would take, and the agent replies
// whenever its side is to move.
type Loop struct {
	authority Authority
	agent     Agent
	plays     game.Player
	deliver   func(*game.GameState)
	logger    *zap.Logger

	state *game.GameState
	msgs  chan proto.ClientMsg
	done  chan struct{}
}

// NewLoop starts the offline loop. plays is the side the agent controls;
// NoPlayer disables agent replies (hot-seat). deliver receives every new
// snapshot and must be safe to call from the loop's goroutine.
func NewLoop(
	initial *game.GameState,
	authority Authority,
	a Agent,
	plays game.Player,
	deliver func(*game.GameState),
	logger *zap.Logger,
) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loop{
		authority: authority,
		agent:     a,
		plays:     plays,
		deliver:   deliver,
		logger:    logger,
		state:     initial,
		msgs:      make(chan proto.ClientMsg, 16),
		done:      make(chan struct{}),
	}
	go l.run()
	return l
}

// Dispatch enqueues a message for the loop. Implements session.Dispatcher.
func (l *Loop) Dispatch(ctx context.Context, msg proto.ClientMsg) {
	select {
	case <-ctx.Done():
	case <-l.done:
	case l.msgs <- msg:
	}
}

// Close stops the loop.
func (l *Loop) Close() {
	close(l.done)
}

func (l *Loop) run() {
	for {
		select {
		case <-l.done:
			return
		case msg := <-l.msgs:
			l.handle(msg)
		}
	}
}

func (l *Loop) handle(msg proto.ClientMsg) {
	switch msg.Type {
	case proto.TypeReadyToPlay:
		l.agentTurn()
	case proto.TypeMovement:
		if msg.Movement == nil {
			l.logger.Debug("movement message without payload")
			return
		}
		next, err := l.authority.Apply(l.state, *msg.Movement)
		if err != nil {
			l.logger.Debug("authority rejected movement", zap.Error(err))
			return
		}
		l.state = next
		l.deliver(next)
		l.agentTurn()
	case proto.TypeForfeit:
		l.logger.Debug("forfeit received")
	default:
		l.logger.Debug("ignoring message", zap.String("type", msg.Type))
	}
}

// agentTurn plays agent moves until it is no longer the agent's turn.
func (l *Loop) agentTurn() {
	if l.agent == nil || l.plays == game.NoPlayer {
		return
	}
	for !l.state.HasEnded() && l.state.CurrentPlayer() == l.plays {
		move := l.agent.PlayMove(l.state)
		rel, err := game.ToRelative(move, l.state)
		if err != nil {
			l.logger.Debug("agent move does not encode", zap.Error(err))
			return
		}
		next, err := l.authority.Apply(l.state, rel)
		if err != nil {
			l.logger.Debug("authority rejected agent move", zap.Error(err))
			return
		}
		l.state = next
		l.deliver(next)
	}
}
