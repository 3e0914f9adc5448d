package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hexhive/hive-client/internal/game"
	"github.com/hexhive/hive-client/internal/proto"
	"github.com/hexhive/hive-client/internal/transport"
)

// Dispatcher delivers a confirmed client message to the peer: the network
// transport for online sessions, the local agent loop for offline ones.
// Implementations must not call back into the session synchronously.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg proto.ClientMsg)
}

// Diagnostics counts the deliberately silent no-ops so tests and operators
// can observe them.
type Diagnostics struct {
	IllegalTransitions     uint64
	RejectedMoves          uint64
	AbandonedConfirmations uint64
	DroppedEvents          uint64
}

// Options configures a session.
type Options struct {
	// Transport is the networked connection; its events are consumed by
	// Run. Nil for offline sessions.
	Transport *transport.Client
	// Dispatcher overrides the transport as the outgoing path. Required
	// when Transport is nil and the role initiates moves.
	Dispatcher Dispatcher
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Session owns one game's client-side flow state, selection, and pending
// confirmation. All mutation happens under one mutex; the transport's
// receive path hands off into it via Run rather than mutating directly.
type Session struct {
	role       Role
	logger     *zap.Logger
	client     *transport.Client
	dispatcher Dispatcher

	mu        sync.Mutex
	state     State
	game      *game.GameState
	selection SelectionPair
	pending   *PendingConfirmation
	diag      Diagnostics

	contentReady      bool
	interactionsReady bool

	events chan Event
}

// New constructs a session for the given role. Role misuse is a
// programming error and panics: a spectator cannot be given an outgoing
// dispatch path, and an acting role must have one.
func New(r Role, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil && opts.Transport != nil {
		dispatcher = networkDispatcher{client: opts.Transport}
	}

	if r.Kind == RoleSpectator && opts.Dispatcher != nil {
		panic("session: spectator role cannot dispatch moves")
	}
	if r.mayAct() && dispatcher == nil {
		panic("session: acting role requires a transport or dispatcher")
	}
	if r.transitions == nil {
		panic("session: role constructed without a transition table")
	}

	return &Session{
		role:       r,
		logger:     logger,
		client:     opts.Transport,
		dispatcher: dispatcher,
		state:      Begin,
		events:     make(chan Event, 64),
	}
}

// Events is the UI-facing event stream.
func (s *Session) Events() <-chan Event {
	return s.events
}

// State returns the current flow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GameState returns the held authoritative snapshot.
func (s *Session) GameState() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game
}

// Selection returns the current selection pair.
func (s *Session) Selection() SelectionPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Pending returns the open confirmation, if any.
func (s *Session) Pending() *PendingConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Diagnostics returns a snapshot of the silent no-op counters.
func (s *Session) Diagnostics() Diagnostics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diag
}

// Initialize stores the first authoritative snapshot. Valid only before
// the game starts.
func (s *Session) Initialize(snapshot *game.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != PhaseBegin {
		return
	}
	s.game = snapshot
}

// ContentReady signals the view has loaded its content. The first signal
// moves the session out of begin.
func (s *Session) ContentReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == PhaseBegin {
		s.transition(GameStart)
	}
	s.contentReady = true
	s.maybeStart()
}

// InteractionsReady signals the view accepts input.
func (s *Session) InteractionsReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactionsReady = true
	s.maybeStart()
}

// maybeStart enters play once the snapshot is held and both view-ready
// signals arrived. Callers hold mu.
func (s *Session) maybeStart() {
	if s.state.InGame() || !s.contentReady || !s.interactionsReady || s.game == nil {
		return
	}
	if s.role.Kind == RoleSpectator {
		// Spectators stay in gameStart; reconciliation drives them.
		return
	}
	if s.game.CurrentPlayer() == s.activePlayer() {
		s.transition(PlayerTurn)
	} else {
		s.transition(OpponentTurn)
	}
	if s.role.Local {
		// Let the offline peer know it is time to play.
		s.dispatch(proto.ReadyToPlayMsg())
	}
}

// activePlayer is the player this session acts for right now. Callers
// hold mu.
func (s *Session) activePlayer() game.Player {
	if s.role.Assigned != game.NoPlayer {
		return s.role.Assigned
	}
	if s.game != nil {
		return s.game.CurrentPlayer()
	}
	return game.NoPlayer
}

// transition applies the role's table. Illegal requests are dropped
// without error: they reflect a race between input and state that already
// moved on. Callers hold mu.
func (s *Session) transition(to State) bool {
	if !s.role.transitions(s.state, to) {
		s.diag.IllegalTransitions++
		s.logger.Debug("transition dropped",
			zap.Stringer("from", s.state),
			zap.Stringer("to", to),
		)
		return false
	}
	s.state = to
	if to.Phase == PhasePlayerTurn {
		s.enteredPlayerTurn()
	}
	return true
}

// enteredPlayerTurn surfaces the must-pass notification and triggers the
// local agent. Callers hold mu.
func (s *Session) enteredPlayerTurn() {
	if s.game == nil {
		return
	}
	if s.game.CurrentPlayer() == s.activePlayer() && s.game.MustPass() {
		s.emit(Event{Kind: EventMustPass, Text: "You have no moves available and must pass"})
	}
	if s.role.Kind == RoleLocalAgent {
		s.playAgentMove()
	}
}

// playAgentMove picks the first legal move and confirms it through the
// regular pipeline. Callers hold mu.
func (s *Session) playAgentMove() {
	move := game.Pass
	if legal := s.game.LegalMoves(); len(legal) > 0 {
		move = legal[0]
	}
	s.confirmLocked(move)
}

// dispatch sends a message down the outgoing path. Callers hold mu.
func (s *Session) dispatch(msg proto.ClientMsg) {
	if s.dispatcher == nil {
		s.logger.Debug("dispatch dropped, no outgoing path", zap.String("type", msg.Type))
		return
	}
	s.dispatcher.Dispatch(context.Background(), msg)
}

// emit delivers an event without blocking the session; a slow consumer
// loses events rather than stalling game flow. Callers hold mu.
func (s *Session) emit(e Event) {
	select {
	case s.events <- e:
	default:
		s.diag.DroppedEvents++
		s.logger.Debug("event dropped", zap.Uint8("kind", uint8(e.Kind)))
	}
}

// Run consumes transport events until the context ends or the connection
// goes away. It is the hand-off point between the network delivery context
// and the session's mutation path.
func (s *Session) Run(ctx context.Context) {
	if s.client == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.client.Events():
			if !ok {
				return
			}
			switch ev.Kind {
			case transport.Connected:
				s.logger.Debug("transport connected")
			case transport.Disconnected:
				s.mu.Lock()
				s.emit(Event{Kind: EventConnectionLost, Code: int(ev.Code)})
				s.mu.Unlock()
			case transport.MessageReceived:
				if ev.Message.Type != proto.TypeGameState {
					s.logger.Debug("ignoring message", zap.String("type", ev.Message.Type))
					continue
				}
				s.ReceiveState(ev.Message.State)
			}
		}
	}
}

// networkDispatcher routes confirmed messages to the transport. Sends are
// fire-and-forget from the pipeline's perspective.
type networkDispatcher struct {
	client *transport.Client
}

func (d networkDispatcher) Dispatch(ctx context.Context, msg proto.ClientMsg) {
	go d.client.Send(ctx, msg)
}
