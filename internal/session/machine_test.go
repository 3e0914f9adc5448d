package session

import (
	"testing"

	"github.com/hexhive/hive-client/internal/game"
	"github.com/hexhive/hive-client/internal/hex"
)

// allStates covers every phase, with a populated movement for the
// sending state.
func allStates() []State {
	m := game.Place(testWhiteSpider, spiderTarget)
	return []State{
		Begin,
		GameStart,
		PlayerTurn,
		OpponentTurn,
		Sending(m),
		GameEnd,
		Forfeited,
	}
}

func permittedSet(pairs map[Phase][]Phase) map[Phase]map[Phase]bool {
	set := make(map[Phase]map[Phase]bool, len(pairs))
	for from, tos := range pairs {
		set[from] = make(map[Phase]bool, len(tos))
		for _, to := range tos {
			set[from][to] = true
		}
	}
	return set
}

func checkTable(t *testing.T, name string, table TransitionTable, pairs map[Phase][]Phase) {
	t.Helper()
	set := permittedSet(pairs)
	states := allStates()
	for _, from := range states {
		for _, to := range states {
			want := set[from.Phase][to.Phase]
			if got := table(from, to); got != want {
				t.Errorf("%s: %s -> %s = %v, want %v", name, from, to, got, want)
			}
		}
	}
}

func TestPlayerTransitions_Exhaustive(t *testing.T) {
	checkTable(t, "player", playerTransitions, map[Phase][]Phase{
		PhaseBegin:        {PhaseGameStart, PhaseGameEnd, PhaseForfeit},
		PhaseGameStart:    {PhasePlayerTurn, PhaseOpponentTurn, PhaseGameEnd, PhaseForfeit},
		PhasePlayerTurn:   {PhaseSending, PhaseGameEnd, PhaseForfeit},
		PhaseOpponentTurn: {PhasePlayerTurn, PhaseGameEnd, PhaseForfeit},
		PhaseSending:      {PhaseOpponentTurn, PhasePlayerTurn, PhaseGameEnd, PhaseForfeit},
		PhaseGameEnd:      {},
		PhaseForfeit:      {},
	})
}

func TestSpectatorTransitions_Exhaustive(t *testing.T) {
	checkTable(t, "spectator", spectatorTransitions, map[Phase][]Phase{
		PhaseBegin:        {PhaseGameStart, PhaseGameEnd, PhaseForfeit},
		PhaseGameStart:    {PhasePlayerTurn, PhaseOpponentTurn, PhaseGameEnd, PhaseForfeit},
		PhasePlayerTurn:   {PhaseSending, PhaseGameEnd, PhaseForfeit},
		PhaseOpponentTurn: {PhasePlayerTurn, PhaseGameEnd, PhaseForfeit},
		PhaseSending:      {PhaseOpponentTurn, PhaseGameEnd, PhaseForfeit},
		PhaseGameEnd:      {},
		PhaseForfeit:      {},
	})
}

// The movement carried through sending must not affect the verdict.
func TestTransitions_MovementIndependent(t *testing.T) {
	a := Sending(game.Place(testWhiteSpider, spiderTarget))
	b := Sending(game.Move(testWhiteBeetle, hex.Origin))
	for _, table := range []TransitionTable{playerTransitions, spectatorTransitions} {
		if table(PlayerTurn, a) != table(PlayerTurn, b) {
			t.Fatal("verdict depends on the movement in flight")
		}
		if table(a, OpponentTurn) != table(b, OpponentTurn) {
			t.Fatal("verdict depends on the movement in flight")
		}
	}
}

func TestStateHelpers(t *testing.T) {
	for _, s := range []State{PlayerTurn, OpponentTurn, Sending(game.Pass)} {
		if !s.InGame() {
			t.Errorf("%s: InGame() = false", s)
		}
	}
	for _, s := range []State{Begin, GameStart, GameEnd, Forfeited} {
		if s.InGame() {
			t.Errorf("%s: InGame() = true", s)
		}
	}
	if !GameEnd.HasGameEnded() || !Forfeited.HasGameEnded() {
		t.Fatal("terminal states not reported as ended")
	}
	if PlayerTurn.HasGameEnded() {
		t.Fatal("playerTurn reported as ended")
	}
}
