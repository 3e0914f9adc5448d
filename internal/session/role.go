package session

import "github.com/hexhive/hive-client/internal/game"

// RoleKind discriminates the session role.
type RoleKind uint8

const (
	// RolePlayer initiates moves for an assigned player, or for both
	// players in hot-seat mode when unassigned.
	RolePlayer RoleKind = iota
	// RoleSpectator mirrors the game read-only; hand inspection never
	// selects a piece and no movement is ever transmitted.
	RoleSpectator
	// RoleLocalAgent plays non-interactively: whenever it is its turn it
	// computes a move and feeds it through the same confirm/send path.
	RoleLocalAgent
)

// Role parameterizes the state machine and the proposal pipeline: who may
// initiate moves, which transition table applies, and whether confirmed
// moves are dispatched to the network or to a local loop.
type Role struct {
	Kind RoleKind
	// Assigned is the player this session acts for. NoPlayer means
	// hot-seat: the session acts for whoever is to move.
	Assigned game.Player
	// Local marks an offline session whose peer is the local agent loop
	// rather than a networked server.
	Local bool

	transitions TransitionTable
}

// PlayerRole builds an interactive player role. Pass NoPlayer for
// hot-seat play.
func PlayerRole(assigned game.Player, local bool) Role {
	return Role{Kind: RolePlayer, Assigned: assigned, Local: local, transitions: playerTransitions}
}

// SpectatorRole builds the read-only observer role.
func SpectatorRole() Role {
	return Role{Kind: RoleSpectator, transitions: spectatorTransitions}
}

// LocalAgentRole builds the non-interactive role playing the given side.
func LocalAgentRole(assigned game.Player, local bool) Role {
	return Role{Kind: RoleLocalAgent, Assigned: assigned, Local: local, transitions: playerTransitions}
}

// mayAct reports whether the role can initiate moves at all.
func (r Role) mayAct() bool {
	return r.Kind != RoleSpectator
}
