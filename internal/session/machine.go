package session

// TransitionTable is a total, pure predicate over state pairs. Every pair
// not explicitly permitted is disallowed.
type TransitionTable func(from, to State) bool

// playerTransitions governs the Player and LocalAgent roles. A local or
// offline peer may reply immediately, so a sent movement can lead straight
// back to the player's turn.
func playerTransitions(from, to State) bool {
	// Terminal states first: nothing leaves forfeit or gameEnd.
	if from.Phase == PhaseForfeit || from.Phase == PhaseGameEnd {
		return false
	}
	// Forfeiting and ending the game are possible at any time.
	if to.Phase == PhaseForfeit || to.Phase == PhaseGameEnd {
		return true
	}

	switch from.Phase {
	case PhaseBegin:
		return to.Phase == PhaseGameStart
	case PhaseGameStart:
		return to.Phase == PhasePlayerTurn || to.Phase == PhaseOpponentTurn
	case PhasePlayerTurn:
		return to.Phase == PhaseSending
	case PhaseSending:
		return to.Phase == PhaseOpponentTurn || to.Phase == PhasePlayerTurn
	case PhaseOpponentTurn:
		return to.Phase == PhasePlayerTurn
	default:
		return false
	}
}

// spectatorTransitions governs the observer role: a sent movement (which a
// spectator never produces) only ever leads to the opponent's turn.
func spectatorTransitions(from, to State) bool {
	if from.Phase == PhaseForfeit || from.Phase == PhaseGameEnd {
		return false
	}
	if to.Phase == PhaseForfeit || to.Phase == PhaseGameEnd {
		return true
	}

	switch from.Phase {
	case PhaseBegin:
		return to.Phase == PhaseGameStart
	case PhaseGameStart:
		return to.Phase == PhasePlayerTurn || to.Phase == PhaseOpponentTurn
	case PhasePlayerTurn:
		return to.Phase == PhaseSending
	case PhaseSending:
		return to.Phase == PhaseOpponentTurn
	case PhaseOpponentTurn:
		return to.Phase == PhasePlayerTurn
	default:
		return false
	}
}
