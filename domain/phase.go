package domain

// Phase is the lifecycle state of a Session.
// Transitions: Lobby -> InProgress -> Voting -> (InProgress | GameOver).
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseInProgress
	PhaseVoting
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseInProgress:
		return "in_progress"
	case PhaseVoting:
		return "voting"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further mutation of game state is possible.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver
}
