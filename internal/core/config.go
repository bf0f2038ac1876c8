package core

// RuntimeConfig carries host parameters into a game session.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the summary a game reports to its host.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the round has ended
	Paused   bool // Whether the simulation is paused
}

// Event is something noteworthy that happened during a tick or an action.
type Event int

const (
	EventNone Event = iota
	EventJump
	EventSpawn
	EventGameOver
	EventRestart
	EventPause
	EventResume
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventSpawn:
		return "spawn"
	case EventGameOver:
		return "game_over"
	case EventRestart:
		return "restart"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	default:
		return "none"
	}
}

// StepResult is returned by a game after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the result contains the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
