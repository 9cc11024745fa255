package core

// RuntimeConfig contains configuration passed to the game at session start.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the snapshot the platform reads after every tick.
type GameState struct {
	Score     int  // Current score
	BestScore int  // Persisted best score
	Running   bool // A session is in progress (paused or not)
	GameOver  bool // The last session ended and has not been restarted
	Paused    bool // The session is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event // Things that happened during this tick, in order
}

// Event is a gameplay occurrence the platform may react to.
type Event int

const (
	EventFlap Event = iota
	EventScore
	EventHit
	EventPaused
	EventResumed
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventFlap:
		return "flap"
	case EventScore:
		return "score"
	case EventHit:
		return "hit"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	default:
		return "unknown"
	}
}
