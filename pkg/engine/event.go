package engine

// Action is a player input applied to a running session.
type Action int

const (
	ActionUnknown Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotate
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "move-left"
	case ActionMoveRight:
		return "move-right"
	case ActionSoftDrop:
		return "soft-drop"
	case ActionHardDrop:
		return "hard-drop"
	case ActionRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

type EventKind int

const (
	EventNone EventKind = iota
	EventMoved
	EventRotated
	EventLocked
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventRotated:
		return "rotated"
	case EventLocked:
		return "locked"
	case EventGameOver:
		return "game-over"
	default:
		return "none"
	}
}

// Event describes what a tick or an action did, so hosts can trigger effects
// without the engine knowing about them.
type Event struct {
	Kind EventKind

	// Locked is set whenever the active piece became part of the board,
	// including the lock that ended the game.
	Locked     bool
	Cleared    int
	Rows       []int
	ScoreDelta int
	LevelUp    bool

	Dropped int
	Kick    int
}

func (e Event) Changed() bool {
	return e.Kind != EventNone
}
