package domain

// Level is the fixed depth of a node in the work breakdown structure.
// Level 0 is reserved for the synthetic project root; work items occupy
// levels 1 through 4.
type Level int

const (
	LevelRoot Level = 0
	Level1    Level = 1
	Level2    Level = 2
	Level3    Level = 3
	Level4    Level = 4
)

// MaxLevel is the deepest level a node may occupy. Nodes at MaxLevel are
// always leaves.
const MaxLevel = Level4

// Valid reports whether l is the root level or one of the four work levels.
func (l Level) Valid() bool {
	return l >= LevelRoot && l <= MaxLevel
}

type NodeStatus string

const (
	StatusNotStarted NodeStatus = "not_started"
	StatusInProgress NodeStatus = "in_progress"
	StatusDelayed    NodeStatus = "delayed"
	StatusCompleted  NodeStatus = "completed"
)

// LevelDirection selects whether a level change moves a node shallower
// (promote) or deeper (demote).
type LevelDirection string

const (
	DirectionUp   LevelDirection = "up"
	DirectionDown LevelDirection = "down"
)
