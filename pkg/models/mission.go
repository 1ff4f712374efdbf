package models

// Task is a single learning step within a mission.
type Task struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Duration    string   `yaml:"duration" json:"duration"`
	Resources   []string `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// CompletionCriteria holds the threshold a runner must reach before the
// mission can be finished.
type CompletionCriteria struct {
	RequiredTasks int `yaml:"required_tasks" json:"required_tasks"`
}

// Rewards is the payload credited to the player when a mission is finished.
type Rewards struct {
	XP     int      `yaml:"xp" json:"xp"`
	Badges []string `yaml:"badges,omitempty" json:"badges,omitempty"`
}

// Mission is a themed learning unit composed of ordered tasks. Missions are
// treated as immutable once loaded into a catalog.
type Mission struct {
	ID                 string             `yaml:"id" json:"id"`
	Title              string             `yaml:"title" json:"title"`
	Description        string             `yaml:"description" json:"description"`
	Level              int                `yaml:"level" json:"level"`
	Duration           string             `yaml:"duration" json:"duration"`
	Tags               []string           `yaml:"tags,omitempty" json:"tags,omitempty"`
	Tasks              []Task             `yaml:"tasks" json:"tasks"`
	CompletionCriteria CompletionCriteria `yaml:"completion_criteria" json:"completion_criteria"`
	Rewards            Rewards            `yaml:"rewards" json:"rewards"`
}

// Clone returns a deep copy so callers can hand out missions without
// sharing slices.
func (m Mission) Clone() Mission {
	out := m
	out.Tags = append([]string(nil), m.Tags...)
	out.Rewards.Badges = append([]string(nil), m.Rewards.Badges...)
	out.Tasks = make([]Task, len(m.Tasks))
	for i, t := range m.Tasks {
		t.Resources = append([]string(nil), t.Resources...)
		out.Tasks[i] = t
	}
	return out
}

// UserProgress is the cumulative record of everything the player has earned
// during the current process lifetime.
type UserProgress struct {
	XP                int      `json:"xp"`
	CompletedMissions []string `json:"completed_missions"`
	Badges            []string `json:"badges"`
}

// BreathPhase is one step of the helper widget's breathing guide.
type BreathPhase int

const (
	PhaseBreatheIn BreathPhase = iota
	PhaseHoldIn
	PhaseBreatheOut
	PhaseHoldOut
)

// BreathPhaseCount is the number of phases in one breathing cycle.
const BreathPhaseCount = 4

func (p BreathPhase) String() string {
	switch p {
	case PhaseBreatheIn:
		return "breathe-in"
	case PhaseHoldIn:
		return "hold-1"
	case PhaseBreatheOut:
		return "breathe-out"
	case PhaseHoldOut:
		return "hold-2"
	default:
		return "unknown"
	}
}

// Instruction returns the text shown to the player for the phase.
func (p BreathPhase) Instruction() string {
	switch p {
	case PhaseBreatheIn:
		return "Breathe in..."
	case PhaseHoldIn, PhaseHoldOut:
		return "Hold..."
	case PhaseBreatheOut:
		return "Breathe out..."
	default:
		return ""
	}
}
