package emotion

// State is the discrete mood classification, ordered by severity.
// The ordinal order is load-bearing: comparisons between states use it
// to decide whether a transition escalates or de-escalates.
type State int

const (
	Calm State = iota
	Active
	Busy
	Stressed
	Overloaded
)

// States lists all states in ascending severity order.
var States = []State{Calm, Active, Busy, Stressed, Overloaded}

func (s State) String() string {
	switch s {
	case Calm:
		return "calm"
	case Active:
		return "active"
	case Busy:
		return "busy"
	case Stressed:
		return "stressed"
	case Overloaded:
		return "overloaded"
	default:
		return "unknown"
	}
}

// Label returns the state name capitalized for user-facing text
func (s State) Label() string {
	name := s.String()
	if name == "" {
		return name
	}

	return string(name[0]-'a'+'A') + name[1:]
}
