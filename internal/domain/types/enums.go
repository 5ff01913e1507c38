package types

// Mode selects the simulation fidelity.
type Mode string

const (
	// Advanced runs the full four-phase state machine.
	Advanced Mode = "advanced"
	// Simple runs the single-pass fast path used for bulk simulation.
	Simple Mode = "simple"
)

// ParseMode maps a string to a Mode, defaulting to Advanced for empty or
// unrecognized input.
func ParseMode(s string) Mode {
	switch s {
	case string(Simple):
		return Simple
	default:
		return Advanced
	}
}

// Phase identifies a step of the advanced simulation state machine.
type Phase int

const (
	PhaseOpening Phase = iota + 1
	PhaseMid
	PhaseClimax
	PhaseAftermath
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseMid:
		return "mid"
	case PhaseClimax:
		return "climax"
	case PhaseAftermath:
		return "aftermath"
	default:
		return "unknown"
	}
}

// Severity grades an injury.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMinor
	SeverityModerate
	SeverityMajor
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityMinor:
		return "minor"
	case SeverityModerate:
		return "moderate"
	case SeverityMajor:
		return "major"
	default:
		return "unknown"
	}
}
