package types

// FinishType tags how a match ended. Pinfall through Disqualification are
// drawn from the weighted finish table; Controversial and Botched are only
// produced by referee overrides.
type FinishType string

const (
	Pinfall          FinishType = "pinfall"
	Submission       FinishType = "submission"
	Knockout         FinishType = "knockout"
	Countout         FinishType = "countout"
	Disqualification FinishType = "disqualification"
	Controversial    FinishType = "controversial"
	Botched          FinishType = "botched"
)

// drawableFinishes fixes the iteration order of the weighted table so a
// seeded simulation is reproducible.
var drawableFinishes = []FinishType{
	Pinfall,
	Submission,
	Knockout,
	Countout,
	Disqualification,
}

// DrawableFinishes returns the finish types eligible for the weighted
// draw, in stable order.
func DrawableFinishes() []FinishType {
	out := make([]FinishType, len(drawableFinishes))
	copy(out, drawableFinishes)
	return out
}

// IsClean reports whether the finish is a decisive, untainted result.
func (f FinishType) IsClean() bool {
	switch f {
	case Pinfall, Submission, Knockout:
		return true
	default:
		return false
	}
}

// AdjustFinishWeights applies match-class adjustments on top of a base
// weighted table and returns weights aligned with DrawableFinishes order.
// The base table is keyed by finish name as configured.
func AdjustFinishWeights(base map[string]float64, t MatchType, simple bool) []float64 {
	weights := make([]float64, len(drawableFinishes))
	for i, f := range drawableFinishes {
		weights[i] = base[string(f)]
	}

	if simple {
		if t.IsHardcoreClass() {
			weights[idxOf(Knockout)] += 15
			weights[idxOf(Disqualification)] = 0
		}
		if t == SubmissionMatch {
			weights[idxOf(Submission)] += 40
		}
		if t == LastManStanding {
			weights[idxOf(Knockout)] += 30
			weights[idxOf(Pinfall)] = 10
		}
		return weights
	}

	if t.IsHardcoreClass() {
		weights[idxOf(Knockout)] += 20
	}
	return weights
}

func idxOf(f FinishType) int {
	for i, d := range drawableFinishes {
		if d == f {
			return i
		}
	}
	return 0
}
