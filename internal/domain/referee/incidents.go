package referee

import (
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/pkg/rng"
)

// IncidentCategory classifies an in-match officiating incident.
type IncidentCategory string

const (
	IncidentBump       IncidentCategory = "bump"
	IncidentKnockout   IncidentCategory = "knockout"
	IncidentFastCount  IncidentCategory = "fast_count"
	IncidentSlowCount  IncidentCategory = "slow_count"
	IncidentMissedCall IncidentCategory = "missed_call"
	IncidentWrongCall  IncidentCategory = "wrong_call"
	IncidentArgument   IncidentCategory = "argument"
	IncidentEjection   IncidentCategory = "ejection"
)

// Incident describes an officiating mishap and its consequences.
type Incident struct {
	Category         IncidentCategory
	RatingDelta      float64
	RefereeInjured   bool
	NeedsReplacement bool
}

// IncidentChance computes the per-check incident probability in percent.
func (s *System) IncidentChance(r *model.Referee, m *model.Match, phase types.Phase) float64 {
	chance := s.cfg.RefereeIncidentBaseChance

	if phase == types.PhaseClimax {
		chance *= s.cfg.ClimaxIncidentMultiplier
	}
	if r.Consistency < 50 {
		chance += (50 - r.Consistency) * 0.1
	}
	if r.Corruption > 60 {
		chance += (r.Corruption - 60) * 0.1
	}
	if r.Fatigue > 70 {
		chance += (r.Fatigue - 70) * 0.2
	}
	if m.Type.IsHighRisk() {
		chance *= s.cfg.HighRiskIncidentMultiplier
	}

	if chance > s.cfg.RefereeIncidentCap {
		chance = s.cfg.RefereeIncidentCap
	}
	return chance
}

// CheckIncident rolls for an in-match incident. A knockout injures the
// official on the spot and demands a replacement; it can only happen in
// the closing stretch, just as ring bumps belong to the mid-match churn.
func (s *System) CheckIncident(r *model.Referee, m *model.Match, phase types.Phase) *Incident {
	if !s.cfg.RefereeIncidentsEnabled || r == nil {
		return nil
	}

	chance := s.IncidentChance(r, m, phase)
	if s.src.Between(0, 100) >= chance {
		return nil
	}

	category := s.pickCategory(r, m, phase)

	switch category {
	case IncidentBump:
		return &Incident{Category: category, RatingDelta: -2}
	case IncidentKnockout:
		r.Injured = true
		r.InjuryWeeksRemaining = s.src.IntBetween(1, 5)
		return &Incident{Category: category, RatingDelta: -5, RefereeInjured: true, NeedsReplacement: true}
	case IncidentFastCount, IncidentWrongCall:
		return &Incident{Category: category, RatingDelta: -3}
	case IncidentMissedCall, IncidentSlowCount:
		return &Incident{Category: category, RatingDelta: -1.5}
	case IncidentEjection:
		return &Incident{Category: category, RatingDelta: -2}
	default:
		return &Incident{Category: IncidentArgument, RatingDelta: -1}
	}
}

// pickCategory weights each incident by the attribute that causes it.
func (s *System) pickCategory(r *model.Referee, m *model.Match, phase types.Phase) IncidentCategory {
	categories := []IncidentCategory{
		IncidentFastCount,
		IncidentSlowCount,
		IncidentMissedCall,
		IncidentWrongCall,
		IncidentArgument,
		IncidentEjection,
	}
	weights := []float64{
		r.Corruption,
		r.Fatigue,
		100 - r.Consistency,
		(100 - r.Consistency) * 0.8,
		r.Strictness * 0.5,
		r.Strictness * 0.3,
	}

	if phase == types.PhaseMid {
		categories = append(categories, IncidentBump)
		w := 15.0
		if m.Type.IsHighRisk() {
			w *= 2
		}
		weights = append(weights, w)
	}
	if phase == types.PhaseClimax {
		categories = append(categories, IncidentKnockout)
		w := 5 + r.Fatigue*0.1
		if m.Type.IsHardcoreClass() {
			w *= 2
		}
		weights = append(weights, w)
	}

	idx := rng.WeightedIndex(s.src, weights)
	return categories[idx]
}
