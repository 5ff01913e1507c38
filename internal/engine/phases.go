package engine

import (
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/internal/roster"
	"github.com/okian/kayfabe/pkg/metrics"
)

// runPhases drives the advanced four-phase state machine: opening,
// mid-match, climax, aftermath.
func (e *Engine) runPhases(st *matchState, rc *roster.Context) {
	e.phaseOpening(st, rc)
	e.phaseMid(st, rc)
	e.phaseClimax(st, rc)
	e.finishRating(st, rc, false)
	e.aftermath(st, rc, false)
}

// phaseOpening establishes each competitor's baseline: skills, traits,
// feud heat, chemistry, and the official's early influence.
func (e *Engine) phaseOpening(st *matchState, rc *roster.Context) {
	for _, c := range st.competitors {
		score := e.perf.BasePerformance(c, st.mc)
		score = e.perf.TraitBonuses(score, rc.TraitKinds(c), c, st.mc)
		score += e.perf.FeudHeatBonus(c.ID, rc.Feuds(), st.present)
		score += e.perf.ChemistryModifier(c, st.opponents(c.ID), false)

		// An experienced hand settles the opening exchanges.
		if st.ref != nil && st.ref.Experience > 70 {
			score += st.ref.Experience * 0.02
		}

		st.scores[c.ID] = score
		st.momentum[c.ID] = 50
	}
}

// phaseMid churns momentum through a random number of swings, sprinkles
// near falls, and gives the official a chance to get involved.
func (e *Engine) phaseMid(st *matchState, rc *roster.Context) {
	shifts := e.src.IntBetween(e.cfg.MinMomentumShifts, e.cfg.MaxMomentumShifts+1)

	for i := 0; i < shifts; i++ {
		surging := st.competitors[e.src.IntN(len(st.competitors))]
		gain := e.src.Between(e.cfg.MomentumGainMin, e.cfg.MomentumGainMax)

		st.momentum[surging.ID] = min(st.momentum[surging.ID]+gain, 100)
		st.scores[surging.ID] += gain * e.cfg.MomentumScoreFactor

		for _, other := range st.competitors {
			if other.ID == surging.ID {
				continue
			}
			st.momentum[other.ID] = max(st.momentum[other.ID]-gain*0.5, 0)
		}
	}

	if e.src.Float64() < e.cfg.NearFallChance {
		lucky := st.competitors[e.src.IntN(len(st.competitors))]
		st.scores[lucky.ID] += e.cfg.NearFallBonus
	}

	e.checkIncident(st, types.PhaseMid)
}

// phaseClimax converts remaining momentum into score, decides the
// winner, and draws the finish.
func (e *Engine) phaseClimax(st *matchState, rc *roster.Context) {
	e.checkIncident(st, types.PhaseClimax)
	if st.incident != nil && st.incident.NeedsReplacement {
		sub := e.refs.Replacement(rc.Referees(), st.ref.ID)
		if sub == nil {
			st.warn(warnNoReplacementReferee)
			metrics.RecordWarning(warnNoReplacementReferee)
		} else {
			st.ref = sub
			metrics.RecordRefereeReplacement()
		}
	}

	for _, c := range st.competitors {
		st.scores[c.ID] += st.momentum[c.ID] * e.cfg.MomentumClimaxFactor
	}

	e.pickWinner(st, e.cfg.WinnerRandomness)
	e.drawFinish(st, e.cfg.FinishWeights, false)
}

// checkIncident rolls the officiating incident for a phase. Only the
// first incident of a match sticks; officials do not melt down twice.
func (e *Engine) checkIncident(st *matchState, phase types.Phase) {
	if st.incident != nil || st.ref == nil {
		return
	}
	if inc := e.refs.CheckIncident(st.ref, st.match, phase); inc != nil {
		st.incident = inc
		// The mishap drags every participant's work down, so the hit
		// flows through the performance scores.
		for _, c := range st.competitors {
			st.scores[c.ID] += inc.RatingDelta
		}
		metrics.RecordRefereeIncident(string(inc.Category))
	}
}
