package engine

import (
	"github.com/okian/kayfabe/internal/roster"
)

// runSimple is the bulk-friendly fast path: one scoring pass, no phase
// churn and no officiating incidents, with softer noise bands. The
// formula shape matches the advanced mode so ratings land in the same
// neighborhood for the same inputs.
func (e *Engine) runSimple(st *matchState, rc *roster.Context) {
	for _, c := range st.competitors {
		score := e.perf.BasePerformance(c, st.mc)
		score = e.perf.TraitBonuses(score, rc.TraitKinds(c), c, st.mc)
		score += e.perf.FeudHeatBonus(c.ID, rc.Feuds(), st.present)
		score += e.perf.ChemistryModifier(c, st.opponents(c.ID), true)
		score += e.src.Between(-e.cfg.SimpleScoreNoise, e.cfg.SimpleScoreNoise)

		st.scores[c.ID] = score
	}

	e.pickWinner(st, e.cfg.SimpleWinnerRandomness)
	e.drawFinish(st, e.cfg.SimpleFinishWeights, true)
	e.finishRating(st, rc, true)
	e.aftermath(st, rc, true)
}
