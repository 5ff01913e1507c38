// Package perf computes per-competitor performance scores and the final
// match rating. All formulas read their tuning from config so booking
// offices can reshape the product without touching code.
package perf

import (
	"strings"

	"github.com/okian/kayfabe/internal/config"
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/pkg/rng"
)

// Calculator derives performance numbers for one simulation call.
type Calculator struct {
	cfg *config.Config
	src rng.Source
}

// New creates a Calculator bound to a config and a random source.
func New(cfg *config.Config, src rng.Source) *Calculator {
	return &Calculator{cfg: cfg, src: src}
}

// MatchContext carries the match facts performance depends on.
type MatchContext struct {
	Type     types.MatchType
	Weights  types.WeightProfile
	IsTitle  bool
	Location string
	Simple   bool
}

// MoraleAdjusted returns the in-ring skills scaled by the competitor's
// morale band. Aerial is exempt: confidence shows in execution, not in
// willingness to leave the mat.
func (c *Calculator) MoraleAdjusted(w *model.Competitor) (tech, brawl, psych float64) {
	factor := 1.0
	switch {
	case w.Morale >= c.cfg.HighMoraleThreshold:
		factor = c.cfg.HighMoraleBoost
	case w.Morale <= c.cfg.LowMoraleThreshold:
		factor = c.cfg.LowMoralePenalty
	}
	return w.Technical * factor, w.Brawling * factor, w.Psychology * factor
}

// BasePerformance computes the weighted skill average, scaled by the
// hometown bonus and a random nightly form factor.
func (c *Calculator) BasePerformance(w *model.Competitor, mc MatchContext) float64 {
	tech, brawl, psych := c.MoraleAdjusted(w)

	score := (tech*mc.Weights.Technical +
		brawl*mc.Weights.Brawling +
		psych*mc.Weights.Psychology +
		w.Aerial*mc.Weights.Aerial) / 4

	if atHome(mc.Location, w.Hometown) {
		score *= c.cfg.HometownBonus
	}

	form := 1 + c.src.Between(-c.cfg.FormVariance, c.cfg.FormVariance)
	return score * form
}

// atHome reports whether the venue is in the competitor's hometown.
// Locations are free text ("Chicago, IL"), so match loosely.
func atHome(location, hometown string) bool {
	if location == "" || hometown == "" {
		return false
	}
	return strings.Contains(strings.ToLower(location), strings.ToLower(hometown))
}

// TraitBonuses applies the competitor's trait effects to a base score.
func (c *Calculator) TraitBonuses(score float64, kinds []model.TraitKind, w *model.Competitor, mc MatchContext) float64 {
	for _, kind := range kinds {
		switch kind {
		case model.TraitCrowdFavourite:
			if atHome(mc.Location, w.Hometown) {
				score *= c.cfg.CrowdFavouriteBonus
			}
		case model.TraitHardcoreSpecialist:
			if mc.Type.IsHardcoreClass() {
				score += c.cfg.HardcoreSpecialistBonus
			}
		case model.TraitSubmissionExpert:
			score += c.src.Between(0, c.cfg.SubmissionExpertMax)
		case model.TraitBigMatchPerformer:
			if mc.IsTitle {
				score *= c.cfg.BigMatchPerformerBonus
			}
		case model.TraitLazyWorker:
			if c.src.Float64() < c.cfg.LazyWorkerChance {
				score *= c.cfg.LazyWorkerPenalty
			}
		case model.TraitChemistryMaster:
			score += c.cfg.ChemistryMasterBonus
		default:
			// Unknown trait kinds are inert.
		}
	}
	return score
}

// FeudHeatBonus returns the strongest heat bonus among the competitor's
// own feuds with at least two participants in the match. Competitors
// outside every qualifying feud get nothing.
func (c *Calculator) FeudHeatBonus(id types.CompetitorID, feuds []*model.Feud, present map[types.CompetitorID]struct{}) float64 {
	var best float64
	for _, f := range feuds {
		if !f.Involves(id) {
			continue
		}
		n := 0
		for pid := range present {
			if f.Involves(pid) {
				n++
			}
		}
		if n < 2 {
			continue
		}
		if bonus := f.Heat / c.cfg.FeudHeatDivisor; bonus > best {
			best = bonus
		}
	}
	return best
}

// ChemistryModifier sums the pairwise friend/rival adjustments between a
// competitor and the opposition.
func (c *Calculator) ChemistryModifier(w *model.Competitor, opponents []*model.Competitor, simple bool) float64 {
	bonus := c.cfg.ChemistryBonus
	if simple {
		bonus = c.cfg.SimpleChemistryBonus
	}

	var total float64
	for _, o := range opponents {
		if o.ID == w.ID {
			continue
		}
		if w.IsFriend(o.ID) && o.IsFriend(w.ID) {
			total += bonus
		}
		if w.IsRival(o.ID) && o.IsRival(w.ID) {
			total -= bonus
		}
	}
	return total
}

// TagChemistryBonus sums the fixed chemistry of every team fielding at
// least two members in the match.
func (c *Calculator) TagChemistryBonus(teams []*model.TagTeam, present map[types.CompetitorID]struct{}) float64 {
	var total float64
	for _, t := range teams {
		if t.MembersPresent(present) >= 2 {
			total += t.Chemistry
		}
	}
	return total
}

// RatingInputs aggregates everything the final rating formula consumes.
type RatingInputs struct {
	Scores          []float64
	MeanPsychology  float64
	MeanPopularity  float64
	TagChemistry    float64
	RefereeModifier float64
	ManagerBonus    float64
	RoadAgentBonus  float64
	BookingModifier float64
}

// MatchRating folds the aggregate inputs into a final [0,100] rating.
// Simple mode shrinks the psychology/popularity weights and the noise
// band; the formula shape is identical.
func (c *Calculator) MatchRating(in RatingInputs, simple bool) float64 {
	var mean float64
	if len(in.Scores) > 0 {
		for _, s := range in.Scores {
			mean += s
		}
		mean /= float64(len(in.Scores))
	}

	psychW, popW, noise := c.cfg.PsychologyWeight, c.cfg.PopularityWeight, c.cfg.RatingRandomness
	if simple {
		psychW, popW, noise = c.cfg.SimplePsychologyWeight, c.cfg.SimplePopularityWeight, c.cfg.SimpleRatingRandomness
	}

	rating := mean*c.cfg.PerformanceWeight +
		in.MeanPsychology*psychW +
		in.MeanPopularity*popW +
		in.TagChemistry +
		in.RefereeModifier +
		in.ManagerBonus +
		in.RoadAgentBonus +
		in.BookingModifier +
		c.src.Between(-noise, noise)

	if rating < 0 {
		return 0
	}
	if rating > 100 {
		return 100
	}
	return rating
}

// ManagerBonus converts a manager's presence into a rating bump.
func ManagerBonus(m *model.Staff) float64 {
	if m == nil {
		return 0
	}
	return (m.Charisma + m.Mic) / 20
}

// RoadAgentBonus converts a road agent's influence into a rating bump.
func RoadAgentBonus(a *model.Staff) float64 {
	if a == nil {
		return 0
	}
	return a.PsychologyInfluence / 10
}
