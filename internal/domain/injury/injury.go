// Package injury rolls post-match competitor injuries and applies their
// consequences. The risk model is multiplicative on top of an additive
// surcharge stack, so tired, fragile competitors in dangerous gimmicks
// compound quickly.
package injury

import (
	"github.com/okian/kayfabe/internal/config"
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/pkg/rng"
)

// Model evaluates injury risk for one simulation call.
type Model struct {
	cfg *config.Config
	src rng.Source
}

// New creates an injury Model bound to a config and random source.
func New(cfg *config.Config, src rng.Source) *Model {
	return &Model{cfg: cfg, src: src}
}

// Chance computes the injury probability in percent, before the roll.
// Simple mode halves the base and uses the reduced match-type risks.
func (m *Model) Chance(w *model.Competitor, matchType types.MatchType, simple bool) float64 {
	base := m.cfg.BaseInjuryChance
	if simple {
		base *= m.cfg.SimpleInjuryMultiplier
	}

	chance := base + matchType.InjuryRisk(simple)

	if w.Fatigue > m.cfg.InjuryFatigueThreshold {
		chance += (w.Fatigue - m.cfg.InjuryFatigueThreshold) * m.cfg.InjuryFatigueRate
	}

	chance *= (100 - w.Toughness) / 100

	if w.Stamina < m.cfg.LowStaminaThreshold {
		chance *= m.cfg.LowStaminaMultiplier
	}

	if chance > m.cfg.MaxInjuryChance {
		chance = m.cfg.MaxInjuryChance
	}
	if chance < 0 {
		chance = 0
	}
	return chance
}

// Severity buckets a computed chance magnitude into an injury grade.
func (m *Model) Severity(chance float64) types.Severity {
	switch {
	case chance < m.cfg.MinorInjuryThreshold:
		return types.SeverityMinor
	case chance < m.cfg.ModerateInjuryThreshold:
		return types.SeverityModerate
	default:
		return types.SeverityMajor
	}
}

// RecoveryWeeks rolls the recovery period for a severity, reduced by the
// doctor's skill (a percentage discount on the rolled weeks).
func (m *Model) RecoveryWeeks(sev types.Severity, doctorSkill float64) int {
	var lo, hi int
	switch sev {
	case types.SeverityMinor:
		lo, hi = m.cfg.MinorRecoveryMin, m.cfg.MinorRecoveryMax
	case types.SeverityModerate:
		lo, hi = m.cfg.ModerateRecoveryMin, m.cfg.ModerateRecoveryMax
	case types.SeverityMajor:
		lo, hi = m.cfg.MajorRecoveryMin, m.cfg.MajorRecoveryMax
	default:
		return 0
	}

	weeks := m.src.IntBetween(lo, hi+1)
	if doctorSkill > 0 {
		weeks -= int(float64(weeks) * doctorSkill / 100)
	}
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

func describe(sev types.Severity) string {
	switch sev {
	case types.SeverityMinor:
		return "banged up"
	case types.SeverityModerate:
		return "legitimate injury"
	case types.SeverityMajor:
		return "career-threatening injury"
	default:
		return ""
	}
}

// statPenalty returns the multiplicative penalty for a severity.
func (m *Model) statPenalty(sev types.Severity) float64 {
	switch sev {
	case types.SeverityMinor:
		return m.cfg.MinorStatPenalty
	case types.SeverityModerate:
		return m.cfg.ModerateStatPenalty
	case types.SeverityMajor:
		return m.cfg.MajorStatPenalty
	default:
		return 1
	}
}

// Evaluate rolls for an injury and, on trigger, mutates the competitor:
// injury status set, stats penalized. Returns the injury or nil.
// Simple mode always produces a short minor injury with a flat stamina
// knock instead of the multiplicative penalties.
func (m *Model) Evaluate(w *model.Competitor, matchType types.MatchType, doctorSkill float64, simple bool) *model.Injury {
	if !m.cfg.InjuriesEnabled {
		return nil
	}

	// A competitor already on the injury list is exempt until recovered;
	// re-rolling would stack the stat penalties on every appearance.
	if w.IsInjured() {
		return nil
	}

	chance := m.Chance(w, matchType, simple)
	if m.src.Between(0, 100) >= chance {
		return nil
	}

	if simple {
		inj := &model.Injury{
			Severity:       types.SeverityMinor,
			WeeksRemaining: m.src.IntBetween(1, 3),
			Description:    describe(types.SeverityMinor),
		}
		w.Injury = inj
		w.Stamina = max(0, w.Stamina-3)
		return inj
	}

	sev := m.Severity(chance)
	inj := &model.Injury{
		Severity:       sev,
		WeeksRemaining: m.RecoveryWeeks(sev, doctorSkill),
		Description:    describe(sev),
	}
	w.Injury = inj

	p := m.statPenalty(sev)
	w.Technical *= p
	w.Brawling *= p
	w.Aerial *= p
	w.Stamina *= p
	return inj
}

// AdvanceWeek ticks down an active injury and clears it on recovery.
// Returns true if the competitor healed this week.
func AdvanceWeek(w *model.Competitor) bool {
	if w.Injury == nil {
		return false
	}
	w.Injury.WeeksRemaining--
	if w.Injury.WeeksRemaining <= 0 {
		w.Injury = nil
		return true
	}
	return false
}
