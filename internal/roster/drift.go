package roster

import (
	injury "github.com/okian/kayfabe/internal/domain/injury"
	model "github.com/okian/kayfabe/internal/domain/model"
	referee "github.com/okian/kayfabe/internal/domain/referee"
)

// MatchOutcome is the per-competitor slice of a simulated match the
// drift rules need.
type MatchOutcome struct {
	Won          bool
	Rating       float64
	CleanFinish  bool
	IsTitleMatch bool
	IsMainEvent  bool
	FatigueCost  float64
}

// ApplyMatchDrift mutates a competitor's state after a match: fatigue,
// morale, momentum, popularity, and the career counters. Callers must
// hold the lock.
func (r *Context) ApplyMatchDrift(c *model.Competitor, out MatchOutcome) {
	r.applyFatigue(c, out)
	r.applyMorale(c, out)
	r.applyMomentum(c, out)
	r.applyPopularity(c, out)

	if out.Won {
		c.Wins++
	} else {
		c.Losses++
	}
	c.MatchesThisWeek++
	c.MatchesThisMonth++
}

func (r *Context) applyFatigue(c *model.Competitor, out MatchOutcome) {
	gain := 15 + out.FatigueCost - c.Stamina/10
	if out.IsTitleMatch {
		gain += 5
	}
	if c.Fatigue > 60 {
		gain += 10
	}
	if gain < 5 {
		gain = 5
	}
	c.AddFatigue(gain)
}

func (r *Context) applyMorale(c *model.Competitor, out MatchOutcome) {
	if out.Won {
		if out.IsTitleMatch || out.IsMainEvent {
			c.AdjustMorale(10)
		} else {
			c.AdjustMorale(5)
		}
		return
	}
	if out.CleanFinish {
		c.AdjustMorale(-10)
	} else {
		c.AdjustMorale(-5)
	}
}

func (r *Context) applyMomentum(c *model.Competitor, out MatchOutcome) {
	var delta float64
	if out.Won {
		switch {
		case out.IsTitleMatch:
			delta = 20
		case out.Rating > 80:
			delta = 15
		case out.Rating > 70:
			delta = 10
		default:
			delta = 5
		}
	} else {
		if out.IsTitleMatch {
			delta = -10
		} else {
			delta = -5
		}
	}
	if out.CleanFinish {
		delta *= 1.2
	}
	c.AdjustMomentum(delta)
}

func (r *Context) applyPopularity(c *model.Competitor, out MatchOutcome) {
	var delta float64
	switch {
	case out.Rating >= 90:
		delta = 3
	case out.Rating >= 80:
		delta = 2
	case out.Rating >= 70:
		delta = 1
	case out.Rating < 50:
		delta = -1
	}
	if out.IsTitleMatch {
		delta++
	}
	if c.Charisma > 80 {
		delta *= 1.5
	}
	c.AdjustPopularity(delta)
}

// AdvanceWeek runs the weekly reset across the whole roster: injury
// countdowns, fatigue recovery, momentum decay for the unbooked, the
// weekly morale grind, counter resets, and referee upkeep.
func (r *Context) AdvanceWeek(refSys *referee.System) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.competitors {
		injury.AdvanceWeek(c)

		recovery := (r.cfg.FatigueRecoveryPerDay + c.Stamina/20) * 7
		if c.IsInjured() {
			recovery /= 2
		}
		c.AddFatigue(-recovery)

		if c.MatchesThisWeek == 0 {
			c.AdjustMomentum(-c.Momentum * r.cfg.MomentumDecay)
			c.AdjustMorale(-2)
		} else {
			c.AdjustMorale(-1)
		}
		c.MatchesThisWeek = 0
	}

	for _, ref := range r.referees {
		refSys.AdvanceWeek(ref)
	}
}

// AdvanceMonth resets the monthly match counters.
func (r *Context) AdvanceMonth() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.competitors {
		c.MatchesThisMonth = 0
	}
}
