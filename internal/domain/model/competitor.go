// Package model contains domain models passed between layers.
package model

import (
	types "github.com/okian/kayfabe/internal/domain/types"
)

// Injury tracks an active competitor injury.
type Injury struct {
	Severity       types.Severity
	WeeksRemaining int
	Description    string
}

// Competitor is a roster member the engine can book into matches.
// Skill attributes and state values live on the 0-100 scale except
// Momentum, which runs -100..100.
type Competitor struct {
	ID       types.CompetitorID
	Name     string
	Hometown string

	// In-ring skills.
	Technical  float64
	Brawling   float64
	Aerial     float64
	Psychology float64

	// Supporting attributes.
	Charisma  float64
	Mic       float64
	Stamina   float64
	Toughness float64

	// Mutable state, owned by the roster context.
	Fatigue    float64
	Morale     float64
	Momentum   float64
	Popularity float64
	Injury     *Injury

	MatchesThisWeek  int
	MatchesThisMonth int
	Wins             int
	Losses           int
	Retired          bool

	Friends map[types.CompetitorID]struct{}
	Rivals  map[types.CompetitorID]struct{}
	Traits  map[types.TraitID]struct{}
	Teams   []types.TeamID
}

// IsInjured reports whether the competitor is currently sidelined.
func (c *Competitor) IsInjured() bool {
	return c.Injury != nil && c.Injury.WeeksRemaining > 0
}

// IsFriend reports whether the other competitor is in the friend set.
func (c *Competitor) IsFriend(other types.CompetitorID) bool {
	_, ok := c.Friends[other]
	return ok
}

// IsRival reports whether the other competitor is in the rival set.
func (c *Competitor) IsRival(other types.CompetitorID) bool {
	_, ok := c.Rivals[other]
	return ok
}

// HasTrait reports whether the competitor carries the trait.
func (c *Competitor) HasTrait(id types.TraitID) bool {
	_, ok := c.Traits[id]
	return ok
}

// AddFatigue accrues fatigue, clamped to [0,100].
func (c *Competitor) AddFatigue(delta float64) {
	c.Fatigue = clamp(c.Fatigue+delta, 0, 100)
}

// AdjustMorale shifts morale, clamped to [0,100].
func (c *Competitor) AdjustMorale(delta float64) {
	c.Morale = clamp(c.Morale+delta, 0, 100)
}

// AdjustMomentum shifts momentum, clamped to [-100,100].
func (c *Competitor) AdjustMomentum(delta float64) {
	c.Momentum = clamp(c.Momentum+delta, -100, 100)
}

// AdjustPopularity shifts popularity, clamped to [0,100].
func (c *Competitor) AdjustPopularity(delta float64) {
	c.Popularity = clamp(c.Popularity+delta, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
