package model

import (
	types "github.com/okian/kayfabe/internal/domain/types"
)

// ratingWindow bounds the rolling last-N match rating history.
const ratingWindow = 10

// RefereeStats is a referee's cumulative career record.
type RefereeStats struct {
	TotalMatches       int
	TitleMatches       int
	HardcoreMatches    int
	FinishCounts       map[types.FinishType]int
	ControversialCalls int
	PerfectMatches     int

	// Rating history: a rolling recent window plus career accumulators.
	RecentRatings     []float64
	RatedMatches      int
	CareerRatingTotal float64
	HighestRating     float64
	LowestRating      float64

	Reputation   float64
	Achievements []string
}

// RecordFinish increments the counter for a finish type.
func (s *RefereeStats) RecordFinish(f types.FinishType) {
	if s.FinishCounts == nil {
		s.FinishCounts = make(map[types.FinishType]int)
	}
	s.FinishCounts[f]++
}

// PushRating appends a match rating to the rolling window and folds it
// into the career accumulators.
func (s *RefereeStats) PushRating(rating float64) {
	if s.RatedMatches == 0 || rating > s.HighestRating {
		s.HighestRating = rating
	}
	if s.RatedMatches == 0 || rating < s.LowestRating {
		s.LowestRating = rating
	}
	s.RatedMatches++
	s.CareerRatingTotal += rating

	s.RecentRatings = append(s.RecentRatings, rating)
	if len(s.RecentRatings) > ratingWindow {
		s.RecentRatings = s.RecentRatings[len(s.RecentRatings)-ratingWindow:]
	}
}

// AverageRating returns the mean of the rolling window, or 0 when empty.
func (s *RefereeStats) AverageRating() float64 {
	if len(s.RecentRatings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range s.RecentRatings {
		sum += r
	}
	return sum / float64(len(s.RecentRatings))
}

// CareerAverageRating returns the mean rating over the whole career, or
// 0 before the first rated match.
func (s *RefereeStats) CareerAverageRating() float64 {
	if s.RatedMatches == 0 {
		return 0
	}
	return s.CareerRatingTotal / float64(s.RatedMatches)
}

// AddAchievement records an achievement once.
func (s *RefereeStats) AddAchievement(name string) bool {
	for _, a := range s.Achievements {
		if a == name {
			return false
		}
	}
	s.Achievements = append(s.Achievements, name)
	return true
}

// Referee is an official in the company pool. Attribute scale is 0-100.
type Referee struct {
	ID   types.RefereeID
	Name string

	Strictness  float64
	Corruption  float64
	Experience  float64
	Consistency float64

	MainEventCapable   bool
	HardcoreSpecialist bool
	CompanyFavored     bool

	Active               bool
	Injured              bool
	InjuryWeeksRemaining int

	MatchesThisWeek  int
	ConsecutiveWeeks int
	Fatigue          float64

	Stats RefereeStats
}

// QualityScore ranks referees for title assignments. Corruption counts
// against quality.
func (r *Referee) QualityScore() float64 {
	return (r.Experience + r.Consistency + (100 - r.Corruption)) / 3
}

// AddFatigue accrues officiating fatigue, clamped to [0,100].
func (r *Referee) AddFatigue(delta float64) {
	r.Fatigue = clamp(r.Fatigue+delta, 0, 100)
}

// AdjustReputation shifts reputation, clamped to [0,100].
func (r *Referee) AdjustReputation(delta float64) {
	r.Stats.Reputation = clamp(r.Stats.Reputation+delta, 0, 100)
}
