package referee

import (
	"fmt"

	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
)

// perfectRatingFloor is the rating a match must reach to count as a
// perfect outing for the official, alongside a clean finish and no
// incidents.
const perfectRatingFloor = 85.0

// RecordMatch updates the official's career record after a bout:
// counters, the rolling rating window, reputation, achievements, fatigue,
// and a small chance of a post-match injury.
func (s *System) RecordMatch(r *model.Referee, m *model.Match, rating float64, incident *Incident) {
	if r == nil {
		return
	}

	r.Stats.TotalMatches++
	if m.IsTitleMatch {
		r.Stats.TitleMatches++
	}
	if m.Type.IsHardcoreClass() {
		r.Stats.HardcoreMatches++
	}
	r.Stats.RecordFinish(m.Finish)
	if m.Finish == types.Controversial {
		r.Stats.ControversialCalls++
	}
	r.Stats.PushRating(rating)

	switch {
	case rating >= 80:
		r.AdjustReputation(1)
	case rating < 50:
		r.AdjustReputation(-1)
	}
	if incident != nil {
		switch incident.Category {
		case IncidentKnockout:
			r.AdjustReputation(-2)
		case IncidentBump:
			r.AdjustReputation(-1)
		}
	}

	if rating >= perfectRatingFloor && incident == nil && m.Finish.IsClean() {
		r.Stats.PerfectMatches++
	}

	r.AddFatigue(s.cfg.RefereeFatiguePerMatch)
	r.MatchesThisWeek++

	s.checkAchievements(r)
	s.rollPostMatchInjury(r, m, incident)
}

func (s *System) checkAchievements(r *model.Referee) {
	milestones := []struct {
		count int
		name  string
	}{
		{100, "100 matches officiated"},
		{500, "500 matches officiated"},
		{1000, "1000 matches officiated"},
	}
	for _, ms := range milestones {
		if r.Stats.TotalMatches >= ms.count {
			r.Stats.AddAchievement(ms.name)
		}
	}

	if r.Stats.PerfectMatches >= 50 {
		r.Stats.AddAchievement("50 perfect matches")
	}
	if r.Stats.TotalMatches >= 50 && r.Stats.CareerAverageRating() >= 80 {
		r.Stats.AddAchievement("elite officiating average")
	}
	if r.Stats.TitleMatches >= 100 {
		r.Stats.AddAchievement("100 title matches")
	}
	if r.Stats.ControversialCalls >= 25 {
		r.Stats.AddAchievement("25 controversial calls")
	}
}

// rollPostMatchInjury handles wear-and-tear injuries outside the
// in-match knockout path. An official already knocked out tonight is
// vastly more likely to be genuinely hurt.
func (s *System) rollPostMatchInjury(r *model.Referee, m *model.Match, incident *Incident) {
	if r.Injured {
		return
	}

	chance := 0.5 + 0.02*r.Fatigue
	if m.Type.IsHardcoreClass() {
		chance *= 3
	}
	if incident != nil {
		switch incident.Category {
		case IncidentKnockout:
			chance *= 10
		case IncidentBump:
			chance *= 5
		}
	}

	if s.src.Between(0, 100) >= chance {
		return
	}

	r.Injured = true
	switch {
	case chance < 5:
		r.InjuryWeeksRemaining = s.src.IntBetween(1, 3)
	case chance < 15:
		r.InjuryWeeksRemaining = s.src.IntBetween(3, 6)
	default:
		r.InjuryWeeksRemaining = s.src.IntBetween(6, 12)
	}
}

// AdvanceWeek applies weekly upkeep: injury countdown, fatigue recovery,
// consecutive-week tracking, and the weekly match counter reset.
func (s *System) AdvanceWeek(r *model.Referee) {
	if r.Injured {
		r.InjuryWeeksRemaining--
		if r.InjuryWeeksRemaining <= 0 {
			r.Injured = false
			r.InjuryWeeksRemaining = 0
		}
	}

	r.AddFatigue(-s.cfg.RefereeFatigueRecovery)

	if r.MatchesThisWeek > 0 {
		r.ConsecutiveWeeks++
	} else {
		r.ConsecutiveWeeks = 0
	}
	r.MatchesThisWeek = 0
}

// StyleDescriptor summarizes how the official comes across on camera.
func StyleDescriptor(r *model.Referee) string {
	switch {
	case r.Corruption >= 60:
		return "crooked"
	case r.Strictness >= 80:
		return "by the book"
	case r.Consistency >= 85:
		return "reliable"
	case r.Experience >= 85:
		return "veteran presence"
	case r.Consistency < 40:
		return "erratic"
	default:
		return "journeyman"
	}
}

// DefaultPool generates a small spread of officials covering the
// assignment rules: a main-event veteran, a hardcore specialist, a
// crooked company man, a green hand, and a steady mid-carder.
func DefaultPool() []*model.Referee {
	seeds := []struct {
		name                         string
		strict, corrupt, exp, cons   float64
		mainEvent, hardcore, favored bool
	}{
		{"Earl Fairweather", 75, 5, 90, 85, true, false, false},
		{"Duke Malone", 40, 10, 70, 65, false, true, false},
		{"Sly Cordell", 30, 75, 80, 55, true, false, true},
		{"Tim Natter", 55, 5, 25, 45, false, false, false},
		{"Rico Estrada", 60, 15, 60, 75, false, false, false},
	}

	pool := make([]*model.Referee, 0, len(seeds))
	for i, sp := range seeds {
		pool = append(pool, &model.Referee{
			ID:                 types.RefereeID(fmt.Sprintf("ref-default-%d", i+1)),
			Name:               sp.name,
			Strictness:         sp.strict,
			Corruption:         sp.corrupt,
			Experience:         sp.exp,
			Consistency:        sp.cons,
			MainEventCapable:   sp.mainEvent,
			HardcoreSpecialist: sp.hardcore,
			CompanyFavored:     sp.favored,
			Active:             true,
			Stats:              model.RefereeStats{Reputation: 50},
		})
	}
	return pool
}
