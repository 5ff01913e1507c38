// Package referee implements the officiating subsystem: assignment,
// rating influence, finish overrides, in-match incidents, and career
// bookkeeping for the company's referee pool.
package referee

import (
	"sort"

	"github.com/okian/kayfabe/internal/config"
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/pkg/rng"
)

// titleExperienceFloor is the preferred experience for championship bouts.
const titleExperienceFloor = 70.0

// System evaluates referee behavior for one simulation call.
type System struct {
	cfg *config.Config
	src rng.Source
}

// New creates a referee System bound to a config and random source.
func New(cfg *config.Config, src rng.Source) *System {
	return &System{cfg: cfg, src: src}
}

// CanWorkMatch reports whether the referee is available tonight. Heavily
// fatigued officials may beg off with a chance scaling past the threshold.
func (s *System) CanWorkMatch(r *model.Referee) bool {
	if !r.Active || r.Injured {
		return false
	}
	if r.MatchesThisWeek >= s.cfg.MaxRefereeMatchesPerWeek {
		return false
	}
	if r.Fatigue > 80 {
		decline := (r.Fatigue - 80) * 2
		if s.src.Between(0, 100) < decline {
			return false
		}
	}
	return true
}

// suitable applies the booking-office rules: hardcore specialists can
// work anything, and a main-event official below the experience floor
// is never sent out.
func suitable(r *model.Referee) bool {
	if r.HardcoreSpecialist {
		return true
	}
	return !(r.MainEventCapable && r.Experience < titleExperienceFloor)
}

// Assign picks an official for the match. The second return value is
// true when no suitable referee existed and the pick is a raw fallback
// to any active official; nil means the pool is empty.
func (s *System) Assign(pool []*model.Referee, m *model.Match) (*model.Referee, bool) {
	var candidates []*model.Referee
	for _, r := range pool {
		if s.CanWorkMatch(r) && suitable(r) {
			candidates = append(candidates, r)
		}
	}

	if len(candidates) == 0 {
		for _, r := range pool {
			if r.Active && !r.Injured {
				return r, true
			}
		}
		return nil, true
	}

	if m.IsTitleMatch {
		return pickForTitle(candidates), false
	}

	return candidates[s.src.IntN(len(candidates))], false
}

// pickForTitle prefers experienced officials ranked by quality score,
// falling back to raw experience when nobody clears the floor.
func pickForTitle(candidates []*model.Referee) *model.Referee {
	var seasoned []*model.Referee
	for _, r := range candidates {
		if r.Experience >= titleExperienceFloor {
			seasoned = append(seasoned, r)
		}
	}

	if len(seasoned) > 0 {
		sort.SliceStable(seasoned, func(i, j int) bool {
			return seasoned[i].QualityScore() > seasoned[j].QualityScore()
		})
		return seasoned[0]
	}

	best := candidates[0]
	for _, r := range candidates[1:] {
		if r.Experience > best.Experience {
			best = r
		}
	}
	return best
}

// Replacement finds the most experienced available official other than
// the one being replaced. Returns nil when nobody can step in.
func (s *System) Replacement(pool []*model.Referee, exclude types.RefereeID) *model.Referee {
	var best *model.Referee
	for _, r := range pool {
		if r.ID == exclude || !r.Active || r.Injured {
			continue
		}
		if best == nil || r.Experience > best.Experience {
			best = r
		}
	}
	return best
}

// RatingModifier is the bounded additive influence of the official on
// the final match rating.
func (s *System) RatingModifier(r *model.Referee, m *model.Match) float64 {
	if r == nil {
		return 0
	}

	mod := r.Experience/100*5 + r.Consistency/100*3 - r.Corruption/100*4

	if r.MainEventCapable && m.IsTitleMatch {
		mod += 2
	}
	if r.HardcoreSpecialist && m.Type.IsHardcoreClass() {
		mod += 3
	}
	return mod
}

// OverrideFinish lets the official's personality rewrite the drawn
// finish. Checks run in fixed precedence: strictness, then corruption,
// then consistency; the first to fire wins.
func (s *System) OverrideFinish(r *model.Referee, m *model.Match, finish types.FinishType) (types.FinishType, bool) {
	if r == nil {
		return finish, false
	}

	// Sticklers turn borderline spots into DQs and count-outs, but not
	// in matches where anything goes.
	if r.Strictness > 70 && !m.Type.IsHardcoreClass() {
		chance := (r.Strictness - 70) * 0.5
		if s.src.Between(0, 100) < chance {
			if s.src.Float64() < 0.5 {
				return types.Disqualification, true
			}
			return types.Countout, true
		}
	}

	if r.Corruption > 60 && r.CompanyFavored {
		chance := (r.Corruption - 60) * 0.3
		if s.src.Between(0, 100) < chance {
			return types.Controversial, true
		}
	}

	if r.Consistency < 40 {
		chance := (40 - r.Consistency) * 0.2
		if s.src.Between(0, 100) < chance {
			return types.Botched, true
		}
	}

	return finish, false
}
