// Package roster owns the shared mutable world the engine simulates
// against: competitors, officials, storyline modifiers, and backstage
// staff. The engine locks the context for the duration of each match so
// bulk workers never interleave mutations.
package roster

import (
	"sort"
	"sync"

	"github.com/okian/kayfabe/internal/config"
	model "github.com/okian/kayfabe/internal/domain/model"
	referee "github.com/okian/kayfabe/internal/domain/referee"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/pkg/metrics"
)

// Context is the engine's view of the promotion. All reads and writes
// during a simulation happen under Lock.
type Context struct {
	mu  sync.Mutex
	cfg *config.Config

	competitors map[types.CompetitorID]*model.Competitor
	referees    []*model.Referee
	traits      map[types.TraitID]*model.Trait
	feuds       []*model.Feud
	teams       []*model.TagTeam

	managers  map[types.CompetitorID]*model.Staff
	roadAgent *model.Staff
	doctor    *model.Staff
}

// Option applies a configuration option to the Context.
type Option func(*Context)

// WithCompetitors seeds the roster.
func WithCompetitors(cs ...*model.Competitor) Option {
	return func(r *Context) {
		for _, c := range cs {
			r.competitors[c.ID] = c
		}
	}
}

// WithReferees seeds the officiating pool.
func WithReferees(rs ...*model.Referee) Option {
	return func(r *Context) {
		r.referees = append(r.referees, rs...)
	}
}

// WithTraits registers the trait vocabulary.
func WithTraits(ts ...*model.Trait) Option {
	return func(r *Context) {
		for _, t := range ts {
			r.traits[t.ID] = t
		}
	}
}

// WithFeuds registers active feuds.
func WithFeuds(fs ...*model.Feud) Option {
	return func(r *Context) {
		r.feuds = append(r.feuds, fs...)
	}
}

// WithTeams registers tag teams.
func WithTeams(ts ...*model.TagTeam) Option {
	return func(r *Context) {
		r.teams = append(r.teams, ts...)
	}
}

// WithRoadAgent sets the road agent laying out matches.
func WithRoadAgent(s *model.Staff) Option {
	return func(r *Context) { r.roadAgent = s }
}

// WithDoctor sets the team doctor shortening recoveries.
func WithDoctor(s *model.Staff) Option {
	return func(r *Context) { r.doctor = s }
}

// New creates a roster context. An empty referee pool falls back to the
// default generated officials so every match can be assigned.
func New(cfg *config.Config, opts ...Option) *Context {
	r := &Context{
		cfg:         cfg,
		competitors: make(map[types.CompetitorID]*model.Competitor),
		traits:      make(map[types.TraitID]*model.Trait),
		managers:    make(map[types.CompetitorID]*model.Staff),
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.referees) == 0 {
		r.referees = referee.DefaultPool()
	}

	metrics.UpdateRosterCounts(len(r.competitors), len(r.referees))
	return r
}

// Lock acquires the context for one simulation call.
func (r *Context) Lock() { r.mu.Lock() }

// Unlock releases the context.
func (r *Context) Unlock() { r.mu.Unlock() }

// Competitor resolves an identity. Callers must hold the lock.
func (r *Context) Competitor(id types.CompetitorID) (*model.Competitor, bool) {
	c, ok := r.competitors[id]
	return c, ok
}

// Competitors returns all roster members in unspecified order.
func (r *Context) Competitors() []*model.Competitor {
	out := make([]*model.Competitor, 0, len(r.competitors))
	for _, c := range r.competitors {
		out = append(out, c)
	}
	return out
}

// AddCompetitor registers a new roster member.
func (r *Context) AddCompetitor(c *model.Competitor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.competitors[c.ID] = c
	metrics.UpdateRosterCounts(len(r.competitors), len(r.referees))
}

// Referees returns the officiating pool.
func (r *Context) Referees() []*model.Referee {
	return r.referees
}

// Referee resolves an official by identity.
func (r *Context) Referee(id types.RefereeID) (*model.Referee, bool) {
	for _, ref := range r.referees {
		if ref.ID == id {
			return ref, true
		}
	}
	return nil, false
}

// TraitKinds maps a competitor's trait set to concrete effects. Unknown
// trait IDs are skipped.
func (r *Context) TraitKinds(c *model.Competitor) []model.TraitKind {
	if len(c.Traits) == 0 {
		return nil
	}
	kinds := make([]model.TraitKind, 0, len(c.Traits))
	for id := range c.Traits {
		if t, ok := r.traits[id]; ok {
			kinds = append(kinds, t.Kind)
		}
	}
	// Map iteration order is random; simulation draws depend on trait
	// order, so sort for reproducibility under a fixed seed.
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Feuds returns the active feud list.
func (r *Context) Feuds() []*model.Feud {
	return r.feuds
}

// Teams returns the registered tag teams.
func (r *Context) Teams() []*model.TagTeam {
	return r.teams
}

// AssignManager pairs a competitor with a manager.
func (r *Context) AssignManager(id types.CompetitorID, s *model.Staff) {
	r.managers[id] = s
}

// ManagerFor returns the competitor's manager, or nil.
func (r *Context) ManagerFor(id types.CompetitorID) *model.Staff {
	return r.managers[id]
}

// RoadAgent returns the assigned road agent, or nil.
func (r *Context) RoadAgent() *model.Staff {
	return r.roadAgent
}

// DoctorSkill returns the team doctor's medicine skill, or 0.
func (r *Context) DoctorSkill() float64 {
	if r.doctor == nil {
		return 0
	}
	return r.doctor.Medicine
}

// Standing is one row of the popularity table.
type Standing struct {
	ID         types.CompetitorID
	Name       string
	Popularity float64
	Wins       int
	Losses     int
	Momentum   float64
}

// Standings snapshots the roster ranked by popularity, then wins, then
// name for a stable order.
func (r *Context) Standings() []Standing {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]Standing, 0, len(r.competitors))
	for _, c := range r.competitors {
		rows = append(rows, Standing{
			ID:         c.ID,
			Name:       c.Name,
			Popularity: c.Popularity,
			Wins:       c.Wins,
			Losses:     c.Losses,
			Momentum:   c.Momentum,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Popularity != rows[j].Popularity {
			return rows[i].Popularity > rows[j].Popularity
		}
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
