// Package engine orchestrates match simulation: validation, referee
// assignment, mode dispatch, and the atomic write-back of results into
// the match record.
package engine

import (
	"context"
	"time"

	"github.com/okian/kayfabe/internal/config"
	injury "github.com/okian/kayfabe/internal/domain/injury"
	model "github.com/okian/kayfabe/internal/domain/model"
	perf "github.com/okian/kayfabe/internal/domain/perf"
	referee "github.com/okian/kayfabe/internal/domain/referee"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/internal/roster"
	"github.com/okian/kayfabe/pkg/logger"
	"github.com/okian/kayfabe/pkg/metrics"
	"github.com/okian/kayfabe/pkg/rng"
)

// Warning kinds surfaced through the result and metrics.
const (
	warnUnresolvedParticipant = "unresolved_participant"
	warnNoSuitableReferee     = "no_suitable_referee"
	warnNoReplacementReferee  = "no_replacement_referee"
)

// InjuryReport describes one competitor injury produced by a match.
type InjuryReport struct {
	CompetitorID types.CompetitorID
	Severity     types.Severity
	Weeks        int
	Description  string
}

// Result is the full outcome of one simulation call. The match record
// itself is mutated in place; Result carries the extras the record does
// not hold.
type Result struct {
	Match    *model.Match
	Winner   types.CompetitorID
	Rating   float64
	Finish   types.FinishType
	Referee  types.RefereeID
	Incident *referee.Incident
	Injuries []InjuryReport
	Angle    bool
	Warnings []string
}

// Engine simulates matches against a roster context.
type Engine struct {
	cfg      *config.Config
	src      rng.Source
	log      logger.Logger
	perf     *perf.Calculator
	injuries *injury.Model
	refs     *referee.System
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRandomSource injects a random source, typically seeded for
// reproducible simulations.
func WithRandomSource(src rng.Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.src = src
		}
	}
}

// WithLogger injects a logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Engine. Without options it uses a time-seeded random
// source and the global logger.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		src: rng.NewFromTime(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		_ = logger.Init()
		e.log = logger.Named("engine")
	}

	e.perf = perf.New(cfg, e.src)
	e.injuries = injury.New(cfg, e.src)
	e.refs = referee.New(cfg, e.src)
	return e
}

// Referees exposes the officiating subsystem for weekly upkeep.
func (e *Engine) Referees() *referee.System {
	return e.refs
}

// Simulate runs one match to completion. The roster context is locked
// for the whole call; cancellation is honored only at the entry
// boundary so a started match always finishes atomically.
func (e *Engine) Simulate(ctx context.Context, rc *roster.Context, m *model.Match, mode types.Mode) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Simulated {
		return nil, ErrAlreadySimulated
	}

	start := time.Now()

	rc.Lock()
	defer rc.Unlock()

	st, err := e.prepare(ctx, rc, m, mode)
	if err != nil {
		return nil, err
	}

	if mode == types.Simple {
		e.runSimple(st, rc)
	} else {
		e.runPhases(st, rc)
	}

	// Atomic write-back: the record is only touched once the whole
	// simulation has produced its outputs.
	m.Winner = st.winner
	m.Rating = st.rating
	m.Finish = st.finish
	if st.ref != nil {
		m.Referee = st.ref.ID
	}
	m.Simulated = true

	metrics.RecordMatchSimulated(string(mode))
	metrics.RecordMatchRating(st.rating)
	metrics.RecordFinishType(string(st.finish))
	metrics.RecordSimulationLatency(float64(time.Since(start).Milliseconds()))

	e.log.Info(ctx, "match simulated",
		logger.String("match_id", m.ID.String()),
		logger.String("mode", string(mode)),
		logger.String("winner", st.winner.String()),
		logger.Float64("rating", st.rating),
		logger.String("finish", string(st.finish)),
	)

	return &Result{
		Match:    m,
		Winner:   st.winner,
		Rating:   st.rating,
		Finish:   st.finish,
		Referee:  m.Referee,
		Incident: st.incident,
		Injuries: st.injuries,
		Angle:    st.angle,
		Warnings: st.warnings,
	}, nil
}

// prepare validates the record, resolves participants, and assigns an
// official. Must be called with the roster lock held.
func (e *Engine) prepare(ctx context.Context, rc *roster.Context, m *model.Match, mode types.Mode) (*matchState, error) {
	competitors := make([]*model.Competitor, 0, len(m.Competitors))
	var unresolved []types.CompetitorID
	for _, id := range m.Competitors {
		c, ok := rc.Competitor(id)
		if !ok || c.Retired {
			unresolved = append(unresolved, id)
			continue
		}
		competitors = append(competitors, c)
	}

	if len(competitors) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	mc := perf.MatchContext{
		Type:     m.Type,
		Weights:  m.Type.Weights(),
		IsTitle:  m.IsTitleMatch,
		Location: m.Location,
		Simple:   mode == types.Simple,
	}

	st := newMatchState(m, mc, competitors)

	for _, id := range unresolved {
		st.warn(warnUnresolvedParticipant)
		metrics.RecordWarning(warnUnresolvedParticipant)
		e.log.Warn(ctx, "skipping unresolved participant",
			logger.String("match_id", m.ID.String()),
			logger.String("competitor_id", id.String()),
		)
	}

	if m.Referee != "" {
		if ref, ok := rc.Referee(m.Referee); ok {
			st.ref = ref
		}
	}
	if st.ref == nil {
		ref, fallback := e.refs.Assign(rc.Referees(), m)
		st.ref = ref
		st.refFallback = fallback
		if st.ref != nil {
			e.log.Debug(ctx, "official assigned",
				logger.String("match_id", m.ID.String()),
				logger.String("referee", st.ref.Name),
				logger.String("style", referee.StyleDescriptor(st.ref)),
			)
		}
		if fallback {
			st.warn(warnNoSuitableReferee)
			metrics.RecordWarning(warnNoSuitableReferee)
			e.log.Warn(ctx, "no suitable referee",
				logger.String("match_id", m.ID.String()),
				logger.Error(referee.ErrNoSuitableReferee),
			)
		}
	}

	return st, nil
}

// finishRating folds the aggregate state into the final rating. Shared
// by both modes.
func (e *Engine) finishRating(st *matchState, rc *roster.Context, simple bool) {
	var scores []float64
	var psych, pop float64
	for _, c := range st.competitors {
		scores = append(scores, st.scores[c.ID])
		psych += c.Psychology
		pop += c.Popularity
	}
	n := float64(len(st.competitors))
	psych /= n
	pop /= n

	var managerBonus float64
	for _, c := range st.competitors {
		managerBonus += perf.ManagerBonus(rc.ManagerFor(c.ID))
	}

	refMod := e.refs.RatingModifier(st.ref, st.match)

	st.rating = e.perf.MatchRating(perf.RatingInputs{
		Scores:          scores,
		MeanPsychology:  psych,
		MeanPopularity:  pop,
		TagChemistry:    e.perf.TagChemistryBonus(rc.Teams(), st.present),
		RefereeModifier: refMod,
		ManagerBonus:    managerBonus,
		RoadAgentBonus:  perf.RoadAgentBonus(rc.RoadAgent()),
		BookingModifier: st.match.BookingModifier,
	}, simple)
}

// pickWinner selects the competitor with the highest noisy score.
func (e *Engine) pickWinner(st *matchState, noise float64) {
	var best float64
	for i, c := range st.competitors {
		contender := st.scores[c.ID] + e.src.Between(-noise, noise)
		if i == 0 || contender > best {
			best = contender
			st.winner = c.ID
		}
	}
}

// drawFinish rolls the weighted finish table for the match class and
// lets the official override it.
func (e *Engine) drawFinish(st *matchState, base map[string]float64, simple bool) {
	weights := types.AdjustFinishWeights(base, st.match.Type, simple)
	finishes := types.DrawableFinishes()
	st.finish = finishes[rng.WeightedIndex(e.src, weights)]

	if overridden, ok := e.refs.OverrideFinish(st.ref, st.match, st.finish); ok {
		st.finish = overridden
	}
}

// aftermath applies the shared post-match consequences: state drift,
// injuries, referee career recording, and the post-match angle roll.
// Must run after st.finish and st.rating are final.
func (e *Engine) aftermath(st *matchState, rc *roster.Context, simple bool) {
	clean := st.finish.IsClean()
	for _, c := range st.competitors {
		rc.ApplyMatchDrift(c, roster.MatchOutcome{
			Won:          c.ID == st.winner,
			Rating:       st.rating,
			CleanFinish:  clean,
			IsTitleMatch: st.match.IsTitleMatch,
			IsMainEvent:  st.match.IsMainEvent,
			FatigueCost:  st.match.Type.FatigueCost(),
		})

		if inj := e.injuries.Evaluate(c, st.match.Type, rc.DoctorSkill(), simple); inj != nil {
			st.injuries = append(st.injuries, InjuryReport{
				CompetitorID: c.ID,
				Severity:     inj.Severity,
				Weeks:        inj.WeeksRemaining,
				Description:  inj.Description,
			})
			metrics.RecordInjury(inj.Severity.String())
		}
	}

	if st.ref != nil {
		// The record's finish field is not written yet; hand the
		// career recorder a view with the final finish.
		st.match.Finish = st.finish
		e.refs.RecordMatch(st.ref, st.match, st.rating, st.incident)
	}

	if !simple && e.src.Float64() < e.cfg.PostMatchAngleChance {
		st.angle = true
	}
}
