// Package service wires the simulation stack together: roster context,
// engine, match queue, worker pool, and the never-resimulate guard.
package service

import (
	"context"
	"runtime"
	"sync"

	matchqueue "github.com/okian/kayfabe/internal/adapters/mq/queue"
	workerpool "github.com/okian/kayfabe/internal/adapters/mq/worker"
	"github.com/okian/kayfabe/internal/config"
	"github.com/okian/kayfabe/internal/domain/dedupe"
	"github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/internal/engine"
	"github.com/okian/kayfabe/internal/roster"
	"github.com/okian/kayfabe/pkg/logger"
	"github.com/okian/kayfabe/pkg/metrics"
	"github.com/okian/kayfabe/pkg/rng"
)

// Service implements the application surface of the simulation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	cfg     *config.Config
	rc      *roster.Context
	eng     *engine.Engine
	deduper dedupe.Deduper
	queue   matchqueue.Queue
	pool    *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	src         rng.Source

	// Bulk calls in flight, keyed by match ID for sink routing.
	inflight map[types.MatchID]*bulkCall

	// State
	started bool
	cancel  context.CancelFunc

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the match queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the simulated-match cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRandomSource injects a random source for reproducible runs.
func WithRandomSource(src rng.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.src = src
		}
	}
}

// New constructs a Service around a config and roster context.
func New(cfg *config.Config, rc *roster.Context, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.New()
	}
	if rc == nil {
		rc = roster.New(cfg)
	}

	s := &Service{
		cfg:         cfg,
		rc:          rc,
		workerCount: cfg.WorkerCount,
		queueSize:   cfg.MatchQueueSize,
		dedupeSize:  cfg.DedupeSize,
		inflight:    make(map[types.MatchID]*bulkCall),
	}
	if s.workerCount < 1 {
		s.workerCount = runtime.NumCPU()
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting simulation service...")

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = matchqueue.NewInMemoryQueue(
		matchqueue.WithCapacity(s.queueSize),
	)

	engOpts := []engine.Option{engine.WithLogger(s.logger.Named("engine"))}
	if s.src != nil {
		engOpts = append(engOpts, engine.WithRandomSource(s.src))
	}
	s.eng = engine.New(s.cfg, engOpts...)

	poolCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.eng, s.rc, s.dispatch)
	s.pool.Start(poolCtx)

	s.started = true
	s.logger.Info(ctx, "simulation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping simulation service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.started = false
	s.logger.Info(ctx, "simulation service stopped")
}

// SeenAndRecord atomically checks if a match id was seen and records it
// if not. Returns true if the match was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id types.MatchID) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordDuplicateMatch()
	}
	return seen
}

// Unrecord removes a match ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id types.MatchID) {
	s.deduper.Unrecord(ctx, id)
}

// SimulateMatch runs one match synchronously on the caller's goroutine.
func (s *Service) SimulateMatch(ctx context.Context, m *model.Match, mode types.Mode) (*engine.Result, error) {
	if s.SeenAndRecord(ctx, m.ID) {
		return nil, engine.ErrAlreadySimulated
	}

	res, err := s.eng.Simulate(ctx, s.rc, m, mode)
	if err != nil {
		// The record never made it to simulation, so a corrected
		// version may be retried.
		s.Unrecord(ctx, m.ID)
		return nil, err
	}
	return res, nil
}

// ShowResult aggregates an ordered card's outcomes.
type ShowResult struct {
	Show          *model.Show
	Results       []*engine.Result
	AverageRating float64
}

// SimulateShow runs a card in order, accumulating the show average.
// A match that fails validation is skipped; the rest of the card still
// runs.
func (s *Service) SimulateShow(ctx context.Context, show *model.Show, mode types.Mode) (*ShowResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &ShowResult{Show: show}
	var sum float64
	for _, m := range show.Matches {
		res, err := s.SimulateMatch(ctx, m, mode)
		if err != nil {
			s.logger.Warn(ctx, "match skipped",
				logger.String("show", show.Name),
				logger.String("match_id", m.ID.String()),
				logger.Error(err),
			)
			continue
		}
		out.Results = append(out.Results, res)
		sum += res.Rating
	}

	if len(out.Results) > 0 {
		out.AverageRating = sum / float64(len(out.Results))
	}

	s.logger.Info(ctx, "show simulated",
		logger.String("show", show.Name),
		logger.Int("matches", len(out.Results)),
		logger.Float64("average_rating", out.AverageRating),
	)
	return out, nil
}

// Summary is the final report of a bulk simulation run.
type Summary struct {
	Total         int
	Simulated     int
	Failed        int
	Duplicates    int
	AverageRating float64
	HighestRating float64
	LowestRating  float64
	Injuries      int
}

// BulkObserver receives per-match progress and the final summary of a
// bulk run. Either hook may be nil.
type BulkObserver struct {
	OnProgress func(completed, total int, res *engine.Result, err error)
	OnComplete func(Summary)
}

// bulkCall tracks one in-flight SimulateBulk invocation.
type bulkCall struct {
	mu        sync.Mutex
	obs       BulkObserver
	total     int
	completed int
	summary   Summary
	done      chan struct{}
}

func (b *bulkCall) record(res *engine.Result, err error) {
	b.mu.Lock()
	b.completed++
	completed := b.completed
	switch {
	case err != nil:
		b.summary.Failed++
	default:
		b.summary.Simulated++
		r := res.Rating
		if b.summary.Simulated == 1 || r > b.summary.HighestRating {
			b.summary.HighestRating = r
		}
		if b.summary.Simulated == 1 || r < b.summary.LowestRating {
			b.summary.LowestRating = r
		}
		// Running mean keeps the summary single-pass.
		b.summary.AverageRating += (r - b.summary.AverageRating) / float64(b.summary.Simulated)
		b.summary.Injuries += len(res.Injuries)
	}
	finished := completed == b.total
	b.mu.Unlock()

	if b.obs.OnProgress != nil {
		b.obs.OnProgress(completed, b.total, res, err)
	}
	if finished {
		if b.obs.OnComplete != nil {
			b.obs.OnComplete(b.summary)
		}
		close(b.done)
	}
}

// dispatch is the worker pool sink: route each outcome to the bulk call
// that enqueued it.
func (s *Service) dispatch(j matchqueue.Job, res *engine.Result, err error) {
	s.mu.Lock()
	call := s.inflight[j.Match.ID]
	delete(s.inflight, j.Match.ID)
	s.mu.Unlock()

	if call == nil {
		return
	}
	call.record(res, err)
}

// SimulateBulk fans a batch out over the worker pool and blocks until
// every accepted match has been processed or ctx is cancelled. Matches
// already seen by the deduper are skipped and counted as duplicates.
func (s *Service) SimulateBulk(ctx context.Context, matches []*model.Match, mode types.Mode, obs BulkObserver) (Summary, error) {
	call := &bulkCall{
		obs:  obs,
		done: make(chan struct{}),
	}
	call.summary.Total = len(matches)

	var accepted []*model.Match
	for _, m := range matches {
		if s.SeenAndRecord(ctx, m.ID) {
			call.summary.Duplicates++
			continue
		}
		accepted = append(accepted, m)
	}
	call.total = len(accepted)

	if call.total == 0 {
		if obs.OnComplete != nil {
			obs.OnComplete(call.summary)
		}
		return call.summary, nil
	}

	s.mu.Lock()
	for _, m := range accepted {
		s.inflight[m.ID] = call
	}
	s.mu.Unlock()

	for _, m := range accepted {
		if s.queue.Enqueue(ctx, matchqueue.Job{Match: m, Mode: mode}) {
			continue
		}
		// Backpressure: hand the failure to the call directly so the
		// run still completes, and let the match be retried later.
		s.mu.Lock()
		delete(s.inflight, m.ID)
		s.mu.Unlock()
		s.Unrecord(ctx, m.ID)
		call.record(nil, matchqueue.ErrClosed)
	}

	select {
	case <-call.done:
	case <-ctx.Done():
		return call.summary, ctx.Err()
	}

	call.mu.Lock()
	out := call.summary
	call.mu.Unlock()
	return out, nil
}

// Standings exposes the roster popularity table.
func (s *Service) Standings() []roster.Standing {
	return s.rc.Standings()
}

// AdvanceWeek applies the weekly upkeep to the whole roster.
func (s *Service) AdvanceWeek() {
	if s.eng == nil {
		return
	}
	s.rc.AdvanceWeek(s.eng.Referees())
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["rosterSize"] = len(s.rc.Competitors())
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

