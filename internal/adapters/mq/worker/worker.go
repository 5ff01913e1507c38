// Package worker defines worker contracts for asynchronous match
// simulation.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/kayfabe/internal/adapters/mq/queue"
	"github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/internal/engine"
	"github.com/okian/kayfabe/internal/roster"
	"github.com/okian/kayfabe/pkg/logger"
	"github.com/okian/kayfabe/pkg/metrics"
)

// Default worker configuration constants.
const (
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Simulator runs one match against a roster context.
type Simulator interface {
	Simulate(ctx context.Context, rc *roster.Context, m *model.Match, mode types.Mode) (*engine.Result, error)
}

// Sink receives the outcome of each processed job. Either the result or
// the error is set, never both.
type Sink func(j queue.Job, res *engine.Result, err error)

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes simulation jobs using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing simulation jobs.
type InMemoryWorker struct {
	queue  Queue
	sim    Simulator
	rc     *roster.Context
	sink   Sink
	name   string
	logger logger.Logger

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, sim Simulator, rc *roster.Context, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		sim:      sim,
		rc:       rc,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}

			if err := w.processJob(ctx, j); err != nil {
				w.logger.Error(ctx, "error processing job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob simulates a single match and reports the outcome.
func (w *InMemoryWorker) processJob(ctx context.Context, j queue.Job) error {
	res, err := w.sim.Simulate(ctx, w.rc, j.Match, j.Mode)
	if err != nil {
		metrics.RecordWorkerError()
		if w.sink != nil {
			w.sink(j, nil, err)
		}
		// Replay of an already simulated match is a job-level no-op,
		// not a worker fault.
		if errors.Is(err, engine.ErrAlreadySimulated) {
			return nil
		}
		w.logger.Error(ctx, "simulation failed",
			logger.String("match_id", j.Match.ID.String()),
			logger.Error(err),
		)
		return fmt.Errorf("failed to simulate match %s: %w", j.Match.ID, err)
	}

	if w.sink != nil {
		w.sink(j, res, nil)
	}
	return nil
}

// Pool manages multiple workers sharing one queue and roster context.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	// Shutdown control
	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, sim Simulator, rc *roster.Context, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    q,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			q,
			sim,
			rc,
			WithName("worker-"+strconv.Itoa(i)),
			WithSink(sink),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		close(worker.shutdown)
	}
	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool. The queue is
// closed first so workers drain what is already enqueued.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
