package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/kayfabe/internal/adapters/mq/queue"
	"github.com/okian/kayfabe/internal/config"
	worker "github.com/okian/kayfabe/internal/adapters/mq/worker"
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/internal/engine"
	"github.com/okian/kayfabe/internal/roster"
	logging "github.com/okian/kayfabe/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	jobChan chan queue.Job
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		jobChan: make(chan queue.Job, 200),
	}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Job {
	return mq.jobChan
}

func (mq *mockQueue) Close() error {
	close(mq.jobChan)
	return nil
}

func (mq *mockQueue) addJob(j queue.Job) {
	mq.jobChan <- j
}

type mockSimulator struct {
	results map[types.MatchID]float64
	errors  map[types.MatchID]error
	mu      sync.RWMutex
}

func newMockSimulator() *mockSimulator {
	return &mockSimulator{
		results: make(map[types.MatchID]float64),
		errors:  make(map[types.MatchID]error),
	}
}

func (ms *mockSimulator) Simulate(ctx context.Context, rc *roster.Context, m *model.Match, mode types.Mode) (*engine.Result, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if err, exists := ms.errors[m.ID]; exists {
		return nil, err
	}

	rating := 75.0
	m.Rating = rating
	m.Simulated = true
	ms.results[m.ID] = rating
	return &engine.Result{Match: m, Rating: rating, Winner: m.Competitors[0]}, nil
}

func (ms *mockSimulator) setError(id types.MatchID, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.errors[id] = err
}

func (ms *mockSimulator) simulated(id types.MatchID) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	_, ok := ms.results[id]
	return ok
}

// resultSink collects sink callbacks for assertions.
type resultSink struct {
	mu      sync.Mutex
	results []*engine.Result
	errs    []error
}

func (rs *resultSink) sink(j queue.Job, res *engine.Result, err error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err != nil {
		rs.errs = append(rs.errs, err)
		return
	}
	rs.results = append(rs.results, res)
}

func (rs *resultSink) counts() (int, int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.results), len(rs.errs)
}

func testJob(id string) queue.Job {
	return queue.Job{
		Match: &model.Match{
			ID:          types.MatchID(id),
			Competitors: []types.CompetitorID{"comp-a", "comp-b"},
			Type:        types.Singles,
		},
		Mode: types.Advanced,
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		q := newMockQueue()
		sim := newMockSimulator()
		rc := roster.New(config.New())

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(q, sim, rc)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(
				q, sim, rc,
				worker.WithName("test-worker"),
			)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			rs := &resultSink{}
			w := worker.NewInMemoryWorker(q, sim, rc, worker.WithSink(rs.sink))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)

			// Give worker time to start
			time.Sleep(10 * time.Millisecond)

			convey.Convey("And when processing jobs", func() {
				q.addJob(testJob("match-1"))

				// Give worker time to process
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the match is simulated and the sink fires", func() {
					convey.So(sim.simulated("match-1"), convey.ShouldBeTrue)
					ok, failed := rs.counts()
					convey.So(ok, convey.ShouldEqual, 1)
					convey.So(failed, convey.ShouldEqual, 0)
				})
			})

			convey.Convey("And when simulation fails", func() {
				sim.setError("match-2", errors.New("simulation error"))
				q.addJob(testJob("match-2"))

				// Give worker time to process
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the error reaches the sink", func() {
					convey.So(sim.simulated("match-2"), convey.ShouldBeFalse)
					ok, failed := rs.counts()
					convey.So(ok, convey.ShouldEqual, 0)
					convey.So(failed, convey.ShouldEqual, 1)
				})
			})

			convey.Convey("And when a job is a replay of a simulated match", func() {
				sim.setError("match-3", engine.ErrAlreadySimulated)
				q.addJob(testJob("match-3"))

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the worker keeps running", func() {
					q.addJob(testJob("match-4"))
					time.Sleep(50 * time.Millisecond)
					convey.So(sim.simulated("match-4"), convey.ShouldBeTrue)
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()

				err := w.Shutdown(shutdownCtx)

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When context is cancelled", func() {
			w := worker.NewInMemoryWorker(q, sim, rc)
			ctx, cancel := context.WithCancel(context.Background())

			go w.Run(ctx)

			time.Sleep(10 * time.Millisecond)

			cancel()

			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then worker should stop", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()
				convey.So(w.Shutdown(shutdownCtx), convey.ShouldBeNil)
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a new WorkerPool", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		q := newMockQueue()
		sim := newMockSimulator()
		rc := roster.New(config.New())

		convey.Convey("When creating a worker pool with default count", func() {
			pool := worker.NewPool(0, q, sim, rc, nil)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(pool, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating a worker pool with custom count", func() {
			pool := worker.NewPool(3, q, sim, rc, nil)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(pool, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When starting a worker pool", func() {
			rs := &resultSink{}
			pool := worker.NewPool(2, q, sim, rc, rs.sink)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)

			// Give workers time to start
			time.Sleep(20 * time.Millisecond)

			convey.Convey("And when processing multiple jobs", func() {
				ids := []string{"match-1", "match-2", "match-3"}
				for _, id := range ids {
					q.addJob(testJob(id))
				}

				// Give workers time to process
				time.Sleep(100 * time.Millisecond)

				convey.Convey("Then all jobs should be processed", func() {
					for _, id := range ids {
						convey.So(sim.simulated(types.MatchID(id)), convey.ShouldBeTrue)
					}
					ok, failed := rs.counts()
					convey.So(ok, convey.ShouldEqual, 3)
					convey.So(failed, convey.ShouldEqual, 0)
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
				defer shutdownCancel()

				err := pool.Shutdown(shutdownCtx)

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When stopping a worker pool", func() {
			pool := worker.NewPool(2, q, sim, rc, nil)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)

			time.Sleep(20 * time.Millisecond)

			pool.Stop()

			convey.Convey("Then all workers should be stopped", func() {
				q.addJob(testJob("match-late"))
				time.Sleep(50 * time.Millisecond)
				convey.So(sim.simulated("match-late"), convey.ShouldBeFalse)
			})
		})
	})
}

func TestWorkerConcurrency(t *testing.T) {
	convey.Convey("Given a worker pool with multiple workers", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		q := newMockQueue()
		sim := newMockSimulator()
		rc := roster.New(config.New())
		rs := &resultSink{}

		pool := worker.NewPool(4, q, sim, rc, rs.sink)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		pool.Start(ctx)

		// Give workers time to start
		time.Sleep(20 * time.Millisecond)

		convey.Convey("When processing many concurrent jobs", func() {
			const jobCount = 100
			var wg sync.WaitGroup

			for i := 0; i < 5; i++ {
				wg.Add(1)
				go func(producerID int) {
					defer wg.Done()
					for j := 0; j < jobCount/5; j++ {
						q.addJob(testJob(fmt.Sprintf("match-%d-%d", producerID, j)))
					}
				}(i)
			}

			wg.Wait()

			// Give workers time to process
			time.Sleep(200 * time.Millisecond)

			convey.Convey("Then all jobs should be processed", func() {
				processed := 0
				for i := 0; i < 5; i++ {
					for j := 0; j < jobCount/5; j++ {
						if sim.simulated(types.MatchID(fmt.Sprintf("match-%d-%d", i, j))) {
							processed++
						}
					}
				}
				convey.So(processed, convey.ShouldEqual, jobCount)
				ok, failed := rs.counts()
				convey.So(ok, convey.ShouldEqual, jobCount)
				convey.So(failed, convey.ShouldEqual, 0)
			})
		})
	})
}
