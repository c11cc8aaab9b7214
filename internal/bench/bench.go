package bench

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/workpark/internal/models"
	srvErrors "github.com/kubev2v/workpark/pkg/errors"
	"github.com/kubev2v/workpark/pkg/metrics"
	"github.com/kubev2v/workpark/pkg/park"
	"github.com/kubev2v/workpark/pkg/scheduler"
)

// releaseInterval is how often stuck workers are notified after a timeout.
const releaseInterval = time.Millisecond

// Upper bounds accepted by Params.Validate.
const (
	MaxWorkers = 4096
	MaxRounds  = 1_000_000
)

// Params describes one stress run: Workers goroutines each expect Rounds
// wakeups, with up to MaxDelay between two notifications.
type Params struct {
	Mode     models.RunMode `json:"mode"`
	Workers  int            `json:"workers"`
	Rounds   int            `json:"rounds"`
	MaxDelay time.Duration  `json:"maxDelay"`
}

func (p Params) Validate() error {
	if _, err := models.ParseRunMode(string(p.Mode)); err != nil {
		return srvErrors.NewInvalidParamsError("%v", err)
	}
	if p.Workers < 1 {
		return srvErrors.NewInvalidParamsError("workers must be positive, got %d", p.Workers)
	}
	if p.Rounds < 1 {
		return srvErrors.NewInvalidParamsError("rounds must be positive, got %d", p.Rounds)
	}
	if p.Workers > MaxWorkers {
		return srvErrors.NewInvalidParamsError("workers must not exceed %d, got %d", MaxWorkers, p.Workers)
	}
	if p.Rounds > MaxRounds {
		return srvErrors.NewInvalidParamsError("rounds must not exceed %d, got %d", MaxRounds, p.Rounds)
	}
	if p.Workers > math.MaxInt/p.Rounds {
		return srvErrors.NewInvalidParamsError("workers times rounds overflows: %d x %d", p.Workers, p.Rounds)
	}
	if p.MaxDelay < 0 {
		return srvErrors.NewInvalidParamsError("max delay must not be negative, got %s", p.MaxDelay)
	}
	return nil
}

// Run executes a stress run and blocks until every expected wakeup was
// observed or ctx is done. A run cut short by ctx is reported with
// RunStatusTimeout, not as an error.
func Run(ctx context.Context, p Params) (*models.Run, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	log := zap.S().Named("bench")
	run := &models.Run{
		ID:        uuid.New(),
		Mode:      p.Mode,
		Workers:   p.Workers,
		Rounds:    p.Rounds,
		MaxDelay:  p.MaxDelay,
		Expected:  int64(p.Workers) * int64(p.Rounds),
		StartedAt: time.Now().UTC(),
	}
	log.Infow("stress run started", "id", run.ID, "mode", p.Mode, "workers", p.Workers, "rounds", p.Rounds)

	var (
		observed int64
		finished bool
	)
	switch p.Mode {
	case models.RunModeCoordinator:
		observed, finished = runCoordinator(ctx, p)
	case models.RunModeScheduler:
		observed, finished = runScheduler(ctx, p)
	}

	run.Observed = observed
	run.Duration = time.Since(run.StartedAt)
	run.Status = models.RunStatusCompleted
	if !finished {
		run.Status = models.RunStatusTimeout
	}

	metrics.RecordBenchDuration(string(run.Mode), string(run.Status), run.Duration.Seconds())
	log.Infow("stress run finished",
		"id", run.ID,
		"status", run.Status,
		"observed", run.Observed,
		"expected", run.Expected,
		"duration", run.Duration,
	)
	return run, nil
}

// runCoordinator parks Workers goroutines directly on a coordinator and
// notifies them Workers*Rounds times.
func runCoordinator(ctx context.Context, p Params) (int64, bool) {
	var (
		c        = park.New()
		stop     atomic.Bool
		observed atomic.Int64
		wg       sync.WaitGroup
	)

	for range p.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range p.Rounds {
				c.Wait()
				if stop.Load() {
					return
				}
				observed.Add(1)
			}
		}()
	}

	go func() {
		total := p.Workers * p.Rounds
		for range total {
			// A notification issued while the credit is still pending
			// collapses into it, so wait for the credit to be taken.
			for c.Pending() {
				if ctx.Err() != nil {
					return
				}
				runtime.Gosched()
			}
			if ctx.Err() != nil {
				return
			}
			sleep(p.MaxDelay)
			c.NotifyOne()
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return observed.Load(), true
	case <-ctx.Done():
	}

	// Wait cannot be cancelled: flag the workers and keep notifying until
	// every one of them has seen the flag.
	stop.Store(true)
	ticker := time.NewTicker(releaseInterval)
	defer ticker.Stop()
	for {
		c.NotifyOne()
		select {
		case <-done:
			return observed.Load(), false
		case <-ticker.C:
		}
	}
}

// runScheduler submits Workers*Rounds work items to a scheduler with Workers
// workers and waits for every future.
func runScheduler(ctx context.Context, p Params) (int64, bool) {
	var observed atomic.Int64

	// The serving pool owns the scheduler gauges.
	s := scheduler.NewScheduler(p.Workers,
		scheduler.WithLogger(zap.S().Named("bench_scheduler")),
		scheduler.WithMetrics(false),
	)
	defer s.Close()

	total := p.Workers * p.Rounds
	futures := make([]*scheduler.Future[scheduler.Result[any]], 0, total)
	for range total {
		if ctx.Err() != nil {
			return observed.Load(), false
		}
		sleep(p.MaxDelay)
		futures = append(futures, s.AddWork(func(ctx context.Context) (any, error) {
			observed.Add(1)
			return nil, nil
		}))
	}

	for _, f := range futures {
		select {
		case <-f.C():
		case <-ctx.Done():
			return observed.Load(), false
		}
	}
	return observed.Load(), true
}

func sleep(maxDelay time.Duration) {
	if maxDelay <= 0 {
		return
	}
	time.Sleep(rand.N(maxDelay))
}
