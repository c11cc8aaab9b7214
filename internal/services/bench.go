package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/workpark/internal/bench"
	"github.com/kubev2v/workpark/internal/models"
	"github.com/kubev2v/workpark/internal/store"
	srvErrors "github.com/kubev2v/workpark/pkg/errors"
	"github.com/kubev2v/workpark/pkg/scheduler"
)

type BenchState string

const (
	BenchStateReady   BenchState = "ready"
	BenchStateRunning BenchState = "running"
)

type BenchStatus struct {
	State   BenchState  `json:"state"`
	LastRun *models.Run `json:"lastRun,omitempty"`
}

// BenchService executes stress runs on the shared scheduler and records them.
type BenchService struct {
	scheduler *scheduler.Scheduler
	store     *store.Store
	timeout   time.Duration

	mu      sync.Mutex
	running bool
	lastRun *models.Run
}

func NewBenchService(s *scheduler.Scheduler, st *store.Store, timeout time.Duration) *BenchService {
	return &BenchService{
		scheduler: s,
		store:     st,
		timeout:   timeout,
	}
}

// Run executes one stress run and blocks until it is stored. Only one run may
// be in progress at a time.
func (b *BenchService) Run(ctx context.Context, params bench.Params) (*models.Run, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil, srvErrors.NewBenchInProgressError()
	}
	b.running = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
	}()

	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	future := b.scheduler.AddWork(func(workCtx context.Context) (any, error) {
		// stop when either the caller or the scheduler gives up
		stop := context.AfterFunc(workCtx, cancel)
		defer stop()
		return bench.Run(runCtx, params)
	})

	var result scheduler.Result[any]
	select {
	case result = <-future.C():
	case <-ctx.Done():
		future.Stop()
		return nil, ctx.Err()
	}
	if result.Err != nil {
		zap.S().Named("bench_service").Errorw("stress run failed", "error", result.Err)
		return nil, result.Err
	}

	run := result.Data.(*models.Run)
	if err := b.store.Runs().Save(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	b.mu.Lock()
	b.lastRun = run
	b.mu.Unlock()

	zap.S().Named("bench_service").Infow("stress run stored", "id", run.ID, "status", run.Status)
	return run, nil
}

func (b *BenchService) Status() BenchStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	status := BenchStatus{State: BenchStateReady, LastRun: b.lastRun}
	if b.running {
		status.State = BenchStateRunning
	}
	return status
}
