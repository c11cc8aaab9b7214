package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/workpark/pkg/errors"
	"github.com/kubev2v/workpark/pkg/metrics"
	"github.com/kubev2v/workpark/pkg/park"
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	var zero T
	old[0] = zero
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

type workRequest struct {
	fn  Work[any]
	c   chan Result[any]
	ctx context.Context
}

type worker struct {
	id string
	s  *Scheduler
}

func newWorker(s *Scheduler) worker {
	return worker{id: uuid.NewString()[:8], s: s}
}

func (w worker) run() {
	defer func() {
		// Hand the shutdown on: a worker parked behind us may be waiting for
		// the notification this exit consumed.
		w.s.coordinator.NotifyOne()
		w.s.wg.Done()
	}()

	log := w.s.log.With("worker", w.id)
	log.Debug("worker started")

	for {
		r, ok, closing := w.s.next()
		if closing {
			log.Debug("worker stopped")
			return
		}
		if ok {
			w.Work(r)
			continue
		}

		w.s.recordPark()
		w.s.coordinator.Wait()
		w.s.recordWakeup()
	}
}

func (w worker) Work(r workRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			w.s.log.Errorw("work panicked", "worker", w.id, "panic", rec)
			w.s.finish(metrics.OutcomeFailed)
			r.c <- Result[any]{Err: srvErrors.NewWorkerPanicError(rec)}
		}
	}()

	if err := r.ctx.Err(); err != nil {
		w.s.finish(metrics.OutcomeCanceled)
		r.c <- Result[any]{Err: err}
		return
	}

	v, err := r.fn(r.ctx)
	if err != nil {
		w.s.finish(metrics.OutcomeFailed)
	} else {
		w.s.finish(metrics.OutcomeSucceeded)
	}
	r.c <- Result[any]{Data: v, Err: err}
}

// Scheduler runs submitted work on a fixed set of long lived workers. Idle
// workers park on a park.Coordinator and every submission notifies one of them.
type Scheduler struct {
	nbWorkers   int
	coordinator *park.Coordinator
	log         *zap.SugaredLogger
	metrics     bool

	mu        sync.Mutex // guards workQueue and closing
	workQueue *queue[workRequest]
	closing   bool

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64

	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewScheduler(nbWorkers int, opts ...Option) *Scheduler {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		nbWorkers:   nbWorkers,
		coordinator: park.New(),
		log:         zap.S().Named("scheduler"),
		metrics:     true,
		workQueue:   &queue[workRequest]{},
		mainCtx:     ctx,
		mainCancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics {
		metrics.Register()
	}

	for range nbWorkers {
		s.wg.Add(1)
		go newWorker(s).run()
	}
	s.log.Infow("scheduler started", "workers", nbWorkers)
	return s
}

func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		// we're closing here so send a result with an error
		c <- Result[any]{Err: context.Canceled}
		return NewFuture(c, cancel)
	}
	s.workQueue.Push(workRequest{w, c, ctx})
	depth := s.workQueue.Len()
	s.mu.Unlock()

	s.submitted.Add(1)
	if s.metrics {
		metrics.SetQueueDepth(depth)
		metrics.RecordNotify()
	}
	s.coordinator.NotifyOne()

	return NewFuture(c, cancel)
}

// Close cancels all work, waits for in-flight work and stops the workers.
// Work still queued is completed with context.Canceled. Close is idempotent.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.mainCancel()

		s.mu.Lock()
		s.closing = true
		s.mu.Unlock()

		// Every exiting worker notifies the next one, so a single
		// notification is enough to start draining parked workers.
		s.coordinator.NotifyOne()
		s.wg.Wait()

		s.mu.Lock()
		pending := *s.workQueue
		s.workQueue = &queue[workRequest]{}
		s.mu.Unlock()

		for _, r := range pending {
			s.finish(metrics.OutcomeCanceled)
			r.c <- Result[any]{Err: context.Canceled}
		}
		if s.metrics {
			metrics.SetQueueDepth(0)
		}
		s.log.Infow("scheduler stopped", "canceled", len(pending))
	})
}

// Stats returns a snapshot of the scheduler counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	queued := s.workQueue.Len()
	s.mu.Unlock()

	return Stats{
		Workers:       s.nbWorkers,
		Parked:        s.coordinator.Parked(),
		Queued:        queued,
		Submitted:     int(s.submitted.Load()),
		Completed:     int(s.completed.Load()),
		Failed:        int(s.failed.Load()),
		CreditPending: s.coordinator.Pending(),
	}
}

// next pops the oldest request. closing is reported before any queued work
// so that workers stop picking up requests once Close has started.
func (s *Scheduler) next() (r workRequest, ok bool, closing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing {
		return r, false, true
	}
	if s.workQueue.Len() == 0 {
		return r, false, false
	}
	r = s.workQueue.Pop()
	if s.metrics {
		metrics.SetQueueDepth(s.workQueue.Len())
	}
	return r, true, false
}

func (s *Scheduler) finish(outcome string) {
	s.completed.Add(1)
	if outcome != metrics.OutcomeSucceeded {
		s.failed.Add(1)
	}
	if s.metrics {
		metrics.RecordWork(outcome)
	}
}

func (s *Scheduler) recordPark() {
	if s.metrics {
		metrics.RecordPark()
	}
}

func (s *Scheduler) recordWakeup() {
	if s.metrics {
		metrics.RecordWakeup()
	}
}
