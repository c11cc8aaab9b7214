package scheduler

import (
	"context"

	"go.uber.org/zap"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	f := &Future[T]{
		input:  input,
		cancel: cancel,
	}

	return f
}

func (f *Future[T]) C() chan T {
	return f.input
}

func (f *Future[T]) Stop() {
	f.cancel()
}

// Stats is a point in time view of the scheduler.
type Stats struct {
	Workers       int  `json:"workers"`
	Parked        int  `json:"parked"`
	Queued        int  `json:"queued"`
	Submitted     int  `json:"submitted"`
	Completed     int  `json:"completed"`
	Failed        int  `json:"failed"`
	CreditPending bool `json:"creditPending"`
}

type Option func(*Scheduler)

// WithLogger sets the logger used by the scheduler and its workers.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// WithMetrics turns prometheus recording on or off. It is on by default.
func WithMetrics(enabled bool) Option {
	return func(s *Scheduler) {
		s.metrics = enabled
	}
}
