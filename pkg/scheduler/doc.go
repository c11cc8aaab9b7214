// Package scheduler implements a worker pool for executing async work with futures.
//
// The scheduler starts a fixed number of long lived workers that pull work
// from a shared FIFO queue. A worker that finds the queue empty parks on a
// park.Coordinator; every AddWork pushes to the queue and notifies one parked
// worker. Work is submitted via AddWork and returns a Future that can be used
// to retrieve the result or cancel the work.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           Scheduler                                 │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 1   │      │   Worker 2   │      │   Worker N   │       │
//	│  └──────┬───────┘      └──────┬───────┘      └──────┬───────┘       │
//	│         │ pop / park          │                     │               │
//	│         ▼                     ▼                     ▼               │
//	│  ┌─────────────────────────────────────────────────────────┐        │
//	│  │                   park.Coordinator                      │        │
//	│  │        Wait() when idle   ◄──   NotifyOne() per work    │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                      Work Queue                         │        │
//	│  │  [work1] [work2] [work3] ...                            │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                        AddWork(fn)                                  │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Worker Loop
//
//	for {
//	    req, ok, closing := s.next()   // under the queue lock
//	    if closing { return }
//	    if ok { run(req); continue }
//	    coordinator.Wait()             // park until AddWork or Close notifies
//	}
//
// A worker always re-checks the queue after Wait returns: the coordinator
// guarantees that a notification happened, not that work is still there (a
// busy peer may have taken it first).
//
// The window between "queue is empty" and "worker is parked" is covered by
// the coordinator's credit. If AddWork notifies while nobody is parked yet,
// the next worker to call Wait returns immediately and finds the work.
//
// # Worker Lifecycle
//
//	┌───────────┐   queue not empty   ┌───────────┐
//	│  Parked   │ ◄────────────────── │  Working  │
//	│  (Wait)   │   queue empty       │           │
//	└─────┬─────┘ ──────────────────► └───────────┘
//	      │        NotifyOne
//	      ▼
//	  closing flag set ──► worker exits and notifies the next one
//
// # Future Mechanism
//
// When AddWork is called, it returns a Future immediately. The Future provides:
//
//   - C() chan Result: Channel that will receive exactly one result when work completes
//   - Stop(): Cancels the work's context (signals cancellation to the work function)
//
// Work whose context is already cancelled when a worker picks it up is not
// run; its future receives the context error.
//
// # Panic Recovery
//
// Workers recover from panics in work functions and report them as
// *errors.WorkerPanicError. The worker keeps serving the queue.
//
// # Graceful Shutdown
//
// Close() performs graceful shutdown:
//
//  1. Cancels main context (signals all work to stop)
//  2. Sets the closing flag under the queue lock (AddWork now fails fast)
//  3. Issues one NotifyOne; every exiting worker issues another one, so
//     parked workers are released one after the other even though the
//     coordinator never holds more than one credit
//  4. Waits for every worker to exit (in-flight work finishes first)
//  5. Completes work that was still queued with context.Canceled
//
// Close() is idempotent (uses sync.Once).
//
// # Usage Example
//
//	sched := scheduler.NewScheduler(4, scheduler.WithLogger(zap.S()))
//	defer sched.Close()
//
//	future := sched.AddWork(func(ctx context.Context) (any, error) {
//	    time.Sleep(100 * time.Millisecond)
//	    return "done", nil
//	})
//
//	result := <-future.C()
//	if result.Err != nil {
//	    zap.S().Errorw("work failed", "error", result.Err)
//	}
package scheduler
