// Package park implements the parking handshake used by idle workers.
//
// A worker that runs out of work calls Wait and is suspended until a producer
// calls NotifyOne. The hard part is the window between "the worker saw an
// empty queue" and "the worker is registered as sleeping": a notification
// issued inside that window must not be dropped. The Coordinator keeps it as a
// single sticky credit that the next Wait consumes instead of blocking.
//
// # State
//
//	┌───────────────────────────────────────────────────────────┐
//	│                       Coordinator                         │
//	│                                                           │
//	│   mu ──guards──► parked (goroutines blocked in Wait)      │
//	│   wake (sync.Cond on mu)                                  │
//	│   pending (atomic.Bool, the credit)                       │
//	└───────────────────────────────────────────────────────────┘
//
// # Signal lifecycle
//
//	            NotifyOne, parked == 0            next Wait
//	┌──────┐ ─────────────────────────► ┌──────────┐ ─────────► ┌──────┐
//	│ idle │                            │ credited │            │ idle │
//	└──────┘ ─────────────────────────► └──────────┘            └──────┘
//	   │      NotifyOne, parked > 0
//	   └──► one parked goroutine is signalled, no credit is left behind
//
// At most one credit exists at a time. Calling NotifyOne twice while nobody
// is parked leaves exactly one credit: the Coordinator is not a counting
// semaphore, callers that need N wakeups issue N notifications to N parked
// goroutines.
//
// # Usage
//
//	c := park.New()
//
//	// worker
//	for {
//	    if w, ok := queue.Pop(); ok {
//	        w.Run()
//	        continue
//	    }
//	    c.Wait()
//	    // re-check the queue: a wakeup is not a promise that work exists
//	}
//
//	// producer
//	queue.Push(w)
//	c.NotifyOne()
//
// Wait has no timeout and cannot be cancelled. Owners that need shutdown keep
// their own flag, check it after every Wait and notify until every worker has
// observed it (see pkg/scheduler).
package park
