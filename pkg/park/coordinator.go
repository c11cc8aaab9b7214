package park

import (
	"sync"
	"sync/atomic"
)

// Coordinator is the place where idle workers park until work shows up.
//
// If a notification comes while nobody is parked, the next goroutine that
// calls Wait picks it up immediately instead of blocking.
type Coordinator struct {
	mu     sync.Mutex
	parked int // goroutines blocked in Wait, guarded by mu
	wake   *sync.Cond

	// pending is set when a notification came up while nobody was parked.
	// Only NotifyOne sets it and only Wait clears it.
	pending atomic.Bool
}

// New returns a ready to use Coordinator. It is meant to live as long as the
// pool that owns it and to be shared by pointer.
func New() *Coordinator {
	c := &Coordinator{}
	c.wake = sync.NewCond(&c.mu)
	return c
}

// Wait parks the calling goroutine until NotifyOne is called, or returns
// right away if a pending notification is available.
func (c *Coordinator) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending.Swap(false) {
		return
	}

	c.parked++
	c.wake.Wait()
}

// NotifyOne wakes one parked goroutine. When nobody is parked it leaves a
// single credit for the next Wait. It never blocks on a parked goroutine.
func (c *Coordinator) NotifyOne() {
	if c.pending.Load() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.parked > 0 {
		c.parked--
		c.wake.Signal()
		return
	}
	c.pending.Store(true)
}

// Parked returns the number of goroutines currently blocked in Wait that have
// not been signalled yet.
func (c *Coordinator) Parked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parked
}

// Pending reports whether a credit is waiting for the next Wait.
func (c *Coordinator) Pending() bool {
	return c.pending.Load()
}
