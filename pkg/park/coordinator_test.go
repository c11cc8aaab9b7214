package park_test

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/workpark/pkg/park"
)

// waitAsync runs c.Wait in a goroutine and returns a channel closed on return.
func waitAsync(c *park.Coordinator) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Wait()
	}()
	return done
}

var _ = Describe("Coordinator", func() {
	var c *park.Coordinator

	BeforeEach(func() {
		c = park.New()
	})

	Describe("New", func() {
		It("should start with nobody parked and no credit", func() {
			Expect(c.Parked()).To(Equal(0))
			Expect(c.Pending()).To(BeFalse())
		})
	})

	Describe("Wait", func() {
		It("should block until notified", func() {
			done := waitAsync(c)

			Eventually(c.Parked, time.Second).Should(Equal(1))
			Consistently(done, 100*time.Millisecond).ShouldNot(BeClosed())

			c.NotifyOne()

			Eventually(done, time.Second).Should(BeClosed())
			Expect(c.Parked()).To(Equal(0))
		})

		// Given a notification issued while nobody was parked
		// When a worker calls Wait afterwards
		// Then it should return without blocking and consume the credit
		It("should consume a credit left by an earlier notification", func() {
			// Arrange
			c.NotifyOne()
			Expect(c.Pending()).To(BeTrue())

			// Act
			done := waitAsync(c)

			// Assert
			Eventually(done, time.Second).Should(BeClosed())
			Expect(c.Pending()).To(BeFalse())
			Expect(c.Parked()).To(Equal(0))
		})
	})

	Describe("NotifyOne", func() {
		It("should wake a parked goroutine without leaving a credit", func() {
			done := waitAsync(c)
			Eventually(c.Parked, time.Second).Should(Equal(1))

			c.NotifyOne()

			Eventually(done, time.Second).Should(BeClosed())
			Expect(c.Pending()).To(BeFalse())
		})

		It("should wake exactly one of several parked goroutines", func() {
			first := waitAsync(c)
			second := waitAsync(c)
			third := waitAsync(c)
			Eventually(c.Parked, time.Second).Should(Equal(3))

			c.NotifyOne()

			Eventually(c.Parked, time.Second).Should(Equal(2))
			Eventually(func() int {
				return countClosed(first, second, third)
			}, time.Second).Should(Equal(1))
			Consistently(func() int {
				return countClosed(first, second, third)
			}, 100*time.Millisecond).Should(Equal(1))

			c.NotifyOne()
			c.NotifyOne()
			Eventually(func() int {
				return countClosed(first, second, third)
			}, time.Second).Should(Equal(3))
			Expect(c.Parked()).To(Equal(0))
			Expect(c.Pending()).To(BeFalse())
		})

		// Given nobody is parked
		// When NotifyOne is called twice in a row
		// Then only one credit should exist
		It("should not accumulate credits", func() {
			// Arrange
			c.NotifyOne()
			c.NotifyOne()

			// Act
			first := waitAsync(c)
			Eventually(first, time.Second).Should(BeClosed())
			second := waitAsync(c)

			// Assert
			Eventually(c.Parked, time.Second).Should(Equal(1))
			Consistently(second, 100*time.Millisecond).ShouldNot(BeClosed())

			c.NotifyOne()
			Eventually(second, time.Second).Should(BeClosed())
		})

		It("should not block when nobody ever waits", func() {
			done := make(chan struct{})
			go func() {
				defer close(done)
				for range 1000 {
					c.NotifyOne()
				}
			}()

			Eventually(done, time.Second).Should(BeClosed())
			Expect(c.Pending()).To(BeTrue())
		})
	})

	Describe("Ordering", func() {
		It("should honour a notification that happened before the wait", func() {
			notified := make(chan struct{})
			go func() {
				c.NotifyOne()
				close(notified)
			}()

			<-notified
			done := waitAsync(c)

			Eventually(done, time.Second).Should(BeClosed())
		})

		It("should leave no credit after waking a blocked goroutine", func() {
			b := waitAsync(c)
			Eventually(c.Parked, time.Second).Should(Equal(1))

			c.NotifyOne()
			Eventually(b, time.Second).Should(BeClosed())

			cDone := waitAsync(c)
			Eventually(c.Parked, time.Second).Should(Equal(1))
			Consistently(cDone, 100*time.Millisecond).ShouldNot(BeClosed())

			c.NotifyOne()
			Eventually(cDone, time.Second).Should(BeClosed())
		})
	})

	Describe("Parked count", func() {
		It("should track the number of blocked goroutines", func() {
			var wg sync.WaitGroup
			for range 5 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					c.Wait()
				}()
			}
			Eventually(c.Parked, time.Second).Should(Equal(5))

			for i := 5; i > 0; i-- {
				c.NotifyOne()
				Expect(c.Parked()).To(Equal(i - 1))
			}

			wg.Wait()
			Expect(c.Parked()).To(Equal(0))
			Expect(c.Pending()).To(BeFalse())
		})
	})

	Describe("Stress", func() {
		// Given N workers that each wait M times
		// When a notifier issues N*M notifications with random delays
		// Then every wait should be released and every worker should exit
		It("should deliver every notification", func() {
			const (
				workers = 8
				rounds  = 200
			)
			var observed atomic.Int64
			var wg sync.WaitGroup

			for range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range rounds {
						c.Wait()
						observed.Add(1)
					}
				}()
			}

			go func() {
				for range workers * rounds {
					// A second notification issued while the credit is still
					// pending collapses into it, so pace on the credit.
					for c.Pending() {
						time.Sleep(10 * time.Microsecond)
					}
					if rand.IntN(4) == 0 {
						time.Sleep(time.Duration(rand.IntN(50)) * time.Microsecond)
					}
					c.NotifyOne()
				}
			}()

			finished := make(chan struct{})
			go func() {
				wg.Wait()
				close(finished)
			}()

			Eventually(finished, 20*time.Second).Should(BeClosed())
			Expect(observed.Load()).To(Equal(int64(workers * rounds)))
			Expect(c.Parked()).To(Equal(0))
			Expect(c.Pending()).To(BeFalse())
		})
	})
})

func countClosed(chs ...chan struct{}) int {
	n := 0
	for _, ch := range chs {
		select {
		case <-ch:
			n++
		default:
		}
	}
	return n
}
