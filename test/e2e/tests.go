package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/workpark/api/v1"
	"github.com/kubev2v/workpark/test/e2e/service"
)

var _ = Describe("workpark server", Ordered, func() {
	BeforeAll(func() {
		Expect(apiSvc.WaitReady(context.Background(), cfg.ReadyTimeout)).To(Succeed())
	})

	// Given a running server
	// When a coordinator run is requested
	// Then every expected wakeup should be observed
	It("should complete a coordinator run without losing wakeups", func() {
		run, err := apiSvc.CreateRun(v1.RunRequest{Mode: "coordinator", Workers: cfg.Workers, Rounds: cfg.Rounds})

		Expect(err).NotTo(HaveOccurred())
		Expect(run.Status).To(Equal("completed"))
		Expect(run.Observed).To(Equal(run.Expected))
		Expect(run.Lost).To(BeZero())
	})

	It("should complete a scheduler run", func() {
		run, err := apiSvc.CreateRun(v1.RunRequest{Mode: "scheduler", Workers: cfg.Workers, Rounds: cfg.Rounds, MaxDelayUs: 10})

		Expect(err).NotTo(HaveOccurred())
		Expect(run.Status).To(Equal("completed"))
		Expect(run.Observed).To(Equal(int64(cfg.Workers * cfg.Rounds)))

		stored, err := apiSvc.GetRun(run.Id)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Observed).To(Equal(run.Observed))
	})

	It("should list stored runs by mode", func() {
		list, err := apiSvc.ListRuns(url.Values{"mode": {"scheduler"}})

		Expect(err).NotTo(HaveOccurred())
		Expect(list.Total).To(BeNumerically(">=", 1))
		for _, r := range list.Runs {
			Expect(r.Mode).To(Equal("scheduler"))
		}
	})

	It("should reject concurrent runs with a conflict", func() {
		// Arrange
		req := v1.RunRequest{Mode: "coordinator", Workers: cfg.Workers, Rounds: cfg.Rounds * 4, MaxDelayUs: 200}
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			errs []error
		)

		// Act
		for range 2 {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_, err := apiSvc.CreateRun(req)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}()
		}
		wg.Wait()

		// Assert
		var conflicts int
		for _, err := range errs {
			var apiErr *service.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
				conflicts++
			}
		}
		Expect(conflicts).To(BeNumerically("<=", 1))
	})

	It("should report an idle pool after the runs", func() {
		Eventually(func(g Gomega) {
			status, err := apiSvc.Scheduler()
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(status.BenchState).To(Equal("ready"))
			g.Expect(status.Queued).To(BeZero())
			g.Expect(status.Parked).To(Equal(status.Workers))
		}).Should(Succeed())
	})

	It("should expose scheduler metrics", func() {
		body, err := apiSvc.Metrics()

		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(ContainSubstring("workpark_scheduler_parks_total"))
		Expect(body).To(ContainSubstring("workpark_bench_duration_seconds"))
	})
})
