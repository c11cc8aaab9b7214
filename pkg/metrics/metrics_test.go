package metrics_test

import (
	"io"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/workpark/pkg/metrics"
)

var _ = Describe("Metrics", func() {
	It("should be safe to register more than once", func() {
		Expect(func() {
			metrics.Register()
			metrics.Register()
		}).NotTo(Panic())
	})

	It("should expose recorded values", func() {
		metrics.RecordPark()
		metrics.RecordWakeup()
		metrics.RecordNotify()
		metrics.RecordWork(metrics.OutcomeSucceeded)
		metrics.SetQueueDepth(3)
		metrics.RecordBenchDuration("coordinator", "completed", 0.5)

		rec := httptest.NewRecorder()
		metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

		body, err := io.ReadAll(rec.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("workpark_scheduler_parks_total"))
		Expect(string(body)).To(ContainSubstring(`workpark_scheduler_work_total{outcome="succeeded"}`))
		Expect(string(body)).To(ContainSubstring("workpark_scheduler_queue_depth 3"))
		Expect(string(body)).To(ContainSubstring(`workpark_bench_duration_seconds_count{mode="coordinator",status="completed"}`))
	})
})
