package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/workpark/api/v1"
	"github.com/kubev2v/workpark/internal/handlers"
	"github.com/kubev2v/workpark/internal/models"
	"github.com/kubev2v/workpark/internal/services"
	"github.com/kubev2v/workpark/internal/store"
	"github.com/kubev2v/workpark/internal/store/migrations"
	"github.com/kubev2v/workpark/pkg/scheduler"
)

func newRun(mode models.RunMode, status models.RunStatus, startedAt time.Time) *models.Run {
	return &models.Run{
		ID:        uuid.New(),
		Mode:      mode,
		Status:    status,
		Workers:   2,
		Rounds:    10,
		Expected:  20,
		Observed:  20,
		Duration:  5 * time.Millisecond,
		StartedAt: startedAt,
	}
}

var _ = Describe("Run handlers", func() {
	var (
		ctx    context.Context
		db     *sql.DB
		st     *store.Store
		sched  *scheduler.Scheduler
		router *gin.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		st = store.NewStore(db)
		sched = scheduler.NewScheduler(2)
		h := handlers.New(
			services.NewBenchService(sched, st, 10*time.Second),
			services.NewRunService(st),
			sched,
		)

		router = gin.New()
		v1.RegisterHandlers(router.Group("/api/v1"), h)
	})

	AfterEach(func() {
		sched.Close()
		db.Close()
	})

	do := func(method, path string, body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Context("GET /runs", func() {
		BeforeEach(func() {
			base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
			for i := range 5 {
				mode := models.RunModeCoordinator
				if i%2 == 1 {
					mode = models.RunModeScheduler
				}
				Expect(st.Runs().Save(ctx, newRun(mode, models.RunStatusCompleted, base.Add(time.Duration(i)*time.Minute)))).To(Succeed())
			}
		})

		It("should return every run with default pagination", func() {
			w := do(http.MethodGet, "/api/v1/runs", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.RunListResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Total).To(Equal(5))
			Expect(resp.Page).To(Equal(1))
			Expect(resp.PageCount).To(Equal(1))
			Expect(resp.Runs).To(HaveLen(5))
			Expect(resp.Runs[0].StartedAt.After(resp.Runs[4].StartedAt)).To(BeTrue())
		})

		It("should paginate", func() {
			w := do(http.MethodGet, "/api/v1/runs?page=2&pageSize=2", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.RunListResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Total).To(Equal(5))
			Expect(resp.PageCount).To(Equal(3))
			Expect(resp.Runs).To(HaveLen(2))
		})

		It("should filter by mode", func() {
			w := do(http.MethodGet, "/api/v1/runs?mode=scheduler", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.RunListResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Total).To(Equal(2))
			for _, r := range resp.Runs {
				Expect(r.Mode).To(Equal("scheduler"))
			}
		})

		It("should reject an unknown mode", func() {
			w := do(http.MethodGet, "/api/v1/runs?mode=threads", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return an empty page past the last run", func() {
			w := do(http.MethodGet, "/api/v1/runs?page=50&pageSize=10", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.RunListResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Total).To(Equal(5))
			Expect(resp.Runs).To(BeEmpty())
		})

		It("should reject a page whose offset overflows", func() {
			w := do(http.MethodGet, "/api/v1/runs?page=9223372036854775807&pageSize=100", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject an unknown status", func() {
			w := do(http.MethodGet, "/api/v1/runs?status=lost", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should filter by status", func() {
			Expect(st.Runs().Save(ctx, newRun(models.RunModeCoordinator, models.RunStatusTimeout, time.Now()))).To(Succeed())

			w := do(http.MethodGet, "/api/v1/runs?status=timeout", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.RunListResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Total).To(Equal(1))
			Expect(resp.Runs[0].Status).To(Equal("timeout"))
		})
	})

	Context("GET /runs/:id", func() {
		It("should return a stored run", func() {
			run := newRun(models.RunModeCoordinator, models.RunStatusTimeout, time.Now())
			run.Observed = 15
			Expect(st.Runs().Save(ctx, run)).To(Succeed())

			w := do(http.MethodGet, "/api/v1/runs/"+run.ID.String(), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.Run
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Id).To(Equal(run.ID.String()))
			Expect(resp.Status).To(Equal("timeout"))
			Expect(resp.Lost).To(Equal(int64(5)))
		})

		It("should return 404 for an unknown run", func() {
			w := do(http.MethodGet, "/api/v1/runs/"+uuid.NewString(), nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a malformed id", func() {
			w := do(http.MethodGet, "/api/v1/runs/not-a-uuid", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("POST /runs", func() {
		It("should execute and store a run", func() {
			// Arrange
			body, _ := json.Marshal(v1.RunRequest{Mode: "scheduler", Workers: 3, Rounds: 20})

			// Act
			w := do(http.MethodPost, "/api/v1/runs", body)

			// Assert
			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp v1.Run
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Status).To(Equal("completed"))
			Expect(resp.Observed).To(Equal(int64(60)))

			count, err := st.Runs().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		It("should reject invalid parameters", func() {
			body, _ := json.Marshal(v1.RunRequest{Mode: "coordinator", Workers: 0, Rounds: 5})
			w := do(http.MethodPost, "/api/v1/runs", body)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a malformed body", func() {
			w := do(http.MethodPost, "/api/v1/runs", []byte("{"))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("GET /scheduler", func() {
		It("should report the pool state", func() {
			w := do(http.MethodGet, "/api/v1/scheduler", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.SchedulerStatus
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Workers).To(Equal(2))
			Expect(resp.BenchState).To(Equal("ready"))
		})

		It("should reference the last run", func() {
			body, _ := json.Marshal(v1.RunRequest{Mode: "coordinator", Workers: 2, Rounds: 5})
			Expect(do(http.MethodPost, "/api/v1/runs", body).Code).To(Equal(http.StatusCreated))

			w := do(http.MethodGet, "/api/v1/scheduler", nil)

			var resp v1.SchedulerStatus
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.LastRunId).NotTo(BeEmpty())
			Expect(resp.Completed).To(Equal(1))
		})
	})
})
