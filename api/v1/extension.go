package v1

import (
	"time"

	"github.com/kubev2v/workpark/internal/bench"
	"github.com/kubev2v/workpark/internal/models"
	"github.com/kubev2v/workpark/internal/services"
	"github.com/kubev2v/workpark/internal/util"
	"github.com/kubev2v/workpark/pkg/scheduler"
)

// NewRunFromModel converts a models.Run to an API Run.
func NewRunFromModel(r models.Run) Run {
	return Run{
		Id:               r.ID.String(),
		Mode:             string(r.Mode),
		Status:           string(r.Status),
		Workers:          r.Workers,
		Rounds:           r.Rounds,
		MaxDelayUs:       r.MaxDelay.Microseconds(),
		Expected:         r.Expected,
		Observed:         r.Observed,
		Lost:             r.Lost(),
		DurationMs:       util.Milliseconds(r.Duration),
		WakeupsPerSecond: util.PerSecond(r.Observed, r.Duration),
		StartedAt:        r.StartedAt,
	}
}

// ToParams converts the request body to bench parameters.
func (r RunRequest) ToParams() bench.Params {
	return bench.Params{
		Mode:     models.RunMode(r.Mode),
		Workers:  r.Workers,
		Rounds:   r.Rounds,
		MaxDelay: time.Duration(r.MaxDelayUs) * time.Microsecond,
	}
}

// NewSchedulerStatus merges scheduler stats with the bench service status.
func NewSchedulerStatus(stats scheduler.Stats, status services.BenchStatus) SchedulerStatus {
	s := SchedulerStatus{
		Workers:       stats.Workers,
		Parked:        stats.Parked,
		Queued:        stats.Queued,
		Submitted:     stats.Submitted,
		Completed:     stats.Completed,
		Failed:        stats.Failed,
		CreditPending: stats.CreditPending,
		BenchState:    string(status.State),
	}
	if status.LastRun != nil {
		s.LastRunId = status.LastRun.ID.String()
	}
	return s
}
