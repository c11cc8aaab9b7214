package handlers

import (
	"github.com/kubev2v/workpark/internal/services"
	"github.com/kubev2v/workpark/pkg/scheduler"
)

type Handler struct {
	benchSrv  *services.BenchService
	runSrv    *services.RunService
	scheduler *scheduler.Scheduler
}

func New(benchSrv *services.BenchService, runSrv *services.RunService, sched *scheduler.Scheduler) *Handler {
	return &Handler{
		benchSrv:  benchSrv,
		runSrv:    runSrv,
		scheduler: sched,
	}
}
