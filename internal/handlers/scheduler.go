package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/workpark/api/v1"
)

// GetScheduler returns a snapshot of the shared worker pool
// (GET /scheduler)
func (h *Handler) GetScheduler(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewSchedulerStatus(h.scheduler.Stats(), h.benchSrv.Status()))
}
