package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/workpark/api/v1"
	"github.com/kubev2v/workpark/internal/models"
	"github.com/kubev2v/workpark/internal/services"
	"github.com/kubev2v/workpark/internal/util"
	srvErrors "github.com/kubev2v/workpark/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxOffset       = math.MaxInt32
)

var validStatuses = []string{string(models.RunStatusCompleted), string(models.RunStatusTimeout)}

// GetRuns returns the stored runs with filtering and pagination
// (GET /runs)
func (h *Handler) GetRuns(c *gin.Context, params v1.GetRunsParams) {
	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = min(*params.PageSize, maxPageSize)
	}

	if page-1 > maxOffset/pageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("page %d is out of range", page)})
		return
	}

	svcParams := services.RunListParams{
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	}

	if params.Mode != nil {
		for _, m := range *params.Mode {
			if _, err := models.ParseRunMode(m); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		svcParams.Modes = *params.Mode
	}
	if params.Status != nil {
		for _, st := range *params.Status {
			if !util.Contains(validStatuses, st) {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid run status: %s", st)})
				return
			}
		}
		svcParams.Statuses = *params.Status
	}

	result, err := h.runSrv.List(c.Request.Context(), svcParams)
	if err != nil {
		zap.S().Named("run_handler").Errorw("failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}

	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	apiRuns := make([]v1.Run, 0, len(result.Runs))
	for _, r := range result.Runs {
		apiRuns = append(apiRuns, v1.NewRunFromModel(r))
	}

	c.JSON(http.StatusOK, v1.RunListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     result.Total,
		Runs:      apiRuns,
	})
}

// GetRun returns a single stored run
// (GET /runs/{id})
func (h *Handler) GetRun(c *gin.Context, id string) {
	runID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := h.runSrv.Get(c.Request.Context(), runID)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("run_handler").Errorw("failed to get run", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get run"})
		return
	}

	c.JSON(http.StatusOK, v1.NewRunFromModel(*run))
}

// CreateRun executes a stress run and returns its result
// (POST /runs)
func (h *Handler) CreateRun(c *gin.Context) {
	var req v1.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := h.benchSrv.Run(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case srvErrors.IsInvalidParamsError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case srvErrors.IsBenchInProgressError(err):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			zap.S().Named("run_handler").Errorw("stress run failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stress run failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, v1.NewRunFromModel(*run))
}
