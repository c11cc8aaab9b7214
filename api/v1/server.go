package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /runs)
	GetRuns(c *gin.Context, params GetRunsParams)
	// (POST /runs)
	CreateRun(c *gin.Context)
	// (GET /runs/:id)
	GetRun(c *gin.Context, id string)
	// (GET /scheduler)
	GetScheduler(c *gin.Context)
}

// RegisterHandlers binds every ServerInterface method to its route.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	router.GET("/runs", func(c *gin.Context) {
		var params GetRunsParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, Error{Error: err.Error()})
			return
		}
		si.GetRuns(c, params)
	})
	router.POST("/runs", si.CreateRun)
	router.GET("/runs/:id", func(c *gin.Context) {
		si.GetRun(c, c.Param("id"))
	})
	router.GET("/scheduler", si.GetScheduler)
}
