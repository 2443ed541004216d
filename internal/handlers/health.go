package handlers

import (
	"context"
	"time"

	"github.com/consultoria/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

// CheckHealth reports whether the database answers
// GET /health
func (a *App) CheckHealth(c *gin.Context) {
	dbStatus := "ok"
	healthy := true

	sqlDB, err := a.DB.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		healthy = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			healthy = false
		}
	}

	body := gin.H{
		"service": "portal",
		"components": gin.H{
			"database": dbStatus,
		},
	}
	if !healthy {
		body["status"] = "unhealthy"
		response.ServiceUnavailable(c, body)
		return
	}
	body["status"] = "healthy"
	response.Success(c, body)
}
