package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/schooladmin/internal/app/models/dto"
)

// HealthController reports process liveness
type HealthController struct {
	started time.Time
}

// NewHealthController creates a new HealthController
func NewHealthController() *HealthController {
	return &HealthController{started: time.Now()}
}

// Health returns uptime in seconds
func (h *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"status": "ok",
		"uptime": int64(time.Since(h.started).Seconds()),
	}))
}
