package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Service *service.AssessmentService
}

func NewHealthController(svc *service.AssessmentService) *HealthController {
	return &HealthController{Service: svc}
}

// @Summary Health check
// @Description Reports service status and the live run count
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"questionBank": "up",
		},
		"activeRuns": c.Service.RunCount(),
	})
}
