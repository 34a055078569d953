package app

import (
	"career_compass_backend/docs"
	"career_compass_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		assessment := api.Group("/assessment")
		{
			assessment.GET("/sections", c.assessment.Sections)

			assessment.POST("/runs", c.assessment.StartRun)
			assessment.GET("/runs/:id", c.assessment.GetRun)
			assessment.DELETE("/runs/:id", c.assessment.DiscardRun)

			assessment.POST("/runs/:id/sections/:section/start", c.assessment.StartSection)
			assessment.POST("/runs/:id/sections/:section/finalize", c.assessment.FinalizeSection)

			assessment.GET("/runs/:id/question", c.assessment.ActiveQuestion)
			assessment.POST("/runs/:id/answers", c.assessment.SubmitAnswer)
			assessment.POST("/runs/:id/jump", c.assessment.JumpTo)

			assessment.GET("/runs/:id/recommendation", c.assessment.Recommendation)
		}
	}
}
