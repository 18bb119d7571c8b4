package routes

import (
	"lottodesk/internal/controllers"
	"lottodesk/internal/pkg/cwl"
	"lottodesk/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter initializes all controllers and API routes
func SetupRouter(demoStore *store.DemoStore, cwlClient *cwl.Client, logger *zap.Logger) *gin.Engine {
	demoController := controllers.DemoController{Store: demoStore, Logger: logger}
	drawController := controllers.DrawController{Client: cwlClient, Logger: logger}

	router := gin.Default()

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	api := router.Group("/api/v1")
	{
		demos := api.Group("/demos")
		{
			demos.GET("", demoController.ListDemos)
			demos.POST("", demoController.CreateDemo)
			demos.GET("/:id", demoController.GetDemo)
			demos.PATCH("/:id", demoController.UpdateDemo)
			demos.DELETE("/:id", demoController.DeleteDemo)
		}

		draws := api.Group("/draws")
		{
			// GET /api/v1/draws?count=30
			draws.GET("", drawController.GetRecentDraws)
			// GET /api/v1/draws/details?link=/c/2024/01/07/557213.shtml
			draws.GET("/details", drawController.GetDrawDetails)
		}
	}

	return router
}
