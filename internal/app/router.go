package app

import (
	"lexile_eval_backend/docs"
	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/middleware"
	"lexile_eval_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.user.GetProfile)

		authGroup.GET("/tests/options", c.test.GetOptions)
		authGroup.POST("/tests/generate", c.test.GenerateTest)
		authGroup.POST("/tests/:attemptId/submit", c.test.SubmitAnswers)
		authGroup.DELETE("/tests/current", c.test.AbandonTest)
	}
}
