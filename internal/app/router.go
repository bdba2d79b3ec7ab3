package app

import (
	"learntrack_backend/docs"
	"learntrack_backend/internal/config"
	"learntrack_backend/internal/middleware"
	"learntrack_backend/internal/model"
	"learntrack_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no token required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/users/register", c.auth.Register)
		public.POST("/users/login", c.auth.Login)
		public.POST("/admin/login", c.auth.AdminLogin)
	}

	// Learner surface.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/users/profile", c.auth.GetProfile)
		authGroup.PUT("/users/profile", c.user.UpdateProfile)
		authGroup.PUT("/users/change-password", c.user.ChangePassword)
		authGroup.POST("/users/avatar", c.user.UploadAvatar)

		authGroup.GET("/topics", c.topic.ListTopics)
		authGroup.GET("/topics/:id", c.topic.GetTopic)
		authGroup.GET("/topics/:id/contents", c.topic.ListContents)

		authGroup.POST("/progress/content/:id", c.progress.UpdateProgress)
		authGroup.GET("/progress/overall", c.progress.GetOverall)
	}

	// Admin surface. The role check runs server-side on every request; a
	// client-held admin flag on its own opens nothing.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.dashboard.GetDashboard)
		admin.GET("/users", c.dashboard.ListUsers)
		admin.GET("/user-stats", c.dashboard.GetUserStats)

		admin.GET("/topics", c.adminCatalog.ListTopics)
		admin.POST("/topics", c.adminCatalog.CreateTopic)
		admin.GET("/topics/:id", c.adminCatalog.GetTopic)
		admin.PUT("/topics/:id", c.adminCatalog.UpdateTopic)
		admin.DELETE("/topics/:id", c.adminCatalog.DeleteTopic)

		admin.GET("/content", c.adminCatalog.ListContent)
		admin.POST("/content", c.adminCatalog.CreateContent)
		admin.GET("/content/:id", c.adminCatalog.GetContent)
		admin.PUT("/content/:id", c.adminCatalog.UpdateContent)
		admin.DELETE("/content/:id", c.adminCatalog.DeleteContent)
	}
}
