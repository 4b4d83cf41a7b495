package app

import (
	"coachpro_backend/internal/config"
	"coachpro_backend/internal/middleware"
	"coachpro_backend/internal/model"
	"coachpro_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public
	router.POST("/api/register", c.auth.Register)
	router.POST("/api/login", c.auth.Login)
	router.GET("/api/health", c.health.HealthCheck)

	// Authenticated. Self-or-staff decisions happen inside the handlers;
	// the capability groups below gate the staff-only surfaces.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		authGroup.GET("/profile", c.profile.GetProfile)
		authGroup.PUT("/profile", c.profile.SaveProfile)

		authGroup.POST("/enrollments", c.enrollment.Enroll)
		authGroup.GET("/enrollments", c.enrollment.ListMine)
		authGroup.DELETE("/enrollments/:programId", c.enrollment.Cancel)

		authGroup.GET("/progress/:programId", c.enrollment.GetProgress)
		authGroup.POST("/progress/:programId/activity", c.enrollment.RecordActivity)

		authGroup.POST("/sessions/start", c.session.Start)
		authGroup.POST("/sessions/messages", c.session.SendMessage)
		authGroup.GET("/sessions/messages", c.session.ListMessages)
		authGroup.POST("/sessions/attachments", c.session.UploadAttachment)

		authGroup.GET("/assessments/:id", c.assessment.Get)
		authGroup.POST("/assessments/:id/responses", c.assessment.SubmitResponse)

		authGroup.GET("/recommendations/:studentId/:programId", c.enrollment.Recommendations)
	}

	viewGroup := router.Group("/api")
	viewGroup.Use(middleware.AuthMiddleware(cfg), middleware.CapabilityMiddleware(model.CapView))
	{
		viewGroup.GET("/dashboard", c.dashboard.Overview)
		viewGroup.GET("/students", c.dashboard.ListStudents)
		viewGroup.GET("/reports", c.report.Run)
		viewGroup.GET("/reports/export", c.report.Export)
		viewGroup.GET("/programs", c.program.List)
		viewGroup.GET("/programs/:id", c.program.Get)
		viewGroup.GET("/assessments", c.assessment.List)
		viewGroup.GET("/assessments/:id/responses", c.assessment.ListResponses)
	}

	editGroup := router.Group("/api")
	editGroup.Use(middleware.AuthMiddleware(cfg), middleware.CapabilityMiddleware(model.CapEdit))
	{
		editGroup.POST("/programs", c.program.Create)
		editGroup.PUT("/programs/:id", c.program.Update)
		editGroup.DELETE("/programs/:id", c.program.Delete)

		editGroup.POST("/assessments", c.assessment.Create)
		editGroup.PUT("/assessments/:id", c.assessment.Update)

		editGroup.POST("/recommendations/evaluate", c.enrollment.Evaluate)
	}

	manageGroup := router.Group("/api")
	manageGroup.Use(middleware.AuthMiddleware(cfg), middleware.CapabilityMiddleware(model.CapManage))
	{
		manageGroup.GET("/settings", c.settings.Get)
		manageGroup.PUT("/settings", c.settings.Save)
		manageGroup.POST("/snapshots/run", c.report.RunSnapshot)
	}
}
