package app

import (
	"net/http"
	"proctor_guard_backend/docs"
	"proctor_guard_backend/internal/config"
	"proctor_guard_backend/internal/middleware"
	"proctor_guard_backend/pkg/monitoring"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "ProctorGuard Backend is running",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "ProctorGuard API v1.0",
		})
	})

	api := router.Group("/api")
	api.Use(middleware.BodyLimit(cfg.Detection.MaxPayloadBytes))
	{
		api.GET("/health", c.health.HealthCheck)

		// 考生与考试台账
		api.POST("/students", c.student.Create)
		api.GET("/students", c.student.List)
		api.GET("/students/:id", c.student.Get)
		api.POST("/exams", c.exam.Create)
		api.GET("/exams", c.exam.List)
		api.GET("/exams/:id", c.exam.Get)

		// 监考核心链路
		api.POST("/analyze-frame", c.proctor.AnalyzeFrame)
		api.POST("/log-violation", c.proctor.LogViolation)
		api.POST("/alerts", c.proctor.CreateAlert)
		api.GET("/alerts", c.proctor.ListAlerts)
		api.GET("/alerts/student/:studentId", c.proctor.StudentAlerts)
		api.GET("/violations-with-screenshots", c.proctor.ViolationsWithScreenshots)

		// 交卷
		api.POST("/submit-exam", c.submission.SubmitExam)
		api.POST("/submissions", c.submission.Create)
		api.GET("/submissions", c.submission.List)
		api.GET("/submissions/student/:studentId", c.submission.StudentSubmissions)

		// 监控大盘
		api.GET("/dashboard/stats", c.dashboard.Stats)
		api.GET("/monitor/live", c.monitor.Live)
	}
}
