package http

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler, jwtSecret []byte) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		tasks := api.Group("/tasks")
		tasks.Use(middleware.AuthMiddleware(jwtSecret))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/stats", taskHandler.Stats)
			tasks.GET("/calendar", taskHandler.Calendar)
			tasks.PATCH("/bulk", taskHandler.BulkUpdate)
			tasks.DELETE("/bulk", taskHandler.BulkDelete)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.GET("/:id/subtasks", taskHandler.ListSubtasks)
			tasks.POST("/:id/subtasks", taskHandler.CreateSubtask)
		}
	}
}
