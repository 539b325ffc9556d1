package http

import (
	"net/http"
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	taskHandler *handlers.TaskHandler,
	viewHandler *handlers.ViewHandler,
	metricsHandler http.Handler,
) {
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		api.GET("/tasks", taskHandler.ListTasks)
		api.GET("/tasks/defaults", taskHandler.GetTaskDefaults)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.POST("/tasks", taskHandler.CreateTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/tasks/bulk-delete", taskHandler.DeleteTasks)

		api.POST("/views", viewHandler.OpenView)
		api.GET("/views/:id", viewHandler.GetView)
		api.DELETE("/views/:id", viewHandler.CloseView)
		api.GET("/views/:id/tasks", viewHandler.ListViewTasks)
		api.PUT("/views/:id/filters/:field", viewHandler.SetFilter)
		api.DELETE("/views/:id/filters/:field", viewHandler.ClearFilter)
		api.DELETE("/views/:id/filters", viewHandler.ClearFilters)
		api.DELETE("/views/:id/applied/:key", viewHandler.RemoveApplied)
	}
}
