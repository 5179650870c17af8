package routes

import (
	"github.com/gin-gonic/gin"

	"skyfence/internal/handlers"
	"skyfence/internal/middleware"
)

// SetupScheduleRoutes sets up routes for flight schedules. Ownership checks
// happen in the service layer, so every authenticated user gets the same
// route surface.
func SetupScheduleRoutes(r *gin.RouterGroup, scheduleHandler *handlers.ScheduleHandler, jwtSecret string) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthRequired(jwtSecret))
	{
		schedules.GET("", scheduleHandler.ListSchedules)
		schedules.GET("/:id", scheduleHandler.GetSchedule)
		schedules.POST("", scheduleHandler.CreateSchedule)
		schedules.PUT("/:id", scheduleHandler.UpdateSchedule)
		schedules.PATCH("/:id/status", scheduleHandler.UpdateScheduleStatus)
		schedules.DELETE("/:id", scheduleHandler.DeleteSchedule)
	}
}
