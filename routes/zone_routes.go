package routes

import (
	"github.com/gin-gonic/gin"

	"skyfence/internal/handlers"
	"skyfence/internal/middleware"
)

// SetupZoneRoutes sets up routes for flight zone management. Reads are open
// to any authenticated user; mutations are admin only.
func SetupZoneRoutes(r *gin.RouterGroup, zoneHandler *handlers.ZoneHandler, jwtSecret string) {
	zones := r.Group("/zones")
	zones.Use(middleware.AuthRequired(jwtSecret))
	{
		zones.GET("", zoneHandler.ListZones)
		zones.GET("/:id", zoneHandler.GetZone)

		admin := zones.Group("")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("", zoneHandler.CreateZone)
			admin.PUT("/:id", zoneHandler.UpdateZone)
			admin.DELETE("/:id", zoneHandler.DeleteZone)
		}
	}
}
