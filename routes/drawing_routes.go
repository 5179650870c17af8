package routes

import (
	"github.com/gin-gonic/gin"

	"skyfence/internal/middleware"
	"skyfence/pkg/websocket"
)

// SetupDrawingRoutes exposes the live drawing websocket. Each connection
// gets its own server-side drawing session validated on every edit.
func SetupDrawingRoutes(r *gin.RouterGroup, wsHandler *websocket.Handler, jwtSecret string) {
	drawing := r.Group("/drawing")
	drawing.Use(middleware.AuthRequired(jwtSecret))
	{
		drawing.GET("/ws", wsHandler.HandleWebSocket)
	}
}
