package websocket

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/models"
)

// ZoneLoader resolves an existing zone so a client can open it for editing.
// Satisfied by services.ZoneService.
type ZoneLoader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Zone, error)
}

type Handler struct {
	hub   *Hub
	zones ZoneLoader
}

func NewHandler(zones ZoneLoader) *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub:   hub,
		zones: zones,
	}
}

// HandleWebSocket upgrades an authenticated request and attaches a fresh
// drawing session to the connection.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userType, exists := c.Get("user_type")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User type not found"})
		return
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userTypeStr, ok := userType.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user type"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userObjectID, userTypeStr, h.zones)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// NotifyZoneChanged pushes a zone lifecycle event to every connected client.
func (h *Handler) NotifyZoneChanged(event string, zoneID primitive.ObjectID) {
	h.hub.BroadcastZoneEvent(event, zoneID)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
