package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/repositories/interfaces"
	"skyfence/internal/services"
	"skyfence/internal/utils"
	"skyfence/internal/validators"
	"skyfence/pkg/websocket"
)

type ZoneHandler struct {
	zoneService services.ZoneService
	wsHandler   *websocket.Handler
}

func NewZoneHandler(zoneService services.ZoneService, wsHandler *websocket.Handler) *ZoneHandler {
	return &ZoneHandler{
		zoneService: zoneService,
		wsHandler:   wsHandler,
	}
}

// CreateZone validates and persists a new flight zone.
func (h *ZoneHandler) CreateZone(c *gin.Context) {
	var request validators.ZoneRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailedResponse(c, validators.ReasonMalformedInput, "", "Invalid request body: "+err.Error())
		return
	}

	zone, err := h.zoneService.Create(c.Request.Context(), &request)
	if err != nil {
		h.respondZoneError(c, err)
		return
	}

	h.notifyZoneChanged("zone_created", zone.ID)
	utils.CreatedResponse(c, "Zone created successfully", zone)
}

// GetZone returns a single zone by id.
func (h *ZoneHandler) GetZone(c *gin.Context) {
	zoneID, ok := h.zoneID(c)
	if !ok {
		return
	}

	zone, err := h.zoneService.GetByID(c.Request.Context(), zoneID)
	if err != nil {
		h.respondZoneError(c, err)
		return
	}

	utils.SuccessResponse(c, "Zone retrieved successfully", zone)
}

// ListZones returns every zone, ordered by name.
func (h *ZoneHandler) ListZones(c *gin.Context) {
	zones, err := h.zoneService.List(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Zones retrieved successfully", zones, &utils.Meta{
		Count: len(zones),
	})
}

// UpdateZone applies a partial update. Supplied fields are merged over the
// stored record and the merged zone is re-validated as a whole before any
// write happens, so a rejected update leaves the stored zone untouched.
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	zoneID, ok := h.zoneID(c)
	if !ok {
		return
	}

	var request validators.ZoneRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailedResponse(c, validators.ReasonMalformedInput, "", "Invalid request body: "+err.Error())
		return
	}

	zone, err := h.zoneService.Update(c.Request.Context(), zoneID, &request)
	if err != nil {
		h.respondZoneError(c, err)
		return
	}

	h.notifyZoneChanged("zone_updated", zone.ID)
	utils.SuccessResponse(c, "Zone updated successfully", zone)
}

// DeleteZone removes a zone.
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	zoneID, ok := h.zoneID(c)
	if !ok {
		return
	}

	if err := h.zoneService.Delete(c.Request.Context(), zoneID); err != nil {
		h.respondZoneError(c, err)
		return
	}

	h.notifyZoneChanged("zone_deleted", zoneID)
	utils.SuccessResponse(c, "Zone deleted successfully", nil)
}

func (h *ZoneHandler) zoneID(c *gin.Context) (primitive.ObjectID, bool) {
	zoneID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid zone ID")
		return primitive.NilObjectID, false
	}
	return zoneID, true
}

func (h *ZoneHandler) notifyZoneChanged(event string, zoneID primitive.ObjectID) {
	if h.wsHandler != nil {
		h.wsHandler.NotifyZoneChanged(event, zoneID)
	}
}

// respondZoneError keeps the two failure families apart on the wire:
// validation failures carry a reason code with a 400, a missing record is a
// plain 404.
func (h *ZoneHandler) respondZoneError(c *gin.Context, err error) {
	var validationErr *validators.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.ValidationFailedResponse(c, validationErr.Reason, validationErr.Field, validationErr.Message)
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, "Zone")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "ZONE_OPERATION_FAILED", err.Error())
	}
}
