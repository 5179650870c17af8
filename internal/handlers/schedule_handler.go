package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/models"
	"skyfence/internal/repositories/interfaces"
	"skyfence/internal/services"
	"skyfence/internal/utils"
	"skyfence/internal/validators"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// ListSchedules returns schedules overlapping the requested [from, to)
// window, paginated. Both bounds are required ISO timestamps.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	from, err := utils.ParseTimeISO(c.Query("from"))
	if err != nil {
		utils.ValidationFailedResponse(c, validators.ReasonInvalidTimeRange, "from", "from must be a valid ISO timestamp")
		return
	}
	to, err := utils.ParseTimeISO(c.Query("to"))
	if err != nil {
		utils.ValidationFailedResponse(c, validators.ReasonInvalidTimeRange, "to", "to must be a valid ISO timestamp")
		return
	}

	params := utils.GetPaginationParams(c)
	schedules, total, err := h.scheduleService.ListOverlapping(c.Request.Context(), from, to, params)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Schedules retrieved successfully", schedules, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetSchedule returns a single schedule by id.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetByID(c.Request.Context(), scheduleID)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Schedule retrieved successfully", schedule)
}

// CreateSchedule records a new flight schedule owned by the caller.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var request validators.CreateScheduleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailedResponse(c, validators.ReasonMalformedInput, "", "Invalid request body: "+err.Error())
		return
	}

	schedule, err := h.scheduleService.Create(c.Request.Context(), actor.UserID, &request)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	utils.CreatedResponse(c, "Schedule created successfully", schedule)
}

// UpdateSchedule applies a partial update; only the owner or an admin may
// modify a schedule.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var request validators.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailedResponse(c, validators.ReasonMalformedInput, "", "Invalid request body: "+err.Error())
		return
	}

	schedule, err := h.scheduleService.Update(c.Request.Context(), scheduleID, actor, &request)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Schedule updated successfully", schedule)
}

// UpdateScheduleStatus moves a schedule through its lifecycle.
func (h *ScheduleHandler) UpdateScheduleStatus(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var request validators.UpdateStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailedResponse(c, validators.ReasonMalformedInput, "", "Invalid request body: "+err.Error())
		return
	}

	status := models.ScheduleStatus(request.Status)
	schedule, err := h.scheduleService.UpdateStatus(c.Request.Context(), scheduleID, actor, status)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Schedule status updated successfully", schedule)
}

// DeleteSchedule removes a schedule; owner or admin only.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	scheduleID, ok := h.scheduleID(c)
	if !ok {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), scheduleID, actor); err != nil {
		h.respondScheduleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Schedule deleted successfully", nil)
}

func (h *ScheduleHandler) scheduleID(c *gin.Context) (primitive.ObjectID, bool) {
	scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid schedule ID")
		return primitive.NilObjectID, false
	}
	return scheduleID, true
}

func (h *ScheduleHandler) actor(c *gin.Context) (services.Actor, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return services.Actor{}, false
	}
	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return services.Actor{}, false
	}

	userType, _ := c.Get("user_type")
	userTypeStr, _ := userType.(string)

	return services.Actor{UserID: userObjectID, UserType: userTypeStr}, true
}

func (h *ScheduleHandler) respondScheduleError(c *gin.Context, err error) {
	var validationErr *validators.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.ValidationFailedResponse(c, validationErr.Reason, validationErr.Field, validationErr.Message)
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, "Schedule")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "SCHEDULE_OPERATION_FAILED", err.Error())
	}
}
