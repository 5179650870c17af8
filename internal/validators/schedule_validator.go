package validators

import (
	"time"

	"skyfence/internal/models"
)

type CreateScheduleRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	StartsAt     *time.Time `json:"starts_at" validate:"required"`
	EndsAt       *time.Time `json:"ends_at" validate:"required"`
	LocationName string     `json:"location_name"`
	Lat          *float64   `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng          *float64   `json:"lng" validate:"omitempty,min=-180,max=180"`
	Status       string     `json:"status"`
}

type UpdateScheduleRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	LocationName *string    `json:"location_name"`
	Lat          *float64   `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng          *float64   `json:"lng" validate:"omitempty,min=-180,max=180"`
	Status       *string    `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func ValidateCreateSchedule(req *CreateScheduleRequest) *ValidationError {
	if req == nil {
		return newValidationError(ReasonMalformedInput, "", "request body is required")
	}
	if err := validate.Struct(req); err != nil {
		if req.Title == "" || req.StartsAt == nil || req.EndsAt == nil {
			return newValidationError(ReasonTitleRequired, "",
				"title, starts_at and ends_at are required")
		}
		return newValidationError(ReasonInvalidCoordinate, "",
			"lat must be within [-90, 90] and lng within [-180, 180]")
	}
	if !req.StartsAt.Before(*req.EndsAt) {
		return newValidationError(ReasonInvalidTimeRange, "starts_at",
			"starts_at must be before ends_at")
	}
	if req.Status != "" && !models.ScheduleStatus(req.Status).IsValid() {
		return newValidationError(ReasonInvalidStatus, "status", "unknown schedule status")
	}
	return nil
}

func ValidateUpdateSchedule(req *UpdateScheduleRequest) *ValidationError {
	if req == nil {
		return newValidationError(ReasonMalformedInput, "", "request body is required")
	}
	if err := validate.Struct(req); err != nil {
		return newValidationError(ReasonInvalidCoordinate, "",
			"lat must be within [-90, 90] and lng within [-180, 180]")
	}
	if req.StartsAt != nil && req.EndsAt != nil && !req.StartsAt.Before(*req.EndsAt) {
		return newValidationError(ReasonInvalidTimeRange, "starts_at",
			"starts_at must be before ends_at")
	}
	if req.Status != nil && !models.ScheduleStatus(*req.Status).IsValid() {
		return newValidationError(ReasonInvalidStatus, "status", "unknown schedule status")
	}
	return nil
}

// ValidateTimeRange guards overlap queries: both bounds present and strictly
// ordered. Misordered bounds are a validation failure, not an empty result.
func ValidateTimeRange(from, to time.Time) *ValidationError {
	if from.IsZero() || to.IsZero() {
		return newValidationError(ReasonInvalidTimeRange, "", "from and to are required")
	}
	if !from.Before(to) {
		return newValidationError(ReasonInvalidTimeRange, "", "from must be before to")
	}
	return nil
}
