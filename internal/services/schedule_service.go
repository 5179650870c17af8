package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/models"
	"skyfence/internal/repositories/interfaces"
	"skyfence/internal/utils"
	"skyfence/internal/validators"
	"skyfence/pkg/logger"
)

// ErrForbidden reports a modification attempt by someone who is neither the
// schedule's owner nor an admin.
var ErrForbidden = errors.New("not allowed to modify this schedule")

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID   primitive.ObjectID
	UserType string
}

func (a Actor) canModify(schedule *models.FlightSchedule) bool {
	return a.UserType == "admin" || schedule.OwnerID == a.UserID
}

type ScheduleService interface {
	// ListOverlapping returns schedules intersecting [from, to), paginated.
	ListOverlapping(ctx context.Context, from, to time.Time, params *utils.PaginationParams) ([]*models.FlightSchedule, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FlightSchedule, error)
	Create(ctx context.Context, owner primitive.ObjectID, req *validators.CreateScheduleRequest) (*models.FlightSchedule, error)
	Update(ctx context.Context, id primitive.ObjectID, actor Actor, req *validators.UpdateScheduleRequest) (*models.FlightSchedule, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, actor Actor, status models.ScheduleStatus) (*models.FlightSchedule, error)
	Delete(ctx context.Context, id primitive.ObjectID, actor Actor) error
}

type scheduleService struct {
	scheduleRepo interfaces.ScheduleRepository
	logger       *logger.Logger
}

func NewScheduleService(scheduleRepo interfaces.ScheduleRepository, log *logger.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		logger:       log,
	}
}

func (s *scheduleService) ListOverlapping(ctx context.Context, from, to time.Time, params *utils.PaginationParams) ([]*models.FlightSchedule, int64, error) {
	if verr := validators.ValidateTimeRange(from, to); verr != nil {
		return nil, 0, verr
	}
	return s.scheduleRepo.FindOverlapping(ctx, from, to, params)
}

func (s *scheduleService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FlightSchedule, error) {
	return s.scheduleRepo.GetByID(ctx, id)
}

func (s *scheduleService) Create(ctx context.Context, owner primitive.ObjectID, req *validators.CreateScheduleRequest) (*models.FlightSchedule, error) {
	if verr := validators.ValidateCreateSchedule(req); verr != nil {
		s.logger.LogValidationFailure(verr.Reason, verr.Field, verr.Message)
		return nil, verr
	}

	schedule := &models.FlightSchedule{
		OwnerID:      owner,
		Title:        req.Title,
		Description:  req.Description,
		StartsAt:     *req.StartsAt,
		EndsAt:       *req.EndsAt,
		LocationName: req.LocationName,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Status:       models.ScheduleStatusPlanned,
	}
	if req.Status != "" {
		schedule.Status = models.ScheduleStatus(req.Status)
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) Update(ctx context.Context, id primitive.ObjectID, actor Actor, req *validators.UpdateScheduleRequest) (*models.FlightSchedule, error) {
	if verr := validators.ValidateUpdateSchedule(req); verr != nil {
		return nil, verr
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canModify(schedule) {
		return nil, ErrForbidden
	}

	merged := *schedule
	if req.Title != nil && *req.Title != "" {
		merged.Title = *req.Title
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.StartsAt != nil {
		merged.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		merged.EndsAt = *req.EndsAt
	}
	if req.LocationName != nil {
		merged.LocationName = *req.LocationName
	}
	if req.Lat != nil {
		merged.Lat = req.Lat
	}
	if req.Lng != nil {
		merged.Lng = req.Lng
	}
	if req.Status != nil {
		merged.Status = models.ScheduleStatus(*req.Status)
	}

	if verr := validators.ValidateTimeRange(merged.StartsAt, merged.EndsAt); verr != nil {
		return nil, verr
	}

	if err := s.scheduleRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *scheduleService) UpdateStatus(ctx context.Context, id primitive.ObjectID, actor Actor, status models.ScheduleStatus) (*models.FlightSchedule, error) {
	if !status.IsValid() {
		return nil, &validators.ValidationError{
			Reason:  validators.ReasonInvalidStatus,
			Field:   "status",
			Message: "unknown schedule status",
		}
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canModify(schedule) {
		return nil, ErrForbidden
	}

	schedule.Status = status
	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) Delete(ctx context.Context, id primitive.ObjectID, actor Actor) error {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canModify(schedule) {
		return ErrForbidden
	}
	return s.scheduleRepo.Delete(ctx, id)
}
