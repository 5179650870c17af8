package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/models"
	"skyfence/internal/utils"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.FlightSchedule) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FlightSchedule, error)
	Update(ctx context.Context, schedule *models.FlightSchedule) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// FindOverlapping returns schedules whose [starts_at, ends_at) interval
	// intersects [from, to), paginated with a stable ordering.
	FindOverlapping(ctx context.Context, from, to time.Time, params *utils.PaginationParams) ([]*models.FlightSchedule, int64, error)
}
