package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skyfence/internal/models"
	"skyfence/internal/repositories/interfaces"
	"skyfence/internal/utils"
)

type scheduleRepository struct {
	collection *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) interfaces.ScheduleRepository {
	return &scheduleRepository{
		collection: db.Collection(utils.SchedulesCollection),
	}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *models.FlightSchedule) error {
	schedule.ID = primitive.NewObjectID()
	now := time.Now()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	if schedule.Status == "" {
		schedule.Status = models.ScheduleStatusPlanned
	}

	_, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FlightSchedule, error) {
	var schedule models.FlightSchedule
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *models.FlightSchedule) error {
	schedule.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": schedule.ID}, schedule)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

// FindOverlapping applies the strict half-open interval predicate:
// ends_at > from and starts_at < to, so intervals that merely touch a bound
// are excluded.
func (r *scheduleRepository) FindOverlapping(ctx context.Context, from, to time.Time, params *utils.PaginationParams) ([]*models.FlightSchedule, int64, error) {
	filter := bson.M{
		"ends_at":   bson.M{"$gt": from},
		"starts_at": bson.M{"$lt": to},
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count schedules: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find overlapping schedules: %w", err)
	}
	defer cursor.Close(ctx)

	schedules := make([]*models.FlightSchedule, 0)
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, 0, fmt.Errorf("failed to decode schedules: %w", err)
	}
	return schedules, total, nil
}
