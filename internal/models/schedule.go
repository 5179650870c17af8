package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ScheduleStatus string

const (
	ScheduleStatusPlanned    ScheduleStatus = "PLANNED"
	ScheduleStatusInProgress ScheduleStatus = "IN_PROGRESS"
	ScheduleStatusCompleted  ScheduleStatus = "COMPLETED"
	ScheduleStatusCancelled  ScheduleStatus = "CANCELLED"
)

func (s ScheduleStatus) IsValid() bool {
	switch s {
	case ScheduleStatusPlanned, ScheduleStatusInProgress, ScheduleStatusCompleted, ScheduleStatusCancelled:
		return true
	}
	return false
}

// FlightSchedule is a planned flight event. StartsAt is strictly before
// EndsAt; overlap queries treat the interval as half-open [StartsAt, EndsAt).
type FlightSchedule struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID      primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	Title        string             `json:"title" bson:"title" validate:"required"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	StartsAt     time.Time          `json:"starts_at" bson:"starts_at" validate:"required"`
	EndsAt       time.Time          `json:"ends_at" bson:"ends_at" validate:"required"`
	LocationName string             `json:"location_name,omitempty" bson:"location_name,omitempty"`
	Lat          *float64           `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng          *float64           `json:"lng,omitempty" bson:"lng,omitempty"`
	Status       ScheduleStatus     `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Overlaps reports whether the schedule's interval intersects [from, to).
// Touching boundaries do not overlap.
func (s *FlightSchedule) Overlaps(from, to time.Time) bool {
	return s.EndsAt.After(from) && s.StartsAt.Before(to)
}
