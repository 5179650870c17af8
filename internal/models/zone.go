package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/geometry"
)

type ZoneType string

const (
	ZoneTypeProhibited ZoneType = "PROHIBITED"
	ZoneTypeRestricted ZoneType = "RESTRICTED"
	ZoneTypeCaution    ZoneType = "CAUTION"
)

func (t ZoneType) IsValid() bool {
	switch t {
	case ZoneTypeProhibited, ZoneTypeRestricted, ZoneTypeCaution:
		return true
	}
	return false
}

// Zone is a persisted restricted-airspace boundary. Its boundary has always
// passed the simple-polygon check before reaching storage; zones are
// independent of each other and may overlap.
type Zone struct {
	ID            primitive.ObjectID      `json:"id" bson:"_id,omitempty"`
	Name          string                  `json:"name" bson:"name" validate:"required"`
	Type          ZoneType                `json:"type" bson:"type" validate:"required"`
	AltitudeLimit *int                    `json:"altitude_limit,omitempty" bson:"altitude_limit,omitempty"` // meters
	TimeWindow    string                  `json:"time_window,omitempty" bson:"time_window,omitempty"`
	Boundary      geometry.GeoJSONPolygon `json:"boundary" bson:"boundary" validate:"required"`
	CreatedAt     time.Time               `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at" bson:"updated_at"`
}
