package validators

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"skyfence/internal/geometry"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Wire-stable reason codes. Validation failures and not-found are distinct
// outcomes and must never be conflated.
const (
	ReasonNameRequired          = "NAME_REQUIRED"
	ReasonInvalidZoneType       = "INVALID_ZONE_TYPE"
	ReasonNegativeAltitudeLimit = "NEGATIVE_ALTITUDE_LIMIT"
	ReasonTimeWindowTooLong     = "TIME_WINDOW_TOO_LONG"
	ReasonMissingGeometry       = "MISSING_GEOMETRY"
	ReasonMalformedInput        = "MALFORMED_INPUT"
	ReasonDegenerateGeometry    = "DEGENERATE_GEOMETRY"
	ReasonSelfIntersecting      = "SELF_INTERSECTING_GEOMETRY"
	ReasonInvalidTimeRange      = "INVALID_TIME_RANGE"
	ReasonInvalidStatus         = "INVALID_STATUS"
	ReasonInvalidCoordinate     = "INVALID_COORDINATE"
	ReasonTitleRequired         = "TITLE_REQUIRED"
)

// ValidationError is a single terminal validation failure. Checks run in a
// fixed precedence and the first failure wins, so one reason is always
// enough for the caller to render a specific message.
type ValidationError struct {
	Reason  string `json:"reason"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func newValidationError(reason, field, message string) *ValidationError {
	return &ValidationError{Reason: reason, Field: field, Message: message}
}

// GeometryReason maps a geometry package error onto the error taxonomy:
// structural problems are malformed input, too few distinct points or zero
// area are degenerate geometry, edge crossings are self-intersections.
func GeometryReason(err error) string {
	switch {
	case errors.Is(err, geometry.ErrSelfIntersecting):
		return ReasonSelfIntersecting
	case errors.Is(err, geometry.ErrTooFewPoints),
		errors.Is(err, geometry.ErrDuplicatePoint),
		errors.Is(err, geometry.ErrZeroArea):
		return ReasonDegenerateGeometry
	default:
		return ReasonMalformedInput
	}
}
