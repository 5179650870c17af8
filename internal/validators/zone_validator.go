package validators

import (
	"encoding/json"
	"strings"

	"skyfence/internal/geometry"
	"skyfence/internal/models"
	"skyfence/internal/utils"
)

// ZoneRequest carries zone attributes from the wire. Pointer fields tell a
// supplied-but-empty value apart from an omitted one, which is what the
// partial-update semantics need.
type ZoneRequest struct {
	Name          *string         `json:"name"`
	Type          *string         `json:"type"`
	AltitudeLimit *int            `json:"altitude_limit"`
	TimeWindow    *string         `json:"time_window"`
	Boundary      json.RawMessage `json:"boundary"`
}

// ValidateZoneRequest checks the request field by field in a fixed
// precedence: name, type, altitude limit, time window, geometry. On create
// every mandatory field must be present; on update only supplied fields are
// checked. When valid geometry was supplied, the parsed polygon and its
// normalized ring are returned so the caller persists exactly what was
// validated.
func ValidateZoneRequest(req *ZoneRequest, isCreate bool) (*geometry.GeoJSONPolygon, geometry.Ring, *ValidationError) {
	if req == nil {
		return nil, nil, newValidationError(ReasonMalformedInput, "", "request body is required")
	}

	if isCreate || req.Name != nil {
		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			return nil, nil, newValidationError(ReasonNameRequired, "name", "name is required")
		}
	}

	if isCreate || req.Type != nil {
		if req.Type == nil || !models.ZoneType(*req.Type).IsValid() {
			return nil, nil, newValidationError(ReasonInvalidZoneType, "type",
				"type must be one of PROHIBITED, RESTRICTED, CAUTION")
		}
	}

	if req.AltitudeLimit != nil && *req.AltitudeLimit < 0 {
		return nil, nil, newValidationError(ReasonNegativeAltitudeLimit, "altitude_limit",
			"altitude_limit must be 0 or greater")
	}

	if req.TimeWindow != nil && len(*req.TimeWindow) > utils.MaxTimeWindowLength {
		return nil, nil, newValidationError(ReasonTimeWindowTooLong, "time_window",
			"time_window is too long")
	}

	if isCreate || len(req.Boundary) > 0 {
		if len(req.Boundary) == 0 {
			return nil, nil, newValidationError(ReasonMissingGeometry, "boundary",
				"boundary is required")
		}
		polygon, ring, verr := validateBoundary(req.Boundary)
		if verr != nil {
			return nil, nil, verr
		}
		return polygon, ring, nil
	}

	return nil, nil, nil
}

func validateBoundary(raw json.RawMessage) (*geometry.GeoJSONPolygon, geometry.Ring, *ValidationError) {
	polygon, err := geometry.ParsePolygon(raw)
	if err != nil {
		return nil, nil, newValidationError(GeometryReason(err), "boundary", err.Error())
	}
	ring, err := polygon.OuterRing()
	if err != nil {
		return nil, nil, newValidationError(GeometryReason(err), "boundary", err.Error())
	}
	if err := geometry.Validate(ring); err != nil {
		return nil, nil, newValidationError(GeometryReason(err), "boundary", err.Error())
	}
	return polygon, ring, nil
}
