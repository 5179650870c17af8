package geometry

import (
	"encoding/json"
	"errors"
	"strings"
)

// GeoJSON subset accepted for zone boundaries: a Polygon with exactly one
// ring, optionally wrapped in a Feature. Holes are rejected, not dropped.

var (
	ErrInvalidGeoJSON   = errors.New("boundary must be valid GeoJSON")
	ErrNotPolygon       = errors.New("boundary must be a Polygon geometry")
	ErrMissingRing      = errors.New("polygon coordinates are missing")
	ErrHolesUnsupported = errors.New("polygons with holes are not supported")
)

type GeoJSONPolygon struct {
	Type        string        `json:"type" bson:"type"`
	Coordinates [][][]float64 `json:"coordinates" bson:"coordinates"`
}

type geoJSONFeature struct {
	Type     string          `json:"type"`
	Geometry json.RawMessage `json:"geometry"`
}

// ParsePolygon decodes the wire boundary into a GeoJSONPolygon, transparently
// unwrapping a Feature envelope. Structural checks only; ring-level rules are
// NormalizeRing's job.
func ParsePolygon(raw []byte) (*GeoJSONPolygon, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, ErrInvalidGeoJSON
	}

	if strings.EqualFold(probe.Type, "Feature") {
		var feature geoJSONFeature
		if err := json.Unmarshal(raw, &feature); err != nil || len(feature.Geometry) == 0 {
			return nil, ErrInvalidGeoJSON
		}
		raw = feature.Geometry
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, ErrInvalidGeoJSON
		}
	}

	if !strings.EqualFold(probe.Type, "Polygon") {
		return nil, ErrNotPolygon
	}

	var polygon GeoJSONPolygon
	if err := json.Unmarshal(raw, &polygon); err != nil {
		return nil, ErrInvalidGeoJSON
	}
	if len(polygon.Coordinates) == 0 {
		return nil, ErrMissingRing
	}
	if len(polygon.Coordinates) > 1 {
		return nil, ErrHolesUnsupported
	}
	return &polygon, nil
}

// OuterRing normalizes the polygon's single ring.
func (p *GeoJSONPolygon) OuterRing() (Ring, error) {
	if len(p.Coordinates) == 0 {
		return nil, ErrMissingRing
	}
	return NormalizeRing(p.Coordinates[0])
}
