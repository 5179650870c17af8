// Package geometry implements planar polygon validation for zone boundaries.
// Every function is pure and total: malformed input produces an error value,
// never a panic, and the same input always yields the same verdict.
package geometry

import (
	"errors"
	"math"
)

// Epsilon is the single tolerance applied everywhere: point coincidence,
// orientation collinearity and on-segment containment. Degrees.
const Epsilon = 1e-9

type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Ring is a closed loop of at least three distinct points, stored without a
// duplicated closing vertex.
type Ring []Point

var (
	ErrMalformedCoordinate = errors.New("coordinate must be a finite [lng, lat] pair")
	ErrTooFewPoints        = errors.New("ring needs at least 3 distinct points")
	ErrDuplicatePoint      = errors.New("ring contains coincident points")
	ErrZeroArea            = errors.New("ring is collinear or has zero area")
	ErrSelfIntersecting    = errors.New("ring edges cross each other")
)

func samePoint(a, b Point) bool {
	return math.Abs(a.Lng-b.Lng) < Epsilon && math.Abs(a.Lat-b.Lat) < Epsilon
}

// NormalizeRing converts raw [lng, lat] pairs into a Ring. A trailing point
// that coincides with the first is dropped. Rejects non-finite coordinates,
// wrong arity, fewer than three remaining points and coincident points at any
// pair of indices (the last also catches back-and-forth spikes).
func NormalizeRing(raw [][]float64) (Ring, error) {
	ring := make(Ring, 0, len(raw))
	for _, coord := range raw {
		if len(coord) != 2 {
			return nil, ErrMalformedCoordinate
		}
		lng, lat := coord[0], coord[1]
		if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
			return nil, ErrMalformedCoordinate
		}
		ring = append(ring, Point{Lng: lng, Lat: lat})
	}

	if len(ring) > 1 && samePoint(ring[0], ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, ErrTooFewPoints
	}
	for i := 0; i < len(ring); i++ {
		for j := i + 1; j < len(ring); j++ {
			if samePoint(ring[i], ring[j]) {
				return nil, ErrDuplicatePoint
			}
		}
	}
	return ring, nil
}

// SignedArea returns the shoelace-formula area of the ring. Positive for a
// counter-clockwise winding, negative for clockwise, near zero for a
// degenerate (collinear) ring.
func SignedArea(ring Ring) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		sum += a.Lng*b.Lat - b.Lng*a.Lat
	}
	return sum / 2
}

// Orientation reports the turning direction of the triple (a, b, c):
// 0 when collinear within Epsilon, +1 counter-clockwise, -1 clockwise.
func Orientation(a, b, c Point) int {
	cross := (b.Lng-a.Lng)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lng-a.Lng)
	if math.Abs(cross) < Epsilon {
		return 0
	}
	if cross > 0 {
		return 1
	}
	return -1
}

// onSegment reports whether c lies inside the bounding box of segment ab,
// with Epsilon slack. Only meaningful when c is collinear with ab.
func onSegment(a, b, c Point) bool {
	return c.Lng <= math.Max(a.Lng, b.Lng)+Epsilon &&
		c.Lng+Epsilon >= math.Min(a.Lng, b.Lng) &&
		c.Lat <= math.Max(a.Lat, b.Lat)+Epsilon &&
		c.Lat+Epsilon >= math.Min(a.Lat, b.Lat)
}

// SegmentsIntersect reports whether segments p1-p2 and q1-q2 cross or touch.
// Touching counts as intersecting: boundary self-tangency is disallowed.
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	o1 := Orientation(p1, p2, q1)
	o2 := Orientation(p1, p2, q2)
	o3 := Orientation(q1, q2, p1)
	o4 := Orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	if o3 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	return false
}

// Validate checks that the ring is a simple polygon: non-zero area and no
// pair of non-adjacent edges intersecting. Adjacent edges share a vertex and
// are excluded, as is the first/last edge pair which shares the closing
// vertex. O(n²), fine for human-drawn rings.
func Validate(ring Ring) error {
	n := len(ring)
	if n < 3 {
		return ErrTooFewPoints
	}
	if math.Abs(SignedArea(ring)) < Epsilon {
		return ErrZeroArea
	}
	for i := 0; i < n; i++ {
		p1 := ring[i]
		p2 := ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 {
				continue
			}
			if i == 0 && j == n-1 {
				continue
			}
			q1 := ring[j]
			q2 := ring[(j+1)%n]
			if SegmentsIntersect(p1, p2, q1, q2) {
				return ErrSelfIntersecting
			}
		}
	}
	return nil
}

// IsSimple is Validate without the reason.
func IsSimple(ring Ring) bool {
	return Validate(ring) == nil
}
