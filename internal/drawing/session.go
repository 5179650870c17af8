// Package drawing holds the interaction state of one polygon drawing or
// editing surface. The session annotates the in-progress ring with a live
// verdict after every mutation but never blocks editing: an invalid ring is
// only rejected at submit time, by the same checks the server runs.
package drawing

import (
	"errors"

	"skyfence/internal/geometry"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "drawing"
	case ModeEditing:
		return "editing"
	default:
		return "idle"
	}
}

var (
	ErrInvalidTransition = errors.New("not allowed in the current mode")
	ErrNoSuchVertex      = errors.New("vertex index out of range")
	ErrMissingGeometry   = errors.New("no geometry has been drawn")
)

// Session is a single-user interaction state machine. It is not safe for
// concurrent use; each connection owns its own session.
type Session struct {
	mode         Mode
	points       []geometry.Point
	mapSuspended bool
	verdict      error
}

func NewSession() *Session {
	return &Session{mode: ModeIdle}
}

func (s *Session) Mode() Mode { return s.mode }

// MapInteractionEnabled reports whether pan/zoom/keyboard handlers are
// active. Drawing a brand-new ring suspends them so clicks are unambiguously
// vertex placements; editing drags existing vertices and leaves them on.
func (s *Session) MapInteractionEnabled() bool { return !s.mapSuspended }

// Verdict returns the result of the latest live validation: nil for a valid
// ring, ErrMissingGeometry for an empty one, otherwise a geometry error.
func (s *Session) Verdict() error { return s.verdict }

// Points returns a copy of the in-progress ring.
func (s *Session) Points() []geometry.Point {
	out := make([]geometry.Point, len(s.points))
	copy(out, s.points)
	return out
}

// StartDrawing begins a brand-new ring. Map interaction is suspended until
// the ring is completed or cancelled.
func (s *Session) StartDrawing() error {
	if s.mode != ModeIdle {
		return ErrInvalidTransition
	}
	s.mode = ModeDrawing
	s.mapSuspended = true
	s.points = nil
	s.revalidate()
	return nil
}

// EditRing loads an existing zone's ring onto the surface for vertex-drag
// editing. Map interaction stays enabled.
func (s *Session) EditRing(ring geometry.Ring) error {
	if s.mode != ModeIdle {
		return ErrInvalidTransition
	}
	s.mode = ModeEditing
	s.points = make([]geometry.Point, len(ring))
	copy(s.points, ring)
	s.revalidate()
	return nil
}

func (s *Session) PlaceVertex(p geometry.Point) error {
	if s.mode == ModeIdle {
		return ErrInvalidTransition
	}
	s.points = append(s.points, p)
	s.revalidate()
	return nil
}

func (s *Session) MoveVertex(index int, p geometry.Point) error {
	if s.mode == ModeIdle {
		return ErrInvalidTransition
	}
	if index < 0 || index >= len(s.points) {
		return ErrNoSuchVertex
	}
	s.points[index] = p
	s.revalidate()
	return nil
}

func (s *Session) DeleteVertex(index int) error {
	if s.mode == ModeIdle {
		return ErrInvalidTransition
	}
	if index < 0 || index >= len(s.points) {
		return ErrNoSuchVertex
	}
	s.points = append(s.points[:index], s.points[index+1:]...)
	s.revalidate()
	return nil
}

// Complete finishes the session and returns the final ring for submission.
// The submit-time verdict distinguishes "nothing drawn" from a simple-polygon
// failure; either way the session returns to idle and resumes map
// interaction, leaving rejection to the authoritative server check.
func (s *Session) Complete() (geometry.Ring, error) {
	if s.mode == ModeIdle {
		return nil, ErrInvalidTransition
	}
	ring, verdict := s.currentRing()
	s.reset()
	if verdict != nil {
		return nil, verdict
	}
	return ring, nil
}

// Cancel discards the in-progress ring and returns to idle.
func (s *Session) Cancel() {
	s.reset()
}

// CloseForm discards all drawing and editing artifacts from any state; no
// partial state leaks into the next session.
func (s *Session) CloseForm() {
	s.reset()
}

func (s *Session) reset() {
	s.mode = ModeIdle
	s.mapSuspended = false
	s.points = nil
	s.verdict = nil
}

func (s *Session) revalidate() {
	_, s.verdict = s.currentRing()
}

func (s *Session) currentRing() (geometry.Ring, error) {
	if len(s.points) == 0 {
		return nil, ErrMissingGeometry
	}
	raw := make([][]float64, len(s.points))
	for i, p := range s.points {
		raw[i] = []float64{p.Lng, p.Lat}
	}
	ring, err := geometry.NormalizeRing(raw)
	if err != nil {
		return nil, err
	}
	if err := geometry.Validate(ring); err != nil {
		return nil, err
	}
	return ring, nil
}
