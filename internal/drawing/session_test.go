package drawing

import (
	"errors"
	"testing"

	"skyfence/internal/geometry"
)

func square() []geometry.Point {
	return []geometry.Point{
		{Lng: 0, Lat: 0},
		{Lng: 2, Lat: 0},
		{Lng: 2, Lat: 2},
		{Lng: 0, Lat: 2},
	}
}

func TestSession_DrawingSuspendsMapInteraction(t *testing.T) {
	s := NewSession()
	if !s.MapInteractionEnabled() {
		t.Fatal("idle session must leave map interaction enabled")
	}

	if err := s.StartDrawing(); err != nil {
		t.Fatalf("StartDrawing failed: %v", err)
	}
	if s.Mode() != ModeDrawing {
		t.Fatalf("expected drawing mode, got %s", s.Mode())
	}
	if s.MapInteractionEnabled() {
		t.Fatal("drawing must suspend map interaction")
	}

	for _, p := range square() {
		if err := s.PlaceVertex(p); err != nil {
			t.Fatalf("PlaceVertex failed: %v", err)
		}
	}
	ring, err := s.Complete()
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if len(ring) != 4 {
		t.Fatalf("expected 4-point ring, got %d", len(ring))
	}
	if s.Mode() != ModeIdle || !s.MapInteractionEnabled() {
		t.Fatal("completing must return to idle and resume map interaction")
	}
}

func TestSession_EditingKeepsMapInteraction(t *testing.T) {
	s := NewSession()
	ring, err := geometry.NormalizeRing([][]float64{{0, 0}, {2, 0}, {2, 2}, {0, 2}})
	if err != nil {
		t.Fatalf("NormalizeRing failed: %v", err)
	}

	if err := s.EditRing(ring); err != nil {
		t.Fatalf("EditRing failed: %v", err)
	}
	if s.Mode() != ModeEditing {
		t.Fatalf("expected editing mode, got %s", s.Mode())
	}
	if !s.MapInteractionEnabled() {
		t.Fatal("editing drags existing vertices and must not suspend the map")
	}
	if s.Verdict() != nil {
		t.Fatalf("loaded stored ring should be valid, got %v", s.Verdict())
	}
}

func TestSession_GuardedTransitions(t *testing.T) {
	s := NewSession()
	if err := s.PlaceVertex(geometry.Point{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("vertex placement while idle must fail, got %v", err)
	}

	if err := s.StartDrawing(); err != nil {
		t.Fatalf("StartDrawing failed: %v", err)
	}
	if err := s.StartDrawing(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double start must fail, got %v", err)
	}
	if err := s.EditRing(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("edit while drawing must fail, got %v", err)
	}
}

func TestSession_LiveValidationAnnotatesWithoutBlocking(t *testing.T) {
	s := NewSession()
	if err := s.StartDrawing(); err != nil {
		t.Fatalf("StartDrawing failed: %v", err)
	}

	// Bowtie: the ring is invalid mid-edit but editing continues.
	for _, p := range []geometry.Point{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 1}, {Lng: 1, Lat: 0}, {Lng: 0, Lat: 1}} {
		if err := s.PlaceVertex(p); err != nil {
			t.Fatalf("PlaceVertex failed: %v", err)
		}
	}
	if !errors.Is(s.Verdict(), geometry.ErrSelfIntersecting) {
		t.Fatalf("expected live self-intersection verdict, got %v", s.Verdict())
	}

	// Untangle the bowtie by swapping two vertices.
	if err := s.MoveVertex(2, geometry.Point{Lng: 0, Lat: 1}); err != nil {
		t.Fatalf("MoveVertex failed: %v", err)
	}
	if err := s.MoveVertex(3, geometry.Point{Lng: 1, Lat: 0}); err != nil {
		t.Fatalf("MoveVertex failed: %v", err)
	}
	if s.Verdict() == nil {
		t.Fatal("expected transient verdict while vertices still coincide or cross")
	}
	if err := s.MoveVertex(3, geometry.Point{Lng: -1, Lat: 0.5}); err != nil {
		t.Fatalf("MoveVertex failed: %v", err)
	}
	if s.Verdict() != nil {
		t.Fatalf("untangled ring should validate, got %v", s.Verdict())
	}
}

func TestSession_DeleteAllVerticesReportsMissingGeometry(t *testing.T) {
	s := NewSession()
	ring, err := geometry.NormalizeRing([][]float64{{0, 0}, {2, 0}, {2, 2}, {0, 2}})
	if err != nil {
		t.Fatalf("NormalizeRing failed: %v", err)
	}
	if err := s.EditRing(ring); err != nil {
		t.Fatalf("EditRing failed: %v", err)
	}

	for i := 3; i >= 0; i-- {
		if err := s.DeleteVertex(i); err != nil {
			t.Fatalf("DeleteVertex(%d) failed: %v", i, err)
		}
	}
	if !errors.Is(s.Verdict(), ErrMissingGeometry) {
		t.Fatalf("empty geometry must report ErrMissingGeometry, got %v", s.Verdict())
	}

	// Submit-time failure is "missing geometry", not a simple-polygon error.
	if _, err := s.Complete(); !errors.Is(err, ErrMissingGeometry) {
		t.Fatalf("expected ErrMissingGeometry at completion, got %v", err)
	}
}

func TestSession_CloseFormDiscardsState(t *testing.T) {
	s := NewSession()
	if err := s.StartDrawing(); err != nil {
		t.Fatalf("StartDrawing failed: %v", err)
	}
	if err := s.PlaceVertex(geometry.Point{Lng: 1, Lat: 1}); err != nil {
		t.Fatalf("PlaceVertex failed: %v", err)
	}

	s.CloseForm()
	if s.Mode() != ModeIdle {
		t.Fatalf("expected idle after close, got %s", s.Mode())
	}
	if len(s.Points()) != 0 {
		t.Fatal("closing the form must discard drawn vertices")
	}
	if !s.MapInteractionEnabled() {
		t.Fatal("closing the form must resume map interaction")
	}
	if s.Verdict() != nil {
		t.Fatalf("no verdict must survive the session, got %v", s.Verdict())
	}
}

func TestSession_CancelWhileDrawing(t *testing.T) {
	s := NewSession()
	if err := s.StartDrawing(); err != nil {
		t.Fatalf("StartDrawing failed: %v", err)
	}
	s.Cancel()
	if s.Mode() != ModeIdle || !s.MapInteractionEnabled() {
		t.Fatal("cancel must return to idle and resume map interaction")
	}
	if err := s.StartDrawing(); err != nil {
		t.Fatalf("session must be reusable after cancel: %v", err)
	}
}
