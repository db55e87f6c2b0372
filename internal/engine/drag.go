package engine

import (
	"math"

	"github.com/piwi3910/ContainerPlan/internal/model"
)

// DragSession tracks a continuous pointer drag of one wall. It acts as a
// ratchet: every intermediate position is clamped into the interior and
// rejected positions roll back to the last valid one, so an invalid state is
// never presented. Nothing is committed until Release.
type DragSession struct {
	index     int
	wall      model.Wall
	others    []model.Wall
	bounds    model.Bounds
	lastValid model.Point
	moves     int
	rejected  int
}

// NewDragSession starts a drag of wall (stored at index) against the other
// walls of the layout. The starting position counts as valid.
func NewDragSession(index int, wall model.Wall, others []model.Wall, bounds model.Bounds) *DragSession {
	return &DragSession{
		index:     index,
		wall:      wall,
		others:    append([]model.Wall(nil), others...),
		bounds:    bounds,
		lastValid: model.Point{X: wall.X, Y: wall.Y},
	}
}

// Index returns the list index of the dragged wall.
func (s *DragSession) Index() int { return s.index }

// LastValid returns the most recent accepted continuous position.
func (s *DragSession) LastValid() model.Point { return s.lastValid }

// Stats returns how many updates were received and how many were rolled back.
func (s *DragSession) Stats() (moves, rejected int) { return s.moves, s.rejected }

// Move feeds one pointer update and returns the position to present.
func (s *DragSession) Move(p model.Point) model.Point {
	s.moves++
	w, d := s.wall.Dimensions()
	clamped := s.bounds.Clamp(p, w, d)
	if !s.valid(clamped) {
		s.rejected++
		return s.lastValid
	}
	s.lastValid = clamped
	return clamped
}

// Release snaps the last valid position to the nearest grid coordinate,
// clamps it into the interior again and re-validates it. When the snapped
// position is blocked the last valid continuous position is used instead.
// The boolean is false only when neither position validates, in which case
// the caller must not commit anything.
func (s *DragSession) Release() (model.Point, bool) {
	w, d := s.wall.Dimensions()
	snapped := s.bounds.Clamp(model.Point{
		X: math.Round(s.lastValid.X),
		Y: math.Round(s.lastValid.Y),
	}, w, d)
	if s.valid(snapped) {
		return snapped, true
	}
	if s.valid(s.lastValid) {
		return s.lastValid, true
	}
	return model.Point{X: s.wall.X, Y: s.wall.Y}, false
}

// Candidate returns the dragged wall moved to p.
func (s *DragSession) Candidate(p model.Point) model.Wall {
	c := s.wall
	c.X = p.X
	c.Y = p.Y
	return c
}

func (s *DragSession) valid(p model.Point) bool {
	return ValidateWall(s.Candidate(p), s.others, s.bounds)
}
