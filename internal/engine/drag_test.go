package engine

import (
	"testing"

	"github.com/piwi3910/ContainerPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragSession_ClampsIntoInterior(t *testing.T) {
	s := NewDragSession(0, testWall(0.5, 4.1, 4), nil, fortyFootFoam())

	got := s.Move(model.Point{X: -3, Y: -3})
	assert.Equal(t, model.Point{X: 0.5, Y: 0.5}, got)

	got = s.Move(model.Point{X: 100, Y: 100})
	assert.Equal(t, 7.5, got.X)
	assert.InDelta(t, 4.1, got.Y, 1e-9)
	assert.Equal(t, got, s.LastValid())
}

func TestDragSession_RollsBackOnOverlap(t *testing.T) {
	others := []model.Wall{testWall(6.5, 4.1, 4)}
	s := NewDragSession(0, testWall(0.5, 4.1, 4), others, fortyFootFoam())

	got := s.Move(model.Point{X: 2.3, Y: 4.1})
	assert.Equal(t, model.Point{X: 2.3, Y: 4.1}, got)

	got = s.Move(model.Point{X: 5, Y: 4.1})
	assert.Equal(t, model.Point{X: 2.3, Y: 4.1}, got, "blocked update presents the last valid position")
	assert.Equal(t, model.Point{X: 2.3, Y: 4.1}, s.LastValid())

	moves, rejected := s.Stats()
	assert.Equal(t, 2, moves)
	assert.Equal(t, 1, rejected)
}

func TestDragSession_ReleaseSnapsToGrid(t *testing.T) {
	s := NewDragSession(3, testWall(0.5, 4.1, 4), nil, fortyFootFoam())
	s.Move(model.Point{X: 2.3, Y: 1.2})

	p, ok := s.Release()
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 2, Y: 1}, p)
	assert.Equal(t, 3, s.Index())
}

func TestDragSession_ReleaseClampsAfterSnap(t *testing.T) {
	s := NewDragSession(0, testWall(0.5, 4.1, 4), nil, fortyFootFoam())
	s.Move(model.Point{X: 7.5, Y: 0.5})

	p, ok := s.Release()
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 7.5, Y: 1}, p, "rounding 7.5 up would leave the interior")
}

func TestDragSession_ReleaseFallsBackToLastValid(t *testing.T) {
	others := []model.Wall{testWall(6.6, 4.1, 4)}
	s := NewDragSession(0, testWall(0.5, 4.1, 4), others, fortyFootFoam())
	s.Move(model.Point{X: 2.6, Y: 4.1})

	p, ok := s.Release()
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 2.6, Y: 4.1}, p, "snapped position overlaps the neighbour")
}

func TestDragSession_ReleaseFailsWhenNothingValid(t *testing.T) {
	start := testWall(0.5, 4.1, 4)
	others := []model.Wall{testWall(2.5, 4.1, 4)}
	s := NewDragSession(0, start, others, fortyFootFoam())

	p, ok := s.Release()
	assert.False(t, ok)
	assert.Equal(t, model.Point{X: start.X, Y: start.Y}, p)
}

func TestDragSession_CandidateKeepsShape(t *testing.T) {
	w := testWall(0.5, 4.1, 3)
	w.Orientation = model.OrientationY
	s := NewDragSession(0, w, nil, fortyFootFoam())

	c := s.Candidate(model.Point{X: 2, Y: 1})
	assert.Equal(t, 3.0, c.Length)
	assert.Equal(t, model.OrientationY, c.Orientation)
	assert.Equal(t, 2.0, c.X)
	assert.Equal(t, w, s.Candidate(model.Point{X: w.X, Y: w.Y}), "the dragged wall itself is not modified")
}
