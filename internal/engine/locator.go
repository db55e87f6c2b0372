// Package engine implements the placement rules of the planner: the
// first-fit free-space search for new objects and the validated mutation of
// partition walls.
package engine

import (
	"math"

	"github.com/piwi3910/ContainerPlan/internal/model"
)

// FindItemSpot scans row-major from the top-left corner of the interior in
// one grid unit steps and returns the first origin where a w x d footprint
// fits and overlaps none of existing. The same occupancy always yields the
// same spot.
func FindItemSpot(w, d float64, existing []model.Box, bounds model.Bounds) (float64, float64, bool) {
	for y := bounds.MinY; y <= bounds.MaxY-d+epsilon; y++ {
		for x := bounds.MinX; x <= bounds.MaxX-w+epsilon; x++ {
			candidate := model.Box{X: x, Y: y, W: w, D: d}
			if model.Fits(candidate, bounds) && !model.OverlapsAny(candidate, existing) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// FindStructureSpot is the one-dimensional analogue of FindItemSpot used for
// walls and windows: it scans x ascending at the fixed line y.
func FindStructureSpot(w, d, y float64, existing []model.Box, bounds model.Bounds) (float64, bool) {
	for x := bounds.MinX; x <= bounds.MaxX-w+epsilon; x++ {
		candidate := model.Box{X: x, Y: y, W: w, D: d}
		if model.Fits(candidate, bounds) && !model.OverlapsAny(candidate, existing) {
			return x, true
		}
	}
	return 0, false
}

// StructureLine returns the y coordinate of the back wall line where new
// walls and windows are placed: flush against the far insulation inset, but
// never in front of the near one.
func StructureLine(c model.Container, thickness, depth float64) float64 {
	return math.Max(thickness, float64(c.Width)-thickness-depth)
}

// epsilon matches the evaluator tolerance so scan limits computed from
// fractional insets are not cut one step short.
const epsilon = 1e-9
