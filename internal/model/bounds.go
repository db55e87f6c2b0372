package model

import "math"

// epsilon absorbs float noise from fractional insets such as 5 - 0.5 - 0.4.
const epsilon = 1e-9

// Bounds is the usable interior rectangle of a container after insulation.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// InteriorBounds insets the container footprint by the insulation thickness
// on all four sides. A container narrower than 2t yields MinX > MaxX, which
// makes every placement infeasible.
func InteriorBounds(c Container, thickness float64) Bounds {
	return Bounds{
		MinX: thickness,
		MinY: thickness,
		MaxX: float64(c.Length) - thickness,
		MaxY: float64(c.Width) - thickness,
	}
}

// Overlaps reports whether two footprints share interior area. Boxes that
// only touch along an edge do not overlap.
func Overlaps(a, b Box) bool {
	xOverlap := a.X < b.Right()-epsilon && a.Right() > b.X+epsilon
	yOverlap := a.Y < b.Far()-epsilon && a.Far() > b.Y+epsilon
	return xOverlap && yOverlap
}

// Fits reports whether the footprint lies entirely inside bounds.
func Fits(b Box, bounds Bounds) bool {
	return b.X >= bounds.MinX-epsilon &&
		b.Y >= bounds.MinY-epsilon &&
		b.Right() <= bounds.MaxX+epsilon &&
		b.Far() <= bounds.MaxY+epsilon
}

// OverlapsAny reports whether b overlaps any footprint in others.
func OverlapsAny(b Box, others []Box) bool {
	for _, o := range others {
		if Overlaps(b, o) {
			return true
		}
	}
	return false
}

// Clamp moves the footprint origin so that a box of size w x d lies inside
// bounds, keeping it pinned to the minimum edge when it cannot fit at all.
func (bounds Bounds) Clamp(p Point, w, d float64) Point {
	return Point{
		X: clamp(p.X, bounds.MinX, bounds.MaxX-w),
		Y: clamp(p.Y, bounds.MinY, bounds.MaxY-d),
	}
}

// Width returns the usable extent along the container length.
func (bounds Bounds) Width() float64 { return bounds.MaxX - bounds.MinX }

// Depth returns the usable extent along the container depth.
func (bounds Bounds) Depth() float64 { return bounds.MaxY - bounds.MinY }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
