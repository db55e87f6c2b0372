package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/ContainerPlan/internal/model"
)

// NudgeOp is a discrete keyboard edit of the selected wall.
type NudgeOp string

const (
	NudgeLeft   NudgeOp = "left"   // x - 1
	NudgeRight  NudgeOp = "right"  // x + 1
	NudgeUp     NudgeOp = "up"     // y - 1
	NudgeDown   NudgeOp = "down"   // y + 1
	NudgeRotate NudgeOp = "rotate" // Toggle orientation
	NudgeGrow   NudgeOp = "grow"   // length + 1
	NudgeShrink NudgeOp = "shrink" // length - 1, floored at 1
)

// NudgeOps lists every operation in display order.
var NudgeOps = []NudgeOp{NudgeLeft, NudgeRight, NudgeUp, NudgeDown, NudgeRotate, NudgeGrow, NudgeShrink}

// ParseNudgeOp converts a case-insensitive name into a NudgeOp.
func ParseNudgeOp(s string) (NudgeOp, error) {
	op := NudgeOp(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range NudgeOps {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown nudge operation %q", s)
}

// minWallLength is the floor applied by shrink.
const minWallLength = 1

// ApplyNudge returns a full candidate copy of w with op applied. The input
// is never modified.
func ApplyNudge(w model.Wall, op NudgeOp) (model.Wall, error) {
	candidate := w
	switch op {
	case NudgeLeft:
		candidate.X--
	case NudgeRight:
		candidate.X++
	case NudgeUp:
		candidate.Y--
	case NudgeDown:
		candidate.Y++
	case NudgeRotate:
		candidate.Orientation = w.Orientation.Toggle()
	case NudgeGrow:
		candidate.Length++
	case NudgeShrink:
		candidate.Length = math.Max(minWallLength, w.Length-1)
	default:
		return w, fmt.Errorf("unknown nudge operation %q", op)
	}
	return candidate, nil
}

// ValidateWall reports whether the candidate's effective footprint lies
// inside bounds and overlaps none of the other walls.
func ValidateWall(candidate model.Wall, others []model.Wall, bounds model.Bounds) bool {
	fp := candidate.Footprint()
	if !model.Fits(fp, bounds) {
		return false
	}
	for _, o := range others {
		if model.Overlaps(fp, o.Footprint()) {
			return false
		}
	}
	return true
}

// OtherWalls returns a copy of walls without the entry at index.
func OtherWalls(walls []model.Wall, index int) []model.Wall {
	others := make([]model.Wall, 0, len(walls))
	for i, w := range walls {
		if i != index {
			others = append(others, w)
		}
	}
	return others
}
