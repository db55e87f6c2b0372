package engine

import (
	"testing"

	"github.com/piwi3910/ContainerPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWall(x, y, length float64) model.Wall {
	return model.Wall{ID: "w", X: x, Y: y, Length: length, Orientation: model.OrientationX, Depth: 0.4, H: 5}
}

func TestApplyNudge_Operations(t *testing.T) {
	base := testWall(2, 2, 4)

	tests := []struct {
		op   NudgeOp
		want func(w *model.Wall)
	}{
		{NudgeLeft, func(w *model.Wall) { w.X = 1 }},
		{NudgeRight, func(w *model.Wall) { w.X = 3 }},
		{NudgeUp, func(w *model.Wall) { w.Y = 1 }},
		{NudgeDown, func(w *model.Wall) { w.Y = 3 }},
		{NudgeRotate, func(w *model.Wall) { w.Orientation = model.OrientationY }},
		{NudgeGrow, func(w *model.Wall) { w.Length = 5 }},
		{NudgeShrink, func(w *model.Wall) { w.Length = 3 }},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			got, err := ApplyNudge(base, tt.op)
			require.NoError(t, err)
			want := base
			tt.want(&want)
			assert.Equal(t, want, got)
			assert.Equal(t, 4.0, base.Length, "input must not change")
		})
	}
}

func TestApplyNudge_ShrinkFloorsAtOne(t *testing.T) {
	w := testWall(2, 2, 2)
	var err error
	for i := 0; i < 3; i++ {
		w, err = ApplyNudge(w, NudgeShrink)
		require.NoError(t, err)
	}
	assert.Equal(t, 1.0, w.Length)
}

func TestApplyNudge_RotateSwapsFootprint(t *testing.T) {
	w := testWall(1, 1, 3)
	rotated, err := ApplyNudge(w, NudgeRotate)
	require.NoError(t, err)

	assert.Equal(t, model.Box{X: 1, Y: 1, W: 0.4, D: 3}, rotated.Footprint())
	assert.Equal(t, 3.0, rotated.Length)
}

func TestApplyNudge_UnknownOp(t *testing.T) {
	w := testWall(1, 1, 3)
	got, err := ApplyNudge(w, NudgeOp("spin"))
	assert.Error(t, err)
	assert.Equal(t, w, got)
}

func TestParseNudgeOp(t *testing.T) {
	op, err := ParseNudgeOp(" Rotate ")
	require.NoError(t, err)
	assert.Equal(t, NudgeRotate, op)

	_, err = ParseNudgeOp("jump")
	assert.Error(t, err)
}

func TestValidateWall(t *testing.T) {
	bounds := fortyFootFoam()
	others := []model.Wall{testWall(4.5, 4.1, 4)}

	assert.True(t, ValidateWall(testWall(0.5, 4.1, 4), others, bounds), "touching edge is allowed")
	assert.False(t, ValidateWall(testWall(1.5, 4.1, 4), others, bounds), "overlap")
	assert.False(t, ValidateWall(testWall(0, 4.1, 4), nil, bounds), "inside insulation")
	assert.False(t, ValidateWall(testWall(8.5, 4.1, 4), nil, bounds), "past far end")

	rotated := testWall(0.5, 4.1, 4)
	rotated.Orientation = model.OrientationY
	assert.False(t, ValidateWall(rotated, nil, bounds), "rotated length runs out of the interior")
}

func TestOtherWalls(t *testing.T) {
	walls := []model.Wall{testWall(0, 0, 1), testWall(1, 0, 2), testWall(2, 0, 3)}
	others := OtherWalls(walls, 1)
	require.Len(t, others, 2)
	assert.Equal(t, 1.0, others[0].Length)
	assert.Equal(t, 3.0, others[1].Length)

	others[0].Length = 9
	assert.Equal(t, 1.0, walls[0].Length)
}
