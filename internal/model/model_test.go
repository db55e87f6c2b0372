package model

import (
	"testing"
)

func TestOrientationToggle(t *testing.T) {
	if OrientationX.Toggle() != OrientationY {
		t.Errorf("expected x to toggle to y")
	}
	if OrientationY.Toggle() != OrientationX {
		t.Errorf("expected y to toggle to x")
	}
	if Orientation("").Toggle() != OrientationY {
		t.Errorf("expected unset orientation to behave as x")
	}
}

func TestWallDimensionsFollowOrientation(t *testing.T) {
	w := Wall{X: 1, Y: 2, Length: 4, Depth: 0.4, Orientation: OrientationX}

	fw, fd := w.Dimensions()
	if fw != 4 || fd != 0.4 {
		t.Errorf("x orientation: expected (4, 0.4), got (%v, %v)", fw, fd)
	}

	w.Orientation = OrientationY
	fw, fd = w.Dimensions()
	if fw != 0.4 || fd != 4 {
		t.Errorf("y orientation: expected (0.4, 4), got (%v, %v)", fw, fd)
	}

	fp := w.Footprint()
	if fp.X != 1 || fp.Y != 2 || fp.W != 0.4 || fp.D != 4 {
		t.Errorf("unexpected footprint %+v", fp)
	}
}

func TestWindowFootprintUsesPanelDepth(t *testing.T) {
	win := Window{X: 3, Y: 4.1, W: 2, H: 2, Z: 1.5, D: 0.4}
	fp := win.Footprint()
	if fp.W != 2 || fp.D != 0.4 {
		t.Errorf("expected 2 x 0.4 footprint, got %+v", fp)
	}
}

func TestLayoutCloneIsIndependent(t *testing.T) {
	sel := 0
	l := Layout{
		Items:        []Item{{ID: "a", Name: "Desk", X: 1}},
		Walls:        []Wall{{ID: "w", Length: 4}},
		Windows:      []Window{{ID: "n", W: 2}},
		SelectedWall: &sel,
		EditingWalls: true,
	}

	cp := l.Clone()
	l.Items[0].Name = "Modified"
	l.Walls[0].Length = 9
	l.Windows[0].W = 9
	*l.SelectedWall = 5

	if cp.Items[0].Name != "Desk" {
		t.Error("clone items should be independent of the original")
	}
	if cp.Walls[0].Length != 4 {
		t.Error("clone walls should be independent of the original")
	}
	if cp.Windows[0].W != 2 {
		t.Error("clone windows should be independent of the original")
	}
	if cp.SelectedWall == nil || *cp.SelectedWall != 0 {
		t.Error("clone selection should be independent of the original")
	}
}

func TestLayoutCloneNilSlices(t *testing.T) {
	cp := Layout{}.Clone()
	if cp.Items != nil || cp.Walls != nil || cp.Windows != nil {
		t.Error("nil slices should stay nil")
	}
	if cp.SelectedWall != nil {
		t.Error("nil selection should stay nil")
	}
}

func TestLayoutReset(t *testing.T) {
	sel := 1
	l := Layout{
		Container:    Container{SizeID: "40ft", Length: 12, Width: 5, Height: 5},
		Items:        []Item{{}},
		Walls:        []Wall{{}, {}},
		Windows:      []Window{{}},
		SelectedWall: &sel,
		EditingWalls: true,
	}
	l.Reset()

	if len(l.Items) != 0 || len(l.Walls) != 0 || len(l.Windows) != 0 {
		t.Error("reset should clear all entity lists")
	}
	if l.SelectedWall != nil || l.EditingWalls {
		t.Error("reset should clear selection and edit mode")
	}
	if l.Container.Length != 12 {
		t.Error("reset should keep the container")
	}
}

func TestNewEntitiesGetIDs(t *testing.T) {
	cat := DefaultCatalog()
	def, _ := cat.FindItem("desk")
	a := def.NewItem(0, 0)
	b := def.NewItem(0, 0)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.CatalogID != "desk" || a.W != 3 || a.D != 2 {
		t.Errorf("item should copy its definition, got %+v", a)
	}

	opt, _ := cat.FindWallOption("steel")
	w := opt.NewWall(0.5, 4.1, cat.WallDepth, 5)
	if w.Orientation != OrientationX || w.Length != 4 || w.Depth != 0.4 || w.H != 5 {
		t.Errorf("unexpected wall %+v", w)
	}
}
