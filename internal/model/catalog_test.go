package model

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := DefaultCatalog()
	require.NoError(t, cat.Validate())

	assert.Len(t, cat.ContainerSizes, 2)
	assert.Len(t, cat.Items, 6)
	assert.Len(t, cat.WallOptions, 2)
	assert.Len(t, cat.WindowOptions, 2)
	assert.Len(t, cat.InsulationOptions, 3)
	assert.Equal(t, 0.4, cat.WallDepth)
}

func TestCatalogLookups(t *testing.T) {
	cat := DefaultCatalog()

	size, ok := cat.FindContainerSize("40ft")
	require.True(t, ok)
	assert.Equal(t, Container{SizeID: "40ft", Length: 12, Width: 5, Height: 5}, size.Container())

	sofa, ok := cat.FindItem("sofa")
	require.True(t, ok)
	assert.Equal(t, 680.0, sofa.Price)

	_, ok = cat.FindItem("piano")
	assert.False(t, ok)

	glass, ok := cat.FindWallOption("glass")
	require.True(t, ok)
	assert.Equal(t, 1600.0, glass.Price)

	bay, ok := cat.FindWindowOption("bay")
	require.True(t, ok)
	assert.Equal(t, 1.0, bay.Z)

	foam, ok := cat.FindInsulation("foam")
	require.True(t, ok)
	assert.Equal(t, Insulation{ID: "foam", Label: foam.Label, Thickness: 0.5, Color: foam.Color}, foam.Insulation())

	_, ok = cat.FindInsulation("straw")
	assert.False(t, ok)
}

func TestCatalogInitialDefaults(t *testing.T) {
	cat := DefaultCatalog()
	assert.Equal(t, "40ft", cat.InitialContainerSize().ID)
	assert.Equal(t, "foam", cat.InitialInsulation().ID)

	cat.DefaultContainerSize = "missing"
	cat.DefaultInsulation = "missing"
	assert.Equal(t, "40ft", cat.InitialContainerSize().ID, "falls back to the last size")
	assert.Equal(t, "none", cat.InitialInsulation().ID, "falls back to the first insulation")
}

func TestCatalogValidateReportsEveryProblem(t *testing.T) {
	cat := DefaultCatalog()
	cat.Items = append(cat.Items, ItemDef{ID: "desk", Name: "Dup", W: 1, D: 1, H: 1})
	cat.Items = append(cat.Items, ItemDef{ID: "flat", Name: "Flat", W: 1, D: 0, H: 1})
	cat.InsulationOptions[0].Thickness = -1
	cat.WallDepth = 0
	cat.DefaultContainerSize = "80ft"

	err := cat.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		`duplicate item id "desk"`,
		`item "flat": dimensions must be > 0`,
		`insulation "none": thickness must be >= 0`,
		"wall depth must be > 0",
		`default container size "80ft" not found`,
	} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %q", want, msg)
	}
}

func TestCatalogValidateRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog)
		want   string
	}{
		{"nan thickness", func(c *Catalog) { c.InsulationOptions[1].Thickness = math.NaN() }, `insulation "foam": thickness must be >= 0`},
		{"inf thickness", func(c *Catalog) { c.InsulationOptions[1].Thickness = math.Inf(1) }, `insulation "foam": thickness must be >= 0`},
		{"nan item width", func(c *Catalog) { c.Items[0].W = math.NaN() }, `item "desk": dimensions must be > 0`},
		{"inf item depth", func(c *Catalog) { c.Items[0].D = math.Inf(1) }, `item "desk": dimensions must be > 0`},
		{"nan item price", func(c *Catalog) { c.Items[0].Price = math.NaN() }, `item "desk": price must be >= 0`},
		{"nan wall length", func(c *Catalog) { c.WallOptions[0].W = math.NaN() }, `wall option "steel": length must be >= 1`},
		{"inf wall price", func(c *Catalog) { c.WallOptions[0].Price = math.Inf(1) }, `wall option "steel": price must be >= 0`},
		{"nan window elevation", func(c *Catalog) { c.WindowOptions[0].Z = math.NaN() }, `window option "fixed": dimensions must be > 0`},
		{"nan wall depth", func(c *Catalog) { c.WallDepth = math.NaN() }, "wall depth must be > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := DefaultCatalog()
			tt.mutate(&cat)
			err := cat.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCatalogCloneIsIndependent(t *testing.T) {
	cat := DefaultCatalog()
	cp := cat.Clone()
	cat.Items[0].Price = 1
	cat.ContainerSizes[0].LengthUnits = 99

	assert.Equal(t, 320.0, cp.Items[0].Price)
	assert.Equal(t, 6, cp.ContainerSizes[0].LengthUnits)
}

func TestItemNames(t *testing.T) {
	cat := DefaultCatalog()
	names := cat.ItemNames()
	require.Len(t, names, len(cat.Items))
	assert.Equal(t, "Compact desk", names[0])
}
