package model

import (
	"errors"
	"fmt"
	"math"
)

// ContainerSize is one entry of the enumerated container size table.
type ContainerSize struct {
	ID           string  `json:"id" yaml:"id"`
	Label        string  `json:"label" yaml:"label"`
	LengthUnits  int     `json:"length_units" yaml:"length_units"`
	WidthUnits   int     `json:"width_units" yaml:"width_units"`
	HeightUnits  int     `json:"height_units" yaml:"height_units"`
	LengthMeters float64 `json:"length_meters" yaml:"length_meters"`
	WidthMeters  float64 `json:"width_meters" yaml:"width_meters"`
	HeightMeters float64 `json:"height_meters" yaml:"height_meters"`
}

// Container returns the grid-unit container for this size.
func (cs ContainerSize) Container() Container {
	return Container{
		SizeID: cs.ID,
		Length: cs.LengthUnits,
		Width:  cs.WidthUnits,
		Height: cs.HeightUnits,
	}
}

// ItemDef is a furniture catalog entry.
type ItemDef struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	W     float64 `json:"w" yaml:"w"`
	D     float64 `json:"d" yaml:"d"`
	H     float64 `json:"h" yaml:"h"`
	Price float64 `json:"price" yaml:"price"`
	Color string  `json:"color" yaml:"color"`
}

// NewItem places a copy of the definition at (x, y).
func (d ItemDef) NewItem(x, y float64) Item {
	return Item{
		ID:        newID(),
		CatalogID: d.ID,
		Name:      d.Name,
		X:         x,
		Y:         y,
		W:         d.W,
		D:         d.D,
		H:         d.H,
		Price:     d.Price,
		Color:     d.Color,
	}
}

// WallOption is a partition wall catalog entry. W is the initial length.
type WallOption struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	W     float64 `json:"w" yaml:"w"`
	Price float64 `json:"price" yaml:"price"`
	Color string  `json:"color" yaml:"color"`
	Alpha float64 `json:"alpha" yaml:"alpha"`
}

// NewWall creates an x-oriented wall at (x, y) spanning the container height.
func (o WallOption) NewWall(x, y, depth, height float64) Wall {
	return Wall{
		ID:          newID(),
		OptionID:    o.ID,
		Name:        o.Name,
		X:           x,
		Y:           y,
		Length:      o.W,
		Orientation: OrientationX,
		Depth:       depth,
		H:           height,
		Price:       o.Price,
		Color:       o.Color,
		Alpha:       o.Alpha,
	}
}

// WindowOption is a window catalog entry.
type WindowOption struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	W     float64 `json:"w" yaml:"w"`
	H     float64 `json:"h" yaml:"h"`
	Z     float64 `json:"z" yaml:"z"`
	Price float64 `json:"price" yaml:"price"`
	Color string  `json:"color" yaml:"color"`
}

// NewWindow creates a window at (x, y) with the given panel depth.
func (o WindowOption) NewWindow(x, y, depth float64) Window {
	return Window{
		ID:       newID(),
		OptionID: o.ID,
		Name:     o.Name,
		X:        x,
		Y:        y,
		W:        o.W,
		H:        o.H,
		Z:        o.Z,
		D:        depth,
		Price:    o.Price,
		Color:    o.Color,
	}
}

// InsulationOption is an insulation catalog entry.
type InsulationOption struct {
	ID        string  `json:"id" yaml:"id"`
	Label     string  `json:"label" yaml:"label"`
	Thickness float64 `json:"thickness" yaml:"thickness"`
	Color     string  `json:"color" yaml:"color"`
}

// Insulation converts the option into the layout's insulation value.
func (o InsulationOption) Insulation() Insulation {
	return Insulation{ID: o.ID, Label: o.Label, Thickness: o.Thickness, Color: o.Color}
}

// Catalog holds every static, read-only definition the planner consumes.
type Catalog struct {
	ContainerSizes       []ContainerSize    `json:"container_sizes" yaml:"container_sizes"`
	Items                []ItemDef          `json:"items" yaml:"items"`
	WallOptions          []WallOption       `json:"wall_options" yaml:"wall_options"`
	WindowOptions        []WindowOption     `json:"window_options" yaml:"window_options"`
	InsulationOptions    []InsulationOption `json:"insulation_options" yaml:"insulation_options"`
	WallDepth            float64            `json:"wall_depth" yaml:"wall_depth"`
	DefaultContainerSize string             `json:"default_container_size" yaml:"default_container_size"`
	DefaultInsulation    string             `json:"default_insulation" yaml:"default_insulation"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		ContainerSizes: []ContainerSize{
			{ID: "20ft", Label: "20 ft - 6.05 m x 2.43 m", LengthUnits: 6, WidthUnits: 5, HeightUnits: 5, LengthMeters: 6.05, WidthMeters: 2.43, HeightMeters: 2.59},
			{ID: "40ft", Label: "40 ft - 12.19 m x 2.43 m", LengthUnits: 12, WidthUnits: 5, HeightUnits: 5, LengthMeters: 12.19, WidthMeters: 2.43, HeightMeters: 2.59},
		},
		Items: []ItemDef{
			{ID: "desk", Name: "Compact desk", W: 3, D: 2, H: 2, Price: 320, Color: "#c9a27c"},
			{ID: "sofa", Name: "Straight sofa", W: 4, D: 2, H: 2, Price: 680, Color: "#9c6b5a"},
			{ID: "shelf", Name: "Metal shelf", W: 2, D: 1, H: 3, Price: 210, Color: "#8b8f95"},
			{ID: "bed", Name: "Single bed", W: 4, D: 2, H: 2, Price: 520, Color: "#9e8b6a"},
			{ID: "kitchen", Name: "Kitchenette block", W: 4, D: 2, H: 3, Price: 940, Color: "#7f6d5a"},
			{ID: "light", Name: "Pendant light", W: 1, D: 1, H: 1, Price: 95, Color: "#e7c36a"},
		},
		WallOptions: []WallOption{
			{ID: "steel", Name: "Solid steel wall", W: 4, Price: 1200, Color: "#c3b7aa", Alpha: 0.6},
			{ID: "glass", Name: "Showcase wall", W: 4, Price: 1600, Color: "#d7c7b4", Alpha: 0.5},
		},
		WindowOptions: []WindowOption{
			{ID: "fixed", Name: "Fixed window", W: 2, H: 2, Z: 1.5, Price: 350, Color: "rgba(140,180,210,0.5)"},
			{ID: "bay", Name: "Bay window", W: 4, H: 3, Z: 1, Price: 900, Color: "rgba(120,170,200,0.45)"},
		},
		InsulationOptions: []InsulationOption{
			{ID: "none", Label: "No insulation", Thickness: 0, Color: "rgba(184,171,156,0.15)"},
			{ID: "foam", Label: "Foam insulation (0.5u)", Thickness: 0.5, Color: "rgba(231,195,106,0.35)"},
			{ID: "panel", Label: "Panel insulation (1u)", Thickness: 1, Color: "rgba(156,132,108,0.35)"},
		},
		WallDepth:            0.4,
		DefaultContainerSize: "40ft",
		DefaultInsulation:    "foam",
	}
}

// FindContainerSize returns the container size with the given ID.
func (c *Catalog) FindContainerSize(id string) (ContainerSize, bool) {
	for _, s := range c.ContainerSizes {
		if s.ID == id {
			return s, true
		}
	}
	return ContainerSize{}, false
}

// FindItem returns the furniture definition with the given ID.
func (c *Catalog) FindItem(id string) (ItemDef, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemDef{}, false
}

// FindWallOption returns the wall option with the given ID.
func (c *Catalog) FindWallOption(id string) (WallOption, bool) {
	for _, o := range c.WallOptions {
		if o.ID == id {
			return o, true
		}
	}
	return WallOption{}, false
}

// FindWindowOption returns the window option with the given ID.
func (c *Catalog) FindWindowOption(id string) (WindowOption, bool) {
	for _, o := range c.WindowOptions {
		if o.ID == id {
			return o, true
		}
	}
	return WindowOption{}, false
}

// FindInsulation returns the insulation option with the given ID.
func (c *Catalog) FindInsulation(id string) (InsulationOption, bool) {
	for _, o := range c.InsulationOptions {
		if o.ID == id {
			return o, true
		}
	}
	return InsulationOption{}, false
}

// ItemNames returns furniture names for option lists.
func (c *Catalog) ItemNames() []string {
	names := make([]string, len(c.Items))
	for i, it := range c.Items {
		names[i] = it.Name
	}
	return names
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	cp := c
	cp.ContainerSizes = append([]ContainerSize(nil), c.ContainerSizes...)
	cp.Items = append([]ItemDef(nil), c.Items...)
	cp.WallOptions = append([]WallOption(nil), c.WallOptions...)
	cp.WindowOptions = append([]WindowOption(nil), c.WindowOptions...)
	cp.InsulationOptions = append([]InsulationOption(nil), c.InsulationOptions...)
	return cp
}

// Validate checks that every definition is usable and every ID is unique
// within its table. All problems are reported together.
func (c *Catalog) Validate() error {
	var errs []error

	if len(c.ContainerSizes) == 0 {
		errs = append(errs, errors.New("catalog has no container sizes"))
	}
	if len(c.InsulationOptions) == 0 {
		errs = append(errs, errors.New("catalog has no insulation options"))
	}
	if !finite(c.WallDepth) || c.WallDepth <= 0 {
		errs = append(errs, fmt.Errorf("wall depth must be > 0, got %g", c.WallDepth))
	}

	seen := map[string]bool{}
	for _, s := range c.ContainerSizes {
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate container size id %q", s.ID))
		}
		seen[s.ID] = true
		if s.LengthUnits <= 0 || s.WidthUnits <= 0 || s.HeightUnits <= 0 {
			errs = append(errs, fmt.Errorf("container size %q: dimensions must be > 0", s.ID))
		}
	}

	seen = map[string]bool{}
	for _, it := range c.Items {
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("duplicate item id %q", it.ID))
		}
		seen[it.ID] = true
		if !finite(it.W, it.D, it.H) || it.W <= 0 || it.D <= 0 || it.H <= 0 {
			errs = append(errs, fmt.Errorf("item %q: dimensions must be > 0", it.ID))
		}
		if !finite(it.Price) || it.Price < 0 {
			errs = append(errs, fmt.Errorf("item %q: price must be >= 0", it.ID))
		}
	}

	seen = map[string]bool{}
	for _, o := range c.WallOptions {
		if seen[o.ID] {
			errs = append(errs, fmt.Errorf("duplicate wall option id %q", o.ID))
		}
		seen[o.ID] = true
		if !finite(o.W) || o.W < 1 {
			errs = append(errs, fmt.Errorf("wall option %q: length must be >= 1", o.ID))
		}
		if !finite(o.Price) || o.Price < 0 {
			errs = append(errs, fmt.Errorf("wall option %q: price must be >= 0", o.ID))
		}
	}

	seen = map[string]bool{}
	for _, o := range c.WindowOptions {
		if seen[o.ID] {
			errs = append(errs, fmt.Errorf("duplicate window option id %q", o.ID))
		}
		seen[o.ID] = true
		if !finite(o.W, o.H, o.Z) || o.W <= 0 || o.H <= 0 {
			errs = append(errs, fmt.Errorf("window option %q: dimensions must be > 0", o.ID))
		}
		if !finite(o.Price) || o.Price < 0 {
			errs = append(errs, fmt.Errorf("window option %q: price must be >= 0", o.ID))
		}
	}

	seen = map[string]bool{}
	for _, o := range c.InsulationOptions {
		if seen[o.ID] {
			errs = append(errs, fmt.Errorf("duplicate insulation id %q", o.ID))
		}
		seen[o.ID] = true
		if !finite(o.Thickness) || o.Thickness < 0 {
			errs = append(errs, fmt.Errorf("insulation %q: thickness must be >= 0", o.ID))
		}
	}

	if c.DefaultContainerSize != "" {
		if _, ok := c.FindContainerSize(c.DefaultContainerSize); !ok {
			errs = append(errs, fmt.Errorf("default container size %q not found", c.DefaultContainerSize))
		}
	}
	if c.DefaultInsulation != "" {
		if _, ok := c.FindInsulation(c.DefaultInsulation); !ok {
			errs = append(errs, fmt.Errorf("default insulation %q not found", c.DefaultInsulation))
		}
	}

	return errors.Join(errs...)
}

// finite reports whether every value is a real number, neither NaN nor
// infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// InitialContainerSize returns the catalog default, falling back to the last
// listed size.
func (c *Catalog) InitialContainerSize() ContainerSize {
	if s, ok := c.FindContainerSize(c.DefaultContainerSize); ok {
		return s
	}
	if len(c.ContainerSizes) == 0 {
		return ContainerSize{}
	}
	return c.ContainerSizes[len(c.ContainerSizes)-1]
}

// InitialInsulation returns the catalog default, falling back to the first
// listed option.
func (c *Catalog) InitialInsulation() InsulationOption {
	if o, ok := c.FindInsulation(c.DefaultInsulation); ok {
		return o
	}
	if len(c.InsulationOptions) == 0 {
		return InsulationOption{}
	}
	return c.InsulationOptions[0]
}
