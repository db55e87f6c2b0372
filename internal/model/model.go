package model

import "github.com/google/uuid"

// Orientation is the axis a wall's length runs along.
type Orientation string

const (
	OrientationX Orientation = "x" // Length runs along the container length
	OrientationY Orientation = "y" // Length runs along the container depth
)

// Toggle returns the other orientation.
func (o Orientation) Toggle() Orientation {
	if o == OrientationY {
		return OrientationX
	}
	return OrientationY
}

func (o Orientation) String() string {
	if o == OrientationY {
		return "vertical"
	}
	return "horizontal"
}

// Point is a floor-plan coordinate in grid units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned footprint [X, X+W) x [Y, Y+D) on the container floor.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	D float64 `json:"d"`
}

// Right returns the exclusive x edge.
func (b Box) Right() float64 { return b.X + b.W }

// Far returns the exclusive y edge.
func (b Box) Far() float64 { return b.Y + b.D }

// Area returns the footprint area in square grid units.
func (b Box) Area() float64 { return b.W * b.D }

// Container is the enclosure the layout lives in, in grid units.
type Container struct {
	SizeID string `json:"size_id"`
	Length int    `json:"length"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Insulation insets all four sides of the container footprint by Thickness.
type Insulation struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Thickness float64 `json:"thickness"`
	Color     string  `json:"color"`
}

// Item is a free-standing piece of furniture.
type Item struct {
	ID        string  `json:"id"`
	CatalogID string  `json:"catalog_id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	D         float64 `json:"d"`
	H         float64 `json:"h"`
	Price     float64 `json:"price"`
	Color     string  `json:"color"`
}

// Footprint returns the floor rectangle the item occupies.
func (it Item) Footprint() Box {
	return Box{X: it.X, Y: it.Y, W: it.W, D: it.D}
}

// Wall is a partition panel. Its effective footprint depends on Orientation.
type Wall struct {
	ID          string      `json:"id"`
	OptionID    string      `json:"option_id"`
	Name        string      `json:"name"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Length      float64     `json:"length"`
	Orientation Orientation `json:"orientation"`
	Depth       float64     `json:"depth"` // Panel thickness, shared by all walls
	H           float64     `json:"h"`
	Price       float64     `json:"price"`
	Color       string      `json:"color"`
	Alpha       float64     `json:"alpha"`
}

// Dimensions returns the effective footprint width and depth.
func (w Wall) Dimensions() (float64, float64) {
	if w.Orientation == OrientationY {
		return w.Depth, w.Length
	}
	return w.Length, w.Depth
}

// Footprint returns the floor rectangle the wall occupies.
func (w Wall) Footprint() Box {
	fw, fd := w.Dimensions()
	return Box{X: w.X, Y: w.Y, W: fw, D: fd}
}

// Window is a panel set into the back wall line at elevation Z.
type Window struct {
	ID       string  `json:"id"`
	OptionID string  `json:"option_id"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Z        float64 `json:"z"`
	D        float64 `json:"d"`
	Price    float64 `json:"price"`
	Color    string  `json:"color"`
}

// Footprint returns the floor rectangle the window panel occupies.
func (w Window) Footprint() Box {
	return Box{X: w.X, Y: w.Y, W: w.W, D: w.D}
}

// newID returns a short random identifier for a placed entity.
func newID() string {
	return uuid.New().String()[:8]
}

// Layout is the aggregate the planner edits. Lists are insertion-ordered and
// indices into them are the addressing scheme for selection and removal.
type Layout struct {
	Container    Container  `json:"container"`
	Insulation   Insulation `json:"insulation"`
	Items        []Item     `json:"items"`
	Walls        []Wall     `json:"walls"`
	Windows      []Window   `json:"windows"`
	SelectedWall *int       `json:"selected_wall_index"`
	EditingWalls bool       `json:"editing_walls"`
}

// Bounds returns the usable interior for the current container and insulation.
func (l Layout) Bounds() Bounds {
	return InteriorBounds(l.Container, l.Insulation.Thickness)
}

// Clone returns a deep copy that shares no slices or pointers with l.
func (l Layout) Clone() Layout {
	cp := l
	cp.Items = append([]Item(nil), l.Items...)
	cp.Walls = append([]Wall(nil), l.Walls...)
	cp.Windows = append([]Window(nil), l.Windows...)
	if l.SelectedWall != nil {
		idx := *l.SelectedWall
		cp.SelectedWall = &idx
	}
	return cp
}

// ItemFootprints returns the footprints of all items in list order.
func (l Layout) ItemFootprints() []Box {
	boxes := make([]Box, len(l.Items))
	for i, it := range l.Items {
		boxes[i] = it.Footprint()
	}
	return boxes
}

// WallFootprints returns the footprints of all walls in list order.
func (l Layout) WallFootprints() []Box {
	boxes := make([]Box, len(l.Walls))
	for i, w := range l.Walls {
		boxes[i] = w.Footprint()
	}
	return boxes
}

// WindowFootprints returns the footprints of all windows in list order.
func (l Layout) WindowFootprints() []Box {
	boxes := make([]Box, len(l.Windows))
	for i, w := range l.Windows {
		boxes[i] = w.Footprint()
	}
	return boxes
}

// Reset drops every placed entity along with wall selection and edit mode.
func (l *Layout) Reset() {
	l.Items = nil
	l.Walls = nil
	l.Windows = nil
	l.SelectedWall = nil
	l.EditingWalls = false
}
