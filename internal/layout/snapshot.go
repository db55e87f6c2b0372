package layout

import "github.com/piwi3910/ContainerPlan/internal/model"

// Snapshot is a complete, consistent copy of the layout handed to views.
// Version increases with every accepted mutation.
type Snapshot struct {
	Version uint64       `json:"version"`
	Layout  model.Layout `json:"layout"`
	Totals  model.Totals `json:"totals"`
}

// TotalPrice returns the running price of everything placed.
func (s Snapshot) TotalPrice() float64 { return s.Totals.Total }

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	s.Layout = s.Layout.Clone()
	return s
}

func newSnapshot(version uint64, l model.Layout) Snapshot {
	return Snapshot{
		Version: version,
		Layout:  l.Clone(),
		Totals:  l.Totals(),
	}
}

// WallMoved is the drag-release event a view sends back to the Engine.
// WallID is the ID of the wall the view dragged; the event is dropped when
// the wall at Index is no longer that wall.
type WallMoved struct {
	Index  int     `json:"wall_index"`
	WallID string  `json:"wall_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}
