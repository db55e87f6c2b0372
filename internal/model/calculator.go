package model

// Totals holds the running price of a layout, broken down by family.
type Totals struct {
	Items   float64 `json:"items"`
	Walls   float64 `json:"walls"`
	Windows float64 `json:"windows"`
	Total   float64 `json:"total"`
}

// Totals sums the price of every placed entity.
func (l Layout) Totals() Totals {
	var t Totals
	for _, it := range l.Items {
		t.Items += it.Price
	}
	for _, w := range l.Walls {
		t.Walls += w.Price
	}
	for _, w := range l.Windows {
		t.Windows += w.Price
	}
	t.Total = t.Items + t.Walls + t.Windows
	return t
}

// Counts holds the number of placed entities per family.
type Counts struct {
	Items   int `json:"items"`
	Walls   int `json:"walls"`
	Windows int `json:"windows"`
}

// Counts returns how many entities of each family are placed.
func (l Layout) Counts() Counts {
	return Counts{Items: len(l.Items), Walls: len(l.Walls), Windows: len(l.Windows)}
}

// FloorUsage returns the share of the interior floor covered by items, in
// percent. Walls and windows are excluded.
func (l Layout) FloorUsage() float64 {
	b := l.Bounds()
	total := b.Width() * b.Depth()
	if b.Width() <= 0 || b.Depth() <= 0 {
		return 0
	}
	var used float64
	for _, it := range l.Items {
		used += it.Footprint().Area()
	}
	return (used / total) * 100.0
}
