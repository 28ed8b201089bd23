package geometry

// Rect is a rectangle positioned relative to the document origin.
// All coordinates and sizes are in px.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// EdgeSizes holds one size per box edge (padding, border or margin).
type EdgeSizes struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// ExpandedBy returns a rectangle grown outward by the given edge sizes:
// the origin moves up and left, the extent grows by the opposing edge sums.
func (r Rect) ExpandedBy(edge EdgeSizes) Rect {
	return Rect{
		X:      r.X - edge.Left,
		Y:      r.Y - edge.Top,
		Width:  r.Width + edge.Left + edge.Right,
		Height: r.Height + edge.Top + edge.Bottom,
	}
}
