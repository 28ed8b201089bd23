package geometry

import "testing"

func TestExpandedBy(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	edge := EdgeSizes{Top: 15, Right: 10, Bottom: 20, Left: 5}

	result := rect.ExpandedBy(edge)

	if result.X != 5 {
		t.Errorf("expected x 5, got %f", result.X)
	}
	if result.Y != 5 {
		t.Errorf("expected y 5, got %f", result.Y)
	}
	if result.Width != 45 {
		t.Errorf("expected width 45, got %f", result.Width)
	}
	if result.Height != 75 {
		t.Errorf("expected height 75, got %f", result.Height)
	}
}

func TestExpandedByZero(t *testing.T) {
	rect := Rect{X: 1, Y: 2, Width: 3, Height: 4}

	if rect.ExpandedBy(EdgeSizes{}) != rect {
		t.Error("expanding by zero edges should not change the rectangle")
	}
}
