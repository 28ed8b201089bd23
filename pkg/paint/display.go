// Package paint walks a laid-out box tree, flattens it into a display list
// of solid-rectangle commands, and rasterizes the list onto a canvas.
package paint

import (
	"folio/pkg/css"
	"folio/pkg/geometry"
	"folio/pkg/layout"
)

// SolidColor fills a rectangle with one color. It is the only display
// command so far.
type SolidColor struct {
	Color css.Color
	Rect  geometry.Rect
}

// DisplayList is the flat, back-to-front list of paint commands for a box
// tree.
type DisplayList []SolidColor

// BuildDisplayList flattens the layout tree into paint commands. Each box
// contributes its background and borders before its children, so children
// paint on top of their parent.
func BuildDisplayList(root *layout.LayoutBox) DisplayList {
	list := make(DisplayList, 0)
	renderLayoutBox(&list, root)
	return list
}

func renderLayoutBox(list *DisplayList, box *layout.LayoutBox) {
	renderBackground(list, box)
	renderBorders(list, box)
	for _, child := range box.Children {
		renderLayoutBox(list, child)
	}
}

// renderBackground fills the border box with the "background" color, if the
// box has one.
func renderBackground(list *DisplayList, box *layout.LayoutBox) {
	color, ok := boxColor(box, "background")
	if !ok {
		return
	}
	*list = append(*list, SolidColor{Color: color, Rect: box.Dimensions.BorderBox()})
}

// renderBorders draws the four border edges as filled rectangles along the
// sides of the border box.
func renderBorders(list *DisplayList, box *layout.LayoutBox) {
	color, ok := boxColor(box, "border-color")
	if !ok {
		return
	}

	d := box.Dimensions
	borderBox := d.BorderBox()

	// Left border
	*list = append(*list, SolidColor{Color: color, Rect: geometry.Rect{
		X:      borderBox.X,
		Y:      borderBox.Y,
		Width:  d.Border.Left,
		Height: borderBox.Height,
	}})

	// Right border
	*list = append(*list, SolidColor{Color: color, Rect: geometry.Rect{
		X:      borderBox.X + borderBox.Width - d.Border.Right,
		Y:      borderBox.Y,
		Width:  d.Border.Right,
		Height: borderBox.Height,
	}})

	// Top border
	*list = append(*list, SolidColor{Color: color, Rect: geometry.Rect{
		X:      borderBox.X,
		Y:      borderBox.Y,
		Width:  borderBox.Width,
		Height: d.Border.Top,
	}})

	// Bottom border
	*list = append(*list, SolidColor{Color: color, Rect: geometry.Rect{
		X:      borderBox.X,
		Y:      borderBox.Y + borderBox.Height - d.Border.Bottom,
		Width:  borderBox.Width,
		Height: d.Border.Bottom,
	}})
}

// boxColor reads a color-valued property off the box's styled node.
// Anonymous boxes have no styled node and never paint.
func boxColor(box *layout.LayoutBox, name string) (css.Color, bool) {
	if box.Kind == layout.AnonymousBlock {
		return css.Color{}, false
	}
	v, ok := box.StyleNode().Value(name)
	if !ok || v.Kind != css.ColorValue {
		return css.Color{}, false
	}
	return v.Color, true
}
