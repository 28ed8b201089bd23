package paint

import (
	"image"

	"github.com/fogleman/gg"

	"folio/pkg/geometry"
	"folio/pkg/layout"
)

// Renderer rasterizes display lists onto a gg drawing context.
type Renderer struct {
	context *gg.Context
}

// NewRenderer creates a renderer with a white canvas of the given size.
func NewRenderer(width, height int) *Renderer {
	context := gg.NewContext(width, height)
	context.SetRGB(1, 1, 1)
	context.Clear()
	return &Renderer{context: context}
}

// Render draws every command in order. Commands are already back-to-front,
// so plain overdraw gives the correct stacking.
func (r *Renderer) Render(list DisplayList) {
	for _, cmd := range list {
		if cmd.Rect.Width <= 0 || cmd.Rect.Height <= 0 {
			continue
		}
		r.context.SetRGBA255(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B), int(cmd.Color.A))
		r.context.DrawRectangle(cmd.Rect.X, cmd.Rect.Y, cmd.Rect.Width, cmd.Rect.Height)
		r.context.Fill()
	}
}

// Image returns the rendered canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the canvas to a PNG file.
func (r *Renderer) SavePNG(path string) error {
	return r.context.SavePNG(path)
}

// Paint lays a finished box tree onto a fresh canvas sized to the viewport
// bounds and returns the image.
func Paint(root *layout.LayoutBox, bounds geometry.Rect) image.Image {
	renderer := NewRenderer(int(bounds.Width), int(bounds.Height))
	renderer.Render(BuildDisplayList(root))
	return renderer.Image()
}
