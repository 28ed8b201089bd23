package paint

import (
	"image/color"
	"testing"

	"folio/pkg/css"
	"folio/pkg/geometry"
	"folio/pkg/html"
	"folio/pkg/layout"
)

func layoutFixture(t *testing.T, htmlSrc, cssSrc string, width float64) *layout.LayoutBox {
	t.Helper()
	root, err := html.Parse(htmlSrc)
	if err != nil {
		t.Fatalf("html parse error: %v", err)
	}
	stylesheet, err := css.ParseStylesheet(cssSrc)
	if err != nil {
		t.Fatalf("css parse error: %v", err)
	}
	styled := css.StyleTree(root, stylesheet)
	viewport := layout.Dimensions{Content: geometry.Rect{Width: width, Height: 600}}
	return layout.LayoutTree(styled, viewport)
}

func TestBuildDisplayListBackground(t *testing.T) {
	root := layoutFixture(t,
		`<div></div>`,
		`div { display: block; width: 40px; height: 20px; background: #ff0000; }`,
		100)

	list := BuildDisplayList(root)
	if len(list) != 1 {
		t.Fatalf("expected 1 command, got %d", len(list))
	}

	cmd := list[0]
	if cmd.Color != (css.Color{R: 255, A: 255}) {
		t.Errorf("unexpected color: %+v", cmd.Color)
	}
	if cmd.Rect != (geometry.Rect{X: 0, Y: 0, Width: 40, Height: 20}) {
		t.Errorf("unexpected rect: %+v", cmd.Rect)
	}
}

func TestBuildDisplayListBorders(t *testing.T) {
	root := layoutFixture(t,
		`<div></div>`,
		`div { display: block; width: 40px; height: 20px; border-width: 2px; border-color: #00ff00; }`,
		100)

	list := BuildDisplayList(root)
	// No background, four border edges.
	if len(list) != 4 {
		t.Fatalf("expected 4 commands, got %d", len(list))
	}

	left := list[0]
	if left.Rect != (geometry.Rect{X: 0, Y: 0, Width: 2, Height: 24}) {
		t.Errorf("unexpected left border rect: %+v", left.Rect)
	}
	right := list[1]
	if right.Rect != (geometry.Rect{X: 42, Y: 0, Width: 2, Height: 24}) {
		t.Errorf("unexpected right border rect: %+v", right.Rect)
	}
	top := list[2]
	if top.Rect != (geometry.Rect{X: 0, Y: 0, Width: 44, Height: 2}) {
		t.Errorf("unexpected top border rect: %+v", top.Rect)
	}
	bottom := list[3]
	if bottom.Rect != (geometry.Rect{X: 0, Y: 22, Width: 44, Height: 2}) {
		t.Errorf("unexpected bottom border rect: %+v", bottom.Rect)
	}
}

func TestBuildDisplayListParentBeforeChild(t *testing.T) {
	root := layoutFixture(t,
		`<div><p></p></div>`,
		`div { display: block; height: 50px; background: #0000ff; }
		 p { display: block; height: 10px; background: #ffff00; }`,
		100)

	list := BuildDisplayList(root)
	if len(list) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(list))
	}
	if list[0].Color != (css.Color{B: 255, A: 255}) {
		t.Error("parent background should paint first")
	}
	if list[1].Color != (css.Color{R: 255, G: 255, A: 255}) {
		t.Error("child background should paint on top")
	}
}

func TestAnonymousBoxesPaintNothing(t *testing.T) {
	root := layoutFixture(t,
		`<div><span>hi</span></div>`,
		`div { display: block; height: 10px; }`,
		100)

	if list := BuildDisplayList(root); len(list) != 0 {
		t.Errorf("expected no commands, got %d", len(list))
	}
}

func TestPaintPixels(t *testing.T) {
	root := layoutFixture(t,
		`<div></div>`,
		`div { display: block; width: 40px; height: 20px; background: #ff0000; }`,
		100)

	img := Paint(root, geometry.Rect{Width: 100, Height: 50})

	if got := img.Bounds().Dx(); got != 100 {
		t.Fatalf("expected canvas width 100, got %d", got)
	}

	red := color.RGBA{R: 255, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	if got := img.At(10, 10); got != red {
		t.Errorf("expected red inside the box, got %v", got)
	}
	if got := img.At(80, 10); got != white {
		t.Errorf("expected white outside the box, got %v", got)
	}
	if got := img.At(10, 40); got != white {
		t.Errorf("expected white below the box, got %v", got)
	}
}
