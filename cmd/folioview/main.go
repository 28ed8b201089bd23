package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"folio/pkg/css"
	"folio/pkg/geometry"
	"folio/pkg/html"
	"folio/pkg/layout"
	"folio/pkg/paint"
)

func main() {
	width := flag.Float64("w", 800, "viewport width in pixels")
	height := flag.Float64("h", 600, "viewport height in pixels")
	htmlPath := flag.String("html", "examples/test.html", "HTML document")
	cssPath := flag.String("css", "examples/test.css", "CSS stylesheet")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: folioview [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	img, err := render(*htmlPath, *cssPath, *width, *height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folioview: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow(fmt.Sprintf("folio — %s", *htmlPath))
	w.Resize(fyne.NewSize(float32(*width), float32(*height)+40))

	canvasImg := canvas.NewImageFromImage(img)
	canvasImg.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel(fmt.Sprintf("%s + %s at %gx%g", *htmlPath, *cssPath, *width, *height))
	w.SetContent(container.NewBorder(nil, status, nil, nil, canvasImg))

	w.ShowAndRun()
}

func render(htmlPath, cssPath string, width, height float64) (image.Image, error) {
	htmlSrc, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, err
	}
	cssSrc, err := os.ReadFile(cssPath)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(string(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", htmlPath, err)
	}
	sheet, err := css.ParseStylesheet(string(cssSrc))
	if err != nil {
		// Malformed rules were skipped; the rest of the sheet still applies.
		fmt.Fprintf(os.Stderr, "folioview: %s: %v\n", cssPath, err)
	}

	styled := css.StyleTree(doc, sheet)
	viewport := layout.Dimensions{Content: geometry.Rect{Width: width, Height: height}}
	root := layout.LayoutTree(styled, viewport)

	return paint.Paint(root, viewport.Content), nil
}
