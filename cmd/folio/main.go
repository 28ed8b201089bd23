package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"folio/pkg/css"
	"folio/pkg/geometry"
	"folio/pkg/html"
	"folio/pkg/layout"
	"folio/pkg/paint"
	"folio/pkg/script"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// pipeline holds the result of running the full render pipeline on one
// HTML/CSS input pair.
type pipeline struct {
	doc    *html.Node
	styled *css.StyledNode
	root   *layout.LayoutBox
	bounds geometry.Rect
}

func runPipeline(cmd *cli.Command, log *zap.Logger) (*pipeline, error) {
	htmlPath := cmd.String("html")
	cssPath := cmd.String("css")

	htmlSrc, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read HTML input: %w", err)
	}
	cssSrc, err := os.ReadFile(cssPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read CSS input: %w", err)
	}

	doc, err := html.Parse(string(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", htmlPath, err)
	}

	stylesheet, err := css.ParseStylesheet(string(cssSrc))
	if err != nil {
		// Malformed rules are skipped, not fatal; the rest of the sheet
		// still applies.
		log.Warn("Stylesheet has malformed rules", zap.String("file", cssPath), zap.Error(err))
	}
	log.Debug("Parsed inputs",
		zap.String("html", htmlPath),
		zap.String("css", cssPath),
		zap.Int("rules", len(stylesheet.Rules)))

	styled := css.StyleTree(doc, stylesheet)

	bounds := geometry.Rect{
		Width:  cmd.Float("width"),
		Height: cmd.Float("height"),
	}
	viewport := layout.Dimensions{Content: bounds}
	root := layout.LayoutTree(styled, viewport)

	log.Debug("Layout finished", zap.Int("boxes", countBoxes(root)))

	return &pipeline{doc: doc, styled: styled, root: root, bounds: bounds}, nil
}

func countBoxes(box *layout.LayoutBox) int {
	count := 1
	for _, child := range box.Children {
		count += countBoxes(child)
	}
	return count
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer log.Sync()

	p, err := runPipeline(cmd, log)
	if err != nil {
		return err
	}

	renderer := paint.NewRenderer(int(p.bounds.Width), int(p.bounds.Height))
	renderer.Render(paint.BuildDisplayList(p.root))

	out := cmd.String("out")
	if err := renderer.SavePNG(out); err != nil {
		return fmt.Errorf("unable to save output: %w", err)
	}
	log.Info("Saved render", zap.String("out", out),
		zap.Float64("width", p.bounds.Width), zap.Float64("height", p.bounds.Height))
	return nil
}

func treeAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer log.Sync()

	p, err := runPipeline(cmd, log)
	if err != nil {
		return err
	}

	var sb strings.Builder
	dumpBoxTree(&sb, p.root, 0)
	fmt.Print(sb.String())
	return nil
}

// dumpBoxTree writes one line per box: kind, tag when present, and the
// content rectangle.
func dumpBoxTree(sb *strings.Builder, box *layout.LayoutBox, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(box.Kind.String())
	if box.Kind != layout.AnonymousBlock {
		node := box.StyleNode().Node
		if node.Type == html.ElementNode {
			fmt.Fprintf(sb, " <%s>", node.TagName)
		} else {
			sb.WriteString(" #text")
		}
	}
	c := box.Dimensions.Content
	fmt.Fprintf(sb, " (%g, %g) %gx%g\n", c.X, c.Y, c.Width, c.Height)
	for _, child := range box.Children {
		dumpBoxTree(sb, child, indent+1)
	}
}

func inspectAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer log.Sync()

	src := cmd.String("eval")
	if file := cmd.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("unable to read script: %w", err)
		}
		src = string(data)
	}
	if src == "" {
		return fmt.Errorf("nothing to run: pass --eval or --file")
	}

	p, err := runPipeline(cmd, log)
	if err != nil {
		return err
	}

	engine := script.New(p.doc, p.root)
	value, err := engine.Run(src)
	if err != nil {
		return err
	}
	fmt.Println(value.String())
	return nil
}

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "html", Value: "examples/test.html", Usage: "HTML document `FILE`"},
		&cli.StringFlag{Name: "css", Value: "examples/test.css", Usage: "CSS stylesheet `FILE`"},
		&cli.FloatFlag{Name: "width", Value: 800, Usage: "viewport width in px"},
		&cli.FloatFlag{Name: "height", Value: 600, Usage: "viewport height in px"},
	}
}

func main() {
	app := &cli.Command{
		Name:            "folio",
		Usage:           "style, lay out and paint HTML + CSS into solid-color rectangles",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:   "render",
				Usage:  "Render the document to a PNG file",
				Action: renderAction,
				Flags: append(inputFlags(),
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "output.png", Usage: "output PNG `FILE`"},
				),
			},
			{
				Name:   "tree",
				Usage:  "Print the laid-out box tree",
				Action: treeAction,
				Flags:  inputFlags(),
			},
			{
				Name:   "inspect",
				Usage:  "Run a JavaScript snippet against the document and box tree",
				Action: inspectAction,
				Flags: append(inputFlags(),
					&cli.StringFlag{Name: "eval", Aliases: []string{"e"}, Usage: "inline `SCRIPT` to evaluate"},
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "script `FILE` to evaluate"},
				),
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}
}
