package css

import (
	"testing"

	"go.uber.org/multierr"
)

func TestParseStylesheet(t *testing.T) {
	stylesheet, err := ParseStylesheet(`
		div { width: 100px; }
		.highlight { background: #ffcc00; }
		#header, h1 { margin: 8px; display: block; }
	`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(stylesheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(stylesheet.Rules))
	}

	div := stylesheet.Rules[0]
	if len(div.Selectors) != 1 || div.Selectors[0].TagName != "div" {
		t.Error("first rule should have the single selector div")
	}
	if len(div.Declarations) != 1 || div.Declarations[0] != (Declaration{Name: "width", Value: Length(100, Px)}) {
		t.Errorf("unexpected declarations: %+v", div.Declarations)
	}

	highlight := stylesheet.Rules[1]
	want := ColorVal(Color{R: 0xff, G: 0xcc, B: 0x00, A: 255})
	if highlight.Declarations[0].Value != want {
		t.Errorf("expected opaque #ffcc00, got %v", highlight.Declarations[0].Value)
	}

	group := stylesheet.Rules[2]
	if len(group.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(group.Declarations))
	}
	if group.Declarations[1].Value != Keyword("block") {
		t.Errorf("expected keyword block, got %v", group.Declarations[1].Value)
	}
}

func TestParseSortsSelectorsBySpecificity(t *testing.T) {
	stylesheet, err := ParseStylesheet(`span, #main, .note { width: 1px; }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	selectors := stylesheet.Rules[0].Selectors
	if len(selectors) != 3 {
		t.Fatalf("expected 3 selectors, got %d", len(selectors))
	}
	// Highest specificity first: #main, .note, span
	if selectors[0].ID != "main" {
		t.Errorf("expected #main first, got %v", selectors[0])
	}
	if len(selectors[1].Classes) != 1 || selectors[1].Classes[0] != "note" {
		t.Errorf("expected .note second, got %v", selectors[1])
	}
	if selectors[2].TagName != "span" {
		t.Errorf("expected span last, got %v", selectors[2])
	}
}

func TestParseCompoundSelector(t *testing.T) {
	stylesheet, err := ParseStylesheet(`div#main.one.two { width: 1px; }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	sel := stylesheet.Rules[0].Selectors[0]
	if sel.TagName != "div" || sel.ID != "main" {
		t.Errorf("unexpected selector: %+v", sel)
	}
	// Class order as written is preserved.
	if len(sel.Classes) != 2 || sel.Classes[0] != "one" || sel.Classes[1] != "two" {
		t.Errorf("unexpected classes: %v", sel.Classes)
	}
}

func TestParseUniversalSelector(t *testing.T) {
	stylesheet, err := ParseStylesheet(`* { display: block; }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	sel := stylesheet.Rules[0].Selectors[0]
	if sel.TagName != "" || sel.ID != "" || len(sel.Classes) != 0 {
		t.Errorf("universal selector should have no constraints: %+v", sel)
	}
	if sel.Specificity() != (Specificity{}) {
		t.Errorf("universal selector specificity should be (0,0,0)")
	}
}

func TestParseRecoversFromMalformedRule(t *testing.T) {
	stylesheet, err := ParseStylesheet(`
		div { width: 100px; }
		.broken { margin: 12em; }
		p { height: 50px; }
	`)
	if err == nil {
		t.Fatal("expected an error for the unrecognized unit")
	}
	if len(multierr.Errors(err)) != 1 {
		t.Errorf("expected 1 accumulated error, got %d", len(multierr.Errors(err)))
	}

	// The well-formed rules survive, in document order.
	if len(stylesheet.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(stylesheet.Rules))
	}
	if stylesheet.Rules[0].Selectors[0].TagName != "div" {
		t.Error("first surviving rule should be div")
	}
	if stylesheet.Rules[1].Selectors[0].TagName != "p" {
		t.Error("second surviving rule should be p")
	}
}

func TestParseErrorsAccumulate(t *testing.T) {
	_, err := ParseStylesheet(`
		.a { margin: 1em; }
		.b { color: #12; }
	`)
	if len(multierr.Errors(err)) != 2 {
		t.Errorf("expected 2 accumulated errors, got %d", len(multierr.Errors(err)))
	}
}

func TestParseEmptyStylesheet(t *testing.T) {
	stylesheet, err := ParseStylesheet("  \n\t ")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(stylesheet.Rules) != 0 {
		t.Errorf("expected no rules, got %d", len(stylesheet.Rules))
	}
}
