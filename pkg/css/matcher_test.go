package css

import (
	"testing"

	"folio/pkg/html"
)

func TestSpecificityOrdering(t *testing.T) {
	idSel := Selector{ID: "id"}
	classSel := Selector{Classes: []string{"a", "b"}}
	tagSel := Selector{TagName: "div"}

	if got := idSel.Specificity(); got != (Specificity{A: 1}) {
		t.Errorf("#id: expected (1,0,0), got %+v", got)
	}
	if got := classSel.Specificity(); got != (Specificity{B: 2}) {
		t.Errorf(".a.b: expected (0,2,0), got %+v", got)
	}
	if got := tagSel.Specificity(); got != (Specificity{C: 1}) {
		t.Errorf("div: expected (0,0,1), got %+v", got)
	}

	// Lexicographic, id weighted highest: #id > .a.b > div
	if !classSel.Specificity().Less(idSel.Specificity()) {
		t.Error("(0,2,0) should order before (1,0,0)")
	}
	if !tagSel.Specificity().Less(classSel.Specificity()) {
		t.Error("(0,0,1) should order before (0,2,0)")
	}
	if idSel.Specificity().Less(idSel.Specificity()) {
		t.Error("equal specificities should not order before each other")
	}
}

func TestMatchesByID(t *testing.T) {
	node := html.NewElement("p", map[string]string{"id": "id"})

	if !Matches(node, Selector{ID: "id"}) {
		t.Error("#id should match the element with that id")
	}
	if Matches(node, Selector{Classes: []string{"a", "b"}}) {
		t.Error(".a.b should not match an element without those classes")
	}
	if Matches(node, Selector{TagName: "div"}) {
		t.Error("div should not match a p element")
	}
}

func TestMatchesCompound(t *testing.T) {
	node := html.NewElement("div", map[string]string{
		"id":    "container-id",
		"class": "container-class",
	})

	cases := []struct {
		name     string
		selector Selector
		want     bool
	}{
		{"full match", Selector{TagName: "div", ID: "container-id", Classes: []string{"container-class"}}, true},
		{"wrong tag", Selector{TagName: "p", ID: "container-id", Classes: []string{"container-class"}}, false},
		{"wrong id", Selector{TagName: "div", ID: "different-id", Classes: []string{"container-class"}}, false},
		{"wrong class", Selector{TagName: "div", ID: "container-id", Classes: []string{"different-class"}}, false},
		{"universal", Selector{}, true},
	}
	for _, tc := range cases {
		if got := Matches(node, tc.selector); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchesIDAbsent(t *testing.T) {
	node := html.NewElement("div", nil)
	if Matches(node, Selector{ID: "anything"}) {
		t.Error("an element without an id attribute never matches an id selector")
	}
}

func TestMatchesTextNode(t *testing.T) {
	if Matches(html.NewText("hello"), Selector{}) {
		t.Error("text nodes never match, even the universal selector")
	}
}

func TestMatchRuleFirstSelectorWins(t *testing.T) {
	node := html.NewElement("div", map[string]string{
		"id":    "container-id",
		"class": "container-class",
	})
	rule := NewRule(
		[]Selector{
			{Classes: []string{"container-class"}},
			{TagName: "div", ID: "container-id", Classes: []string{"container-class"}},
		},
		[]Declaration{{Name: "width", Value: Length(100, Px)}},
	)

	matched, ok := MatchRule(node, &rule)
	if !ok {
		t.Fatal("rule should match")
	}
	// Selectors are pre-sorted descending, so the first match carries the
	// highest specificity among the matching selectors.
	if matched.Specificity != (Specificity{A: 1, B: 1, C: 1}) {
		t.Errorf("expected specificity (1,1,1), got %+v", matched.Specificity)
	}
}

func TestMatchRuleNoMatch(t *testing.T) {
	node := html.NewElement("span", nil)
	rule := NewRule(
		[]Selector{{TagName: "div"}},
		[]Declaration{{Name: "width", Value: Length(100, Px)}},
	)
	if _, ok := MatchRule(node, &rule); ok {
		t.Error("rule with no matching selector should not match")
	}
}

func TestMatchingRulesDocumentOrder(t *testing.T) {
	node := html.NewElement("div", map[string]string{
		"id":    "container-id",
		"class": "container-class",
	})
	stylesheet := &Stylesheet{Rules: []Rule{
		NewRule(
			[]Selector{{TagName: "div", ID: "container-id", Classes: []string{"container-class"}}},
			[]Declaration{{Name: "width", Value: Length(100, Px)}},
		),
		NewRule(
			[]Selector{{Classes: []string{"container-class"}}},
			[]Declaration{{Name: "background", Value: ColorVal(Color{163, 228, 215, 255})}},
		),
		NewRule(
			[]Selector{{TagName: "span"}},
			[]Declaration{{Name: "height", Value: Length(10, Px)}},
		),
	}}

	matches := MatchingRules(node, stylesheet)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matching rules, got %d", len(matches))
	}
	if matches[0].Specificity != (Specificity{A: 1, B: 1, C: 1}) {
		t.Errorf("first match: expected (1,1,1), got %+v", matches[0].Specificity)
	}
	if matches[1].Specificity != (Specificity{B: 1}) {
		t.Errorf("second match: expected (0,1,0), got %+v", matches[1].Specificity)
	}
}
