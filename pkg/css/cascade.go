package css

import (
	"sort"

	"folio/pkg/html"
)

// PropertyMap maps property names to their cascaded values.
type PropertyMap map[string]Value

// StyledNode wraps a DOM node with its resolved properties. The node
// reference is non-owning; the styled tree mirrors the DOM tree's child
// order exactly and is immutable after construction.
type StyledNode struct {
	Node            *html.Node
	SpecifiedValues PropertyMap
	Children        []*StyledNode
}

// Value returns the specified value of a property, if any.
func (sn *StyledNode) Value(name string) (Value, bool) {
	v, ok := sn.SpecifiedValues[name]
	return v, ok
}

// Lookup returns the value of name, else of fallback, else the default.
// The fallback step covers shorthand properties ("margin" behind
// "margin-left"); it never consults inherited values, since inheritance
// is not implemented.
func (sn *StyledNode) Lookup(name, fallback string, def Value) Value {
	if v, ok := sn.Value(name); ok {
		return v
	}
	if v, ok := sn.Value(fallback); ok {
		return v
	}
	return def
}

// Display is the resolved display mode of a styled node.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

// Display returns the node's display mode. Only the keywords "block" and
// "none" are recognized; anything else, including absence, is inline.
func (sn *StyledNode) Display() Display {
	v, ok := sn.Value("display")
	if !ok || v.Kind != KeywordValue {
		return DisplayInline
	}
	switch v.Keyword {
	case "block":
		return DisplayBlock
	case "none":
		return DisplayNone
	}
	return DisplayInline
}

// SpecifiedValues runs the cascade for one element: collect matching rules,
// sort ascending by specificity keeping document order for ties, then apply
// declarations in order so stronger rules overwrite weaker ones.
func SpecifiedValues(node *html.Node, stylesheet *Stylesheet) PropertyMap {
	values := make(PropertyMap)
	rules := MatchingRules(node, stylesheet)

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Specificity.Less(rules[j].Specificity)
	})

	for _, matched := range rules {
		for _, declaration := range matched.Rule.Declarations {
			values[declaration.Name] = declaration.Value
		}
	}
	return values
}

// StyleTree mirrors the DOM tree into a styled tree, depth-first in child
// order. Element nodes get their cascaded properties; text nodes get an
// empty map.
func StyleTree(node *html.Node, stylesheet *Stylesheet) *StyledNode {
	styled := &StyledNode{
		Node:            node,
		SpecifiedValues: make(PropertyMap),
		Children:        make([]*StyledNode, 0, len(node.Children)),
	}
	if node.Type == html.ElementNode {
		styled.SpecifiedValues = SpecifiedValues(node, stylesheet)
	}
	for _, child := range node.Children {
		styled.Children = append(styled.Children, StyleTree(child, stylesheet))
	}
	return styled
}
