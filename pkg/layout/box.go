// Package layout turns a styled tree into a tree of positioned, sized boxes
// using the CSS block formatting algorithm. All sizes are in px.
package layout

import (
	"folio/pkg/css"
	"folio/pkg/geometry"
)

// Dimensions describes one box: its content rectangle plus the padding,
// border and margin edge sizes. The derived boxes are always recomputed from
// these four stored quantities, never cached.
type Dimensions struct {
	// Position of the content area relative to the document origin
	Content geometry.Rect
	// Surrounding edges
	Padding geometry.EdgeSizes
	Border  geometry.EdgeSizes
	Margin  geometry.EdgeSizes
}

// PaddingBox is the area covered by the content area plus its padding.
func (d Dimensions) PaddingBox() geometry.Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox is the area covered by the content area plus padding and borders.
func (d Dimensions) BorderBox() geometry.Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox is the area covered by the content area plus padding, borders,
// and margin.
func (d Dimensions) MarginBox() geometry.Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// BoxKind discriminates the layout box variants.
type BoxKind int

const (
	BlockNode BoxKind = iota
	InlineNode
	AnonymousBlock
)

func (k BoxKind) String() string {
	switch k {
	case BlockNode:
		return "block"
	case InlineNode:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	}
	return "unknown"
}

// LayoutBox is a node in the layout tree. It is built in two phases: tree
// construction fixes the shape with zeroed dimensions, then layout populates
// the dimensions without changing the structure.
type LayoutBox struct {
	Dimensions Dimensions
	Kind       BoxKind
	Children   []*LayoutBox

	// Non-owning back-reference to the styled node; nil for anonymous boxes.
	styled *css.StyledNode
}

// NewLayoutBox creates an empty box of the given kind. Anonymous blocks
// carry no styled node.
func NewLayoutBox(kind BoxKind, styled *css.StyledNode) *LayoutBox {
	return &LayoutBox{Kind: kind, styled: styled, Children: make([]*LayoutBox, 0)}
}

// StyleNode returns the styled node this box was generated from. Anonymous
// blocks have none; asking is a construction bug, so it panics.
func (b *LayoutBox) StyleNode() *css.StyledNode {
	if b.Kind == AnonymousBlock {
		panic("layout: anonymous block box has no style node")
	}
	return b.styled
}

// BuildLayoutTree builds the box tree for a styled subtree without
// performing any layout. The root must not be display:none; children that
// are display:none are dropped entirely.
func BuildLayoutTree(styleNode *css.StyledNode) *LayoutBox {
	var root *LayoutBox
	switch styleNode.Display() {
	case css.DisplayBlock:
		root = NewLayoutBox(BlockNode, styleNode)
	case css.DisplayInline:
		root = NewLayoutBox(InlineNode, styleNode)
	case css.DisplayNone:
		panic("layout: root node has display: none")
	}

	for _, child := range styleNode.Children {
		switch child.Display() {
		case css.DisplayBlock:
			root.Children = append(root.Children, BuildLayoutTree(child))
		case css.DisplayInline:
			container := root.inlineContainer()
			container.Children = append(container.Children, BuildLayoutTree(child))
		case css.DisplayNone:
			// no box at all
		}
	}
	return root
}

// inlineContainer returns the box a new inline child should be appended to.
// Inline and anonymous boxes take inline children directly. A block box
// groups consecutive inline children into an anonymous block: the last
// anonymous child is reused, otherwise a fresh one is appended. A block
// sibling in between breaks the run, so separate inline runs get separate
// anonymous boxes.
func (b *LayoutBox) inlineContainer() *LayoutBox {
	if b.Kind == InlineNode || b.Kind == AnonymousBlock {
		return b
	}
	if n := len(b.Children); n > 0 && b.Children[n-1].Kind == AnonymousBlock {
		return b.Children[n-1]
	}
	anon := NewLayoutBox(AnonymousBlock, nil)
	b.Children = append(b.Children, anon)
	return anon
}

// LayoutTree builds and lays out the box tree for a styled tree. The
// containing block's content height starts at 0: a root has no prior
// siblings to stack below.
func LayoutTree(styleNode *css.StyledNode, containingBlock Dimensions) *LayoutBox {
	containingBlock.Content.Height = 0

	root := BuildLayoutTree(styleNode)
	root.layout(containingBlock)
	return root
}
