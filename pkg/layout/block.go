package layout

import "folio/pkg/css"

// layout lays out a box and its descendants. Inline and anonymous boxes are
// structurally present but not laid out yet — only block boxes take part in
// block formatting.
func (b *LayoutBox) layout(containingBlock Dimensions) {
	switch b.Kind {
	case BlockNode:
		b.layoutBlock(containingBlock)
	case InlineNode, AnonymousBlock:
		// inline formatting is not implemented
	}
}

// layoutBlock lays out a block-level element and its descendants. The order
// is load-bearing: child width depends on this box's width, and this box's
// auto height depends on the children's extents.
func (b *LayoutBox) layoutBlock(containingBlock Dimensions) {
	b.calculateBlockWidth(containingBlock)
	b.calculateBlockPosition(containingBlock)
	b.layoutBlockChildren()
	b.calculateBlockHeight()
}

// calculateBlockWidth resolves the horizontal margins, borders, padding and
// width of a block-level non-replaced element in normal flow.
// http://www.w3.org/TR/CSS2/visudet.html#blockwidth
func (b *LayoutBox) calculateBlockWidth(containingBlock Dimensions) {
	style := b.StyleNode()

	// "width" has initial value "auto"
	auto := css.Keyword("auto")
	width := auto
	if v, ok := style.Value("width"); ok {
		width = v
	}

	// margin, border, and padding have initial value 0
	zero := css.Length(0, css.Px)

	marginLeft := style.Lookup("margin-left", "margin", zero)
	marginRight := style.Lookup("margin-right", "margin", zero)

	borderLeft := style.Lookup("border-left-width", "border-width", zero)
	borderRight := style.Lookup("border-right-width", "border-width", zero)

	paddingLeft := style.Lookup("padding-left", "padding", zero)
	paddingRight := style.Lookup("padding-right", "padding", zero)

	total := marginLeft.ToPx() + marginRight.ToPx() +
		borderLeft.ToPx() + borderRight.ToPx() +
		paddingLeft.ToPx() + paddingRight.ToPx() +
		width.ToPx()

	// If width is not auto and the total is wider than the container, treat
	// auto margins as 0.
	if width != auto && total > containingBlock.Content.Width {
		if marginLeft == auto {
			marginLeft = zero
		}
		if marginRight == auto {
			marginRight = zero
		}
	}

	// Adjust the used values so that the sum above equals the containing
	// width. Each case must increase the total by exactly the underflow.
	underflow := containingBlock.Content.Width - total

	switch {
	// Over-constrained: margin-right absorbs the difference.
	case width != auto && marginLeft != auto && marginRight != auto:
		marginRight = css.Length(marginRight.ToPx()+underflow, css.Px)

	// Exactly one margin is auto: its used value follows from the equality.
	case width != auto && marginLeft != auto && marginRight == auto:
		marginRight = css.Length(underflow, css.Px)
	case width != auto && marginLeft == auto && marginRight != auto:
		marginLeft = css.Length(underflow, css.Px)

	// Width is auto: any remaining auto margins become 0, and the width
	// soaks up the underflow. Width can't go negative, so a negative
	// underflow moves into margin-right instead.
	case width == auto:
		if marginLeft == auto {
			marginLeft = zero
		}
		if marginRight == auto {
			marginRight = zero
		}
		if underflow >= 0 {
			width = css.Length(underflow, css.Px)
		} else {
			width = zero
			marginRight = css.Length(marginRight.ToPx()+underflow, css.Px)
		}

	// Both margins auto: split the underflow evenly.
	case width != auto && marginLeft == auto && marginRight == auto:
		marginLeft = css.Length(underflow/2, css.Px)
		marginRight = css.Length(underflow/2, css.Px)
	}

	d := &b.Dimensions
	d.Content.Width = width.ToPx()

	d.Padding.Left = paddingLeft.ToPx()
	d.Padding.Right = paddingRight.ToPx()

	d.Border.Left = borderLeft.ToPx()
	d.Border.Right = borderRight.ToPx()

	d.Margin.Left = marginLeft.ToPx()
	d.Margin.Right = marginRight.ToPx()
}

// calculateBlockPosition resolves the vertical edges and positions the box
// within its containing block. The containing block's content height is
// still mid-accumulation here, which is exactly what stacks this box below
// its earlier siblings.
// http://www.w3.org/TR/CSS2/visudet.html#normal-block
func (b *LayoutBox) calculateBlockPosition(containingBlock Dimensions) {
	style := b.StyleNode()
	d := &b.Dimensions

	zero := css.Length(0, css.Px)

	// If margin-top or margin-bottom is "auto", the used value is zero.
	d.Margin.Top = style.Lookup("margin-top", "margin", zero).ToPx()
	d.Margin.Bottom = style.Lookup("margin-bottom", "margin", zero).ToPx()

	d.Border.Top = style.Lookup("border-top-width", "border-width", zero).ToPx()
	d.Border.Bottom = style.Lookup("border-bottom-width", "border-width", zero).ToPx()

	d.Padding.Top = style.Lookup("padding-top", "padding", zero).ToPx()
	d.Padding.Bottom = style.Lookup("padding-bottom", "padding", zero).ToPx()

	d.Content.X = containingBlock.Content.X +
		d.Margin.Left + d.Border.Left + d.Padding.Left

	// Position the box below all the previous boxes in the container.
	d.Content.Y = containingBlock.Content.Height + containingBlock.Content.Y +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutBlockChildren lays out each child against this box and accumulates
// their margin-box heights into this box's content height. The accumulator
// doubles as the running y cursor read by calculateBlockPosition.
func (b *LayoutBox) layoutBlockChildren() {
	d := &b.Dimensions
	for _, child := range b.Children {
		child.layout(*d)
		d.Content.Height += child.Dimensions.MarginBox().Height
	}
}

// calculateBlockHeight overrides the accumulated content height when an
// explicit pixel height is set. Otherwise the auto height derived from the
// children stands, and overflow stays visible.
func (b *LayoutBox) calculateBlockHeight() {
	if v, ok := b.StyleNode().Value("height"); ok && v.Kind == css.LengthValue && v.Unit == css.Px {
		b.Dimensions.Content.Height = v.Length
	}
}
