package css

import (
	"fmt"
	"strconv"
	"unicode"

	"go.uber.org/multierr"
)

// Parser parses the stylesheet subset this engine consumes: groups of simple
// selectors and declarations whose values are keywords, px lengths, or
// #rrggbb colors.
type Parser struct {
	input string
	pos   int
}

// ParseStylesheet parses CSS source into a stylesheet. Malformed rules are
// skipped and their errors accumulated; the returned stylesheet holds every
// rule that parsed cleanly, in document order.
func ParseStylesheet(source string) (*Stylesheet, error) {
	p := &Parser{input: source}
	stylesheet := &Stylesheet{Rules: make([]Rule, 0)}

	var errs error
	for {
		p.consumeWhitespace()
		if p.eof() {
			return stylesheet, errs
		}
		rule, err := p.parseRule()
		if err != nil {
			errs = multierr.Append(errs, err)
			p.skipPastRule()
			continue
		}
		stylesheet.Rules = append(stylesheet.Rules, rule)
	}
}

func (p *Parser) parseRule() (Rule, error) {
	selectors, err := p.parseSelectors()
	if err != nil {
		return Rule{}, err
	}
	declarations, err := p.parseDeclarations()
	if err != nil {
		return Rule{}, err
	}
	return NewRule(selectors, declarations), nil
}

// parseSelectors parses a comma-separated selector group up to the opening
// brace. NewRule orders the result by descending specificity.
func (p *Parser) parseSelectors() ([]Selector, error) {
	selectors := make([]Selector, 0, 1)
	for {
		selector, err := p.parseSimpleSelector()
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, selector)
		p.consumeWhitespace()
		if p.eof() {
			return nil, fmt.Errorf("unexpected end of input in selector list")
		}
		switch p.nextChar() {
		case ',':
			p.consumeChar()
			p.consumeWhitespace()
		case '{':
			return selectors, nil
		default:
			return nil, fmt.Errorf("unexpected character %q in selector list at offset %d", p.nextChar(), p.pos)
		}
	}
}

// parseSimpleSelector parses one compound selector, e.g. `div#id.one.two`
// or `*`.
func (p *Parser) parseSimpleSelector() (Selector, error) {
	var selector Selector
	seen := false
	for !p.eof() {
		c := p.nextChar()
		switch {
		case c == '#':
			p.consumeChar()
			id := p.parseIdentifier()
			if id == "" {
				return Selector{}, fmt.Errorf("empty id selector at offset %d", p.pos)
			}
			selector.ID = id
		case c == '.':
			p.consumeChar()
			class := p.parseIdentifier()
			if class == "" {
				return Selector{}, fmt.Errorf("empty class selector at offset %d", p.pos)
			}
			selector.Classes = append(selector.Classes, class)
		case c == '*':
			// universal selector
			p.consumeChar()
		case isIdentifierChar(c):
			selector.TagName = p.parseIdentifier()
		default:
			if !seen {
				return Selector{}, fmt.Errorf("unexpected character %q in selector at offset %d", c, p.pos)
			}
			return selector, nil
		}
		seen = true
	}
	return selector, nil
}

// parseDeclarations parses a `{ ... }` block.
func (p *Parser) parseDeclarations() ([]Declaration, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	declarations := make([]Declaration, 0)
	for {
		p.consumeWhitespace()
		if p.eof() {
			return nil, fmt.Errorf("unclosed declaration block")
		}
		if p.nextChar() == '}' {
			p.consumeChar()
			return declarations, nil
		}
		declaration, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		declarations = append(declarations, declaration)
	}
}

// parseDeclaration parses one `property: value;` pair.
func (p *Parser) parseDeclaration() (Declaration, error) {
	name := p.parseIdentifier()
	if name == "" {
		return Declaration{}, fmt.Errorf("empty property name at offset %d", p.pos)
	}
	p.consumeWhitespace()
	if err := p.expect(':'); err != nil {
		return Declaration{}, err
	}
	p.consumeWhitespace()
	value, err := p.parseValue()
	if err != nil {
		return Declaration{}, fmt.Errorf("property %q: %w", name, err)
	}
	p.consumeWhitespace()
	if err := p.expect(';'); err != nil {
		return Declaration{}, err
	}
	return Declaration{Name: name, Value: value}, nil
}

func (p *Parser) parseValue() (Value, error) {
	if p.eof() {
		return Value{}, fmt.Errorf("missing value")
	}
	c := p.nextChar()
	switch {
	case c >= '0' && c <= '9':
		return p.parseLength()
	case c == '#':
		return p.parseColor()
	default:
		keyword := p.parseIdentifier()
		if keyword == "" {
			return Value{}, fmt.Errorf("unexpected character %q in value at offset %d", c, p.pos)
		}
		return Keyword(keyword), nil
	}
}

func (p *Parser) parseLength() (Value, error) {
	digits := p.consumeWhile(func(c byte) bool {
		return c >= '0' && c <= '9' || c == '.'
	})
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return Value{}, fmt.Errorf("bad number %q: %w", digits, err)
	}
	unit := p.parseIdentifier()
	switch unit {
	case "px":
		return Length(n, Px), nil
	}
	return Value{}, fmt.Errorf("unrecognized unit %q", unit)
}

// parseColor parses a #rrggbb hex color. Hex colors are opaque.
func (p *Parser) parseColor() (Value, error) {
	p.consumeChar() // '#'
	if p.pos+6 > len(p.input) {
		return Value{}, fmt.Errorf("truncated hex color")
	}
	hex := p.input[p.pos : p.pos+6]
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Value{}, fmt.Errorf("bad hex color %q", "#"+hex)
		}
		channels[i] = uint8(n)
	}
	p.pos += 6
	return ColorVal(Color{R: channels[0], G: channels[1], B: channels[2], A: 255}), nil
}

// parseIdentifier consumes a property name or keyword.
func (p *Parser) parseIdentifier() string {
	return p.consumeWhile(isIdentifierChar)
}

// skipPastRule advances beyond the next '}' so parsing can resume after a
// malformed rule.
func (p *Parser) skipPastRule() {
	for !p.eof() {
		if p.consumeChar() == '}' {
			return
		}
	}
}

func isIdentifierChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}

func (p *Parser) nextChar() byte {
	return p.input[p.pos]
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) consumeChar() byte {
	c := p.input[p.pos]
	p.pos++
	return c
}

func (p *Parser) consumeWhile(test func(byte) bool) string {
	start := p.pos
	for !p.eof() && test(p.nextChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *Parser) consumeWhitespace() {
	p.consumeWhile(func(c byte) bool { return unicode.IsSpace(rune(c)) })
}

func (p *Parser) expect(c byte) error {
	if p.eof() {
		return fmt.Errorf("unexpected end of input, expected %q", c)
	}
	if got := p.consumeChar(); got != c {
		return fmt.Errorf("expected %q at offset %d, got %q", c, p.pos-1, got)
	}
	return nil
}
