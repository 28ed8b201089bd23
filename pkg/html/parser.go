package html

import (
	"fmt"
	"strings"
	"unicode"
)

// Parser is a recursive-descent parser for the well-formed HTML subset this
// engine renders: balanced tags, quoted attribute values, text runs. It does
// not attempt tag-soup recovery.
type Parser struct {
	input string
	pos   int
}

// Parse parses an HTML document and returns the root element. A document
// with multiple top-level nodes is wrapped in a synthetic <html> element.
func Parse(source string) (*Node, error) {
	p := &Parser{input: source}
	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}

	if len(nodes) == 1 {
		return nodes[0], nil
	}
	root := NewElement("html", map[string]string{})
	for _, node := range nodes {
		root.AddChild(node)
	}
	return root, nil
}

// parseNodes parses a sequence of sibling nodes until EOF or a closing tag.
func (p *Parser) parseNodes() ([]*Node, error) {
	nodes := make([]*Node, 0)
	for {
		p.consumeWhitespace()
		if p.eof() || p.startsWith("</") {
			return nodes, nil
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

func (p *Parser) parseNode() (*Node, error) {
	if p.nextChar() == '<' {
		return p.parseElement()
	}
	return p.parseText(), nil
}

func (p *Parser) parseText() *Node {
	return NewText(p.consumeWhile(func(c byte) bool { return c != '<' }))
}

// parseElement parses an element including its open tag, contents, and
// closing tag.
func (p *Parser) parseElement() (*Node, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	tagName := p.parseTagName()
	if tagName == "" {
		return nil, fmt.Errorf("empty tag name at offset %d", p.pos)
	}
	attributes, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}

	element := NewElement(tagName, attributes)

	children, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		element.AddChild(child)
	}

	if err := p.expect('<'); err != nil {
		return nil, err
	}
	if err := p.expect('/'); err != nil {
		return nil, err
	}
	if closing := p.parseTagName(); closing != tagName {
		return nil, fmt.Errorf("mismatched closing tag </%s> for <%s>", closing, tagName)
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return element, nil
}

func (p *Parser) parseTagName() string {
	return p.consumeWhile(func(c byte) bool {
		return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
	})
}

// parseAttributes parses a list of name="value" pairs, separated by
// whitespace, up to the closing '>'.
func (p *Parser) parseAttributes() (map[string]string, error) {
	attributes := make(map[string]string)
	for {
		p.consumeWhitespace()
		if p.eof() {
			return nil, fmt.Errorf("unexpected end of input in tag")
		}
		if p.nextChar() == '>' {
			return attributes, nil
		}
		name, value, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		attributes[name] = value
	}
}

func (p *Parser) parseAttribute() (string, string, error) {
	name := p.parseTagName()
	if name == "" {
		return "", "", fmt.Errorf("empty attribute name at offset %d", p.pos)
	}
	if err := p.expect('='); err != nil {
		return "", "", err
	}
	value, err := p.parseAttributeValue()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

func (p *Parser) parseAttributeValue() (string, error) {
	if p.eof() {
		return "", fmt.Errorf("unexpected end of input in attribute value")
	}
	quote := p.consumeChar()
	if quote != '"' && quote != '\'' {
		return "", fmt.Errorf("attribute value must be quoted, got %q", quote)
	}
	value := p.consumeWhile(func(c byte) bool { return c != quote })
	if err := p.expect(quote); err != nil {
		return "", err
	}
	return value, nil
}

func (p *Parser) nextChar() byte {
	return p.input[p.pos]
}

func (p *Parser) startsWith(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
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
