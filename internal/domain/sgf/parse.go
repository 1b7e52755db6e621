package sgf

import (
	"fmt"
	"strings"
)

// Parse reads an SGF record into a tree. Only the structure needed to replay
// a game is interpreted: property identifiers, bracketed values with
// backslash escapes, and nested variation trees. Unknown properties are kept
// verbatim in the node property bags.
func Parse(text string) (*SGF, error) {
	p := &parser{input: text}
	p.skipSpace()
	if !p.consume('(') {
		return nil, fmt.Errorf("sgf: expected '(' at offset %d", p.pos)
	}
	root, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	return &SGF{Root: root}, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseTree() (*GameTree, error) {
	tree := &GameTree{}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("sgf: unterminated game tree")
		}
		switch p.input[p.pos] {
		case ';':
			p.pos++
			node, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			tree.Nodes = append(tree.Nodes, node)
		case '(':
			p.pos++
			child, err := p.parseTree()
			if err != nil {
				return nil, err
			}
			tree.Children = append(tree.Children, child)
		case ')':
			p.pos++
			return tree, nil
		default:
			return nil, fmt.Errorf("sgf: unexpected %q at offset %d", p.input[p.pos], p.pos)
		}
	}
}

func (p *parser) parseNode() (Node, error) {
	node := Node{Properties: make(map[string][]string)}
	for {
		p.skipSpace()
		ident := p.readIdent()
		if ident == "" {
			return node, nil
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != '[' {
			return Node{}, fmt.Errorf("sgf: property %s has no value at offset %d", ident, p.pos)
		}
		for p.pos < len(p.input) && p.input[p.pos] == '[' {
			value, err := p.readValue()
			if err != nil {
				return Node{}, err
			}
			node.Properties[ident] = append(node.Properties[ident], value)
			p.skipSpace()
		}
	}
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= 'A' && p.input[p.pos] <= 'Z' {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) readValue() (string, error) {
	p.pos++ // opening '['
	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.input) {
				return "", fmt.Errorf("sgf: dangling escape at offset %d", p.pos)
			}
			b.WriteByte(p.input[p.pos+1])
			p.pos += 2
		case ']':
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("sgf: unterminated property value")
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// Escape quotes a raw string for use as an SGF property value.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `]`, `\]`)
}
