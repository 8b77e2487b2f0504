package gml

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/gml/pkg/errors"
)

// Grammar keywords and delimiters.
const (
	kwGraph = "graph"
	kwNode  = "node"
	kwEdge  = "edge"
	tokOpen = "["
	tokEnd  = "]"
	quote   = `"`
)

// Parse builds a Graph from a token stream.
//
// Parsing stops at the first violation and returns a nil Graph with an
// [*errors.Error] carrying the token position. Tokens following the closing
// bracket of the graph block are ignored.
func Parse(toks Tokens) (*Graph, error) {
	if len(toks) == 0 {
		return nil, errors.NewAt(errors.ErrCodeUnexpectedEOF, 0, "empty input")
	}
	p := &parser{toks: toks, g: newGraph()}
	if err := p.parseGraph(); err != nil {
		return nil, err
	}
	return p.g, nil
}

// ParseString tokenizes and parses text.
func ParseString(text string) (*Graph, error) {
	return Parse(Tokenize(text))
}

// ParseFile loads and parses the GML file at path.
func ParseFile(path string) (*Graph, error) {
	toks, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// parser is a single-use cursor over a token stream.
type parser struct {
	toks Tokens
	pos  int
	g    *Graph
}

func (p *parser) current() (string, error) {
	if p.pos >= len(p.toks) {
		return "", errors.NewAt(errors.ErrCodeUnexpectedEOF, p.pos, "unexpected end of input")
	}
	return p.toks[p.pos], nil
}

func (p *parser) advance() { p.pos++ }

// expectOpen consumes `kw [`.
func (p *parser) expectOpen(kw string) error {
	tok, err := p.current()
	if err != nil {
		return err
	}
	if tok != kw {
		return errors.NewAt(errors.ErrCodeSyntax, p.pos, "expected %s keyword, found: %s", kw, tok)
	}
	p.advance()

	tok, err = p.current()
	if err != nil {
		return err
	}
	if tok != tokOpen {
		return errors.NewAt(errors.ErrCodeSyntax, p.pos, "expected opening [, found: %s", tok)
	}
	p.advance()
	return nil
}

// atClose reports whether the cursor sits on `]`.
func (p *parser) atClose() (bool, error) {
	tok, err := p.current()
	if err != nil {
		return false, err
	}
	return tok == tokEnd, nil
}

func (p *parser) parseGraph() error {
	if err := p.expectOpen(kwGraph); err != nil {
		return err
	}

	for {
		tok, err := p.current()
		if err != nil {
			return err
		}
		switch tok {
		case tokEnd:
			p.advance()
			return nil
		case kwNode:
			err = p.parseNode()
		case kwEdge:
			err = p.parseEdge()
		default:
			err = p.parseAttribute(p.g.attrs)
		}
		if err != nil {
			return err
		}
	}
}

// parseBlock reads attributes up to and including the closing bracket and
// returns the bracket's position.
func (p *parser) parseBlock(attrs Attrs) (int, error) {
	for {
		done, err := p.atClose()
		if err != nil {
			return 0, err
		}
		if done {
			closePos := p.pos
			p.advance()
			return closePos, nil
		}
		if err := p.parseAttribute(attrs); err != nil {
			return 0, err
		}
	}
}

func (p *parser) parseNode() error {
	if err := p.expectOpen(kwNode); err != nil {
		return err
	}

	attrs := Attrs{}
	closePos, err := p.parseBlock(attrs)
	if err != nil {
		return err
	}

	id, err := requireInt(attrs, AttrID, "node", closePos)
	if err != nil {
		return err
	}
	if !p.g.declareNode(id, attrs) {
		return errors.NewAt(errors.ErrCodeStructural, closePos, "duplicate id: %d", id)
	}
	return nil
}

func (p *parser) parseEdge() error {
	if err := p.expectOpen(kwEdge); err != nil {
		return err
	}

	attrs := Attrs{}
	closePos, err := p.parseBlock(attrs)
	if err != nil {
		return err
	}

	// Presence is checked for both endpoints before either type.
	for _, key := range []string{AttrSource, AttrTarget} {
		if _, ok := attrs[key]; !ok {
			return errors.NewAt(errors.ErrCodeStructural, closePos, "missing %s", key)
		}
	}
	source, err := requireInt(attrs, AttrSource, "edge", closePos)
	if err != nil {
		return err
	}
	target, err := requireInt(attrs, AttrTarget, "edge", closePos)
	if err != nil {
		return err
	}

	p.g.link(source, target, attrs)
	return nil
}

// requireInt fetches a structural integer attribute.
func requireInt(attrs Attrs, key, block string, pos int) (int, error) {
	v, ok := attrs[key]
	if !ok {
		return 0, errors.NewAt(errors.ErrCodeStructural, pos, "missing %s", key)
	}
	n, ok := v.Int()
	if !ok {
		return 0, errors.NewAt(errors.ErrCodeStructural, pos, "non-integer %s in %s: %s", key, block, v)
	}
	return n, nil
}

// parseAttribute reads one `name value` pair into attrs.
func (p *parser) parseAttribute(attrs Attrs) error {
	name, err := p.current()
	if err != nil {
		return err
	}
	if !isAttrName(name) {
		return errors.NewAt(errors.ErrCodeAttributeName, p.pos, "attribute name is not alphanumeric: %s", name)
	}
	p.advance()

	tok, err := p.current()
	if err != nil {
		return err
	}
	if n, err := strconv.Atoi(tok); err == nil {
		attrs[name] = IntValue(n)
		p.advance()
		return nil
	}
	if !strings.HasPrefix(tok, quote) {
		return errors.NewAt(errors.ErrCodeAttributeValue, p.pos, "attribute value is neither int nor string: %s", tok)
	}

	s, err := p.scanString()
	if err != nil {
		return err
	}
	attrs[name] = StringValue(s)
	return nil
}

// scanString collects tokens from an opening quote through the first token
// ending in a quote and rejoins them with single spaces.
func (p *parser) scanString() (string, error) {
	var parts []string
	for {
		tok, err := p.current()
		if err != nil {
			return "", err
		}
		parts = append(parts, tok)
		p.advance()
		if strings.HasSuffix(tok, quote) {
			break
		}
	}

	s := strings.Join(parts, " ")
	s = strings.TrimPrefix(s, quote)
	s = strings.TrimSuffix(s, quote)
	return s, nil
}

// isAttrName reports whether s is a non-empty run of letters and digits.
func isAttrName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
