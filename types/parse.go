package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/fedcomp/dtypes"
	"github.com/pkg/errors"
)

// Parse parses the textual representation of a type, as rendered by Type.String.
//
// The grammar is:
//
//	type  ::= dtype dims? | type "*" | "(" type? "->" type ")" | "<" (field ("," field)*)? ">"
//	field ::= (name "=")? type
//	dims  ::= "[" (int | "?") ("," (int | "?"))* "]"
//
// Whitespace between tokens is ignored.
func Parse(text string) (Type, error) {
	p := &parser{text: text}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if !p.done() {
		return nil, p.errorf("unexpected trailing text %q", p.text[p.pos:])
	}
	return t, nil
}

// MustParse is the same as Parse, but it panics on error.
func MustParse(text string) Type {
	t, err := Parse(text)
	if err != nil {
		exceptions.Panicf("%+v", err)
	}
	return t
}

type parser struct {
	text string
	pos  int
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.Errorf("types.Parse(%q): position %d: %s", p.text, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) done() bool { return p.pos >= len(p.text) }

func (p *parser) skipSpaces() {
	for !p.done() && unicode.IsSpace(rune(p.text[p.pos])) {
		p.pos++
	}
}

// peek returns whether the next non-space text starts with prefix.
func (p *parser) peek(prefix string) bool {
	p.skipSpaces()
	return strings.HasPrefix(p.text[p.pos:], prefix)
}

// consume advances over prefix if it is next, and returns whether it did.
func (p *parser) consume(prefix string) bool {
	if !p.peek(prefix) {
		return false
	}
	p.pos += len(prefix)
	return true
}

func (p *parser) expect(prefix string) error {
	if !p.consume(prefix) {
		return p.errorf("expected %q", prefix)
	}
	return nil
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *parser) identifier() string {
	p.skipSpaces()
	start := p.pos
	for !p.done() && isIdentChar(p.text[p.pos]) {
		p.pos++
	}
	return p.text[start:p.pos]
}

func (p *parser) parseType() (Type, error) {
	var t Type
	var err error
	switch {
	case p.consume("("):
		t, err = p.parseFunction()
	case p.consume("<"):
		t, err = p.parseStruct()
	default:
		t, err = p.parseTensor()
	}
	if err != nil {
		return nil, err
	}
	for p.consume("*") {
		t = Sequence(t)
	}
	return t, nil
}

func (p *parser) parseFunction() (Type, error) {
	var parameter Type
	if !p.peek("->") {
		var err error
		parameter, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect("->"); err != nil {
		return nil, err
	}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return Function(parameter, result), nil
}

func (p *parser) parseStruct() (Type, error) {
	var fields []Field
	if p.consume(">") {
		return Struct(), nil
	}
	for {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		if p.consume(">") {
			break
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
	t, err := StructOrError(fields...)
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	return t, nil
}

func (p *parser) parseField() (Field, error) {
	// A name is an identifier followed by "=".
	start := p.pos
	name := p.identifier()
	if name != "" && p.consume("=") {
		t, err := p.parseType()
		return Field{Name: name, Type: t}, err
	}
	p.pos = start
	t, err := p.parseType()
	return Field{Type: t}, err
}

func (p *parser) parseTensor() (Type, error) {
	name := p.identifier()
	if name == "" {
		if p.done() {
			return nil, p.errorf("unexpected end of text, expected a type")
		}
		return nil, p.errorf("unexpected character %q, expected a type", p.text[p.pos])
	}
	dtype, found := dtypes.MapOfNames[name]
	if !found {
		return nil, p.errorf("unknown dtype %q", name)
	}
	if !p.consume("[") {
		return Scalar(dtype), nil
	}
	var dims []int
	for {
		if p.consume("?") {
			dims = append(dims, UnknownDim)
		} else {
			digits := p.identifier()
			dim, err := strconv.Atoi(digits)
			if err != nil || dim < 0 {
				return nil, p.errorf("invalid dimension %q", digits)
			}
			dims = append(dims, dim)
		}
		if p.consume("]") {
			break
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
	return TensorOrError(dtype, dims...)
}
