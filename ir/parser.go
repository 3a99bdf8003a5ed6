package ir

import (
	"strconv"

	"github.com/pkg/errors"
)

// Parse reads the canonical textual form of a module (see Module.String) and
// rebuilds it.
//
// Operations take their Location from an explicit loc(...) clause when
// present, and from their own position in filename otherwise, so diagnostics
// over a parsed module always point somewhere useful. Every operation kind and
// value type appearing in the text must have been registered; parsing is how
// the textual form round-trips, not a backdoor around registration.
func Parse(filename, src string) (*Module, error) {
	p := &parser{
		s:      scanner{filename: filename, src: src, line: 1, col: 1},
		values: make(map[string]Value),
	}
	return p.parseModule()
}

type parser struct {
	s      scanner
	m      *Module
	values map[string]Value // textual value name -> resolved value.
}

func (p *parser) parseModule() (*Module, error) {
	if err := p.keyword("module"); err != nil {
		return nil, err
	}
	if err := p.s.expect('@'); err != nil {
		return nil, err
	}
	name, err := p.s.ident()
	if err != nil {
		return nil, err
	}
	p.m = NewModule(name)
	if err := p.s.expect('{'); err != nil {
		return nil, err
	}
	if err := p.parseOps(p.m.body); err != nil {
		return nil, err
	}
	if err := p.s.expect('}'); err != nil {
		return nil, err
	}
	p.s.skipSpace()
	if !p.s.eof() {
		return nil, p.s.errorf("unexpected trailing input after module")
	}
	return p.m, nil
}

func (p *parser) keyword(keyword string) error {
	id, err := p.s.ident()
	if err != nil {
		return err
	}
	if id != keyword {
		return p.s.errorf("expected %q, found %q", keyword, id)
	}
	return nil
}

func (p *parser) parseOps(r *Region) error {
	for {
		p.s.skipSpace()
		if p.s.eof() || p.s.peek() == '}' {
			return nil
		}
		if err := p.parseOp(r); err != nil {
			return err
		}
	}
}

func (p *parser) parseOp(r *Region) error {
	p.s.skipSpace()
	opLine, opCol := p.s.line, p.s.col

	var resultName string
	if p.s.peek() == '%' {
		p.s.advance()
		name, err := p.s.ident()
		if err != nil {
			return err
		}
		resultName = name
		if err := p.s.expect('='); err != nil {
			return err
		}
	}

	kindName, err := p.s.stringLit()
	if err != nil {
		return err
	}
	kind, found := OpKindByName(kindName)
	if !found {
		return p.s.errorf("operation kind %q is not registered -- import the dialect package defining it", kindName)
	}
	if kind.Build == nil {
		return p.s.errorf("operation kind %q cannot be built from its textual form", kindName)
	}

	state := &OpState{Kind: kindName, Loc: Loc(p.s.filename, opLine, opCol)}

	// Operands.
	if err := p.s.expect('('); err != nil {
		return err
	}
	p.s.skipSpace()
	for p.s.peek() != ')' {
		if len(state.Operands) > 0 {
			if err := p.s.expect(','); err != nil {
				return err
			}
			p.s.skipSpace()
		}
		if p.s.peek() != '%' {
			return p.s.errorf("expected operand of the form %%name")
		}
		p.s.advance()
		name, err := p.s.ident()
		if err != nil {
			return err
		}
		value, defined := p.values[name]
		if !defined {
			return p.s.errorf("use of undefined value %%%s", name)
		}
		state.Operands = append(state.Operands, value)
		p.s.skipSpace()
	}
	if err := p.s.expect(')'); err != nil {
		return err
	}

	// Attribute dictionary.
	p.s.skipSpace()
	if p.s.peek() == '{' {
		p.s.advance()
		state.Attrs = make(map[string]string)
		p.s.skipSpace()
		for p.s.peek() != '}' {
			if len(state.Attrs) > 0 {
				if err := p.s.expect(','); err != nil {
					return err
				}
			}
			key, err := p.s.ident()
			if err != nil {
				return err
			}
			if err := p.s.expect('='); err != nil {
				return err
			}
			value, err := p.s.stringLit()
			if err != nil {
				return err
			}
			state.Attrs[key] = value
			p.s.skipSpace()
		}
		if err := p.s.expect('}'); err != nil {
			return err
		}
	}

	// A region body follows as "({".
	p.s.skipSpace()
	state.HasRegion = p.s.peek() == '(' && p.s.peekAt(1) == '{'

	op, err := kind.Build(r, state)
	if err != nil {
		return errors.WithMessagef(err, "%s:%d:%d: failed to build %q", p.s.filename, opLine, opCol, kindName)
	}
	if setter, ok := op.(interface{ SetAttr(key, value string) }); ok {
		// Builders consume the attributes they need; the remainder is carried verbatim.
		for key, value := range state.Attrs {
			setter.SetAttr(key, value)
		}
	}

	if state.HasRegion {
		if err := p.s.expect('('); err != nil {
			return err
		}
		if err := p.s.expect('{'); err != nil {
			return err
		}
		if len(op.Regions()) == 0 {
			return p.s.errorf("operation kind %q does not take a region", kindName)
		}
		if err := p.parseOps(op.Regions()[0]); err != nil {
			return err
		}
		if err := p.s.expect('}'); err != nil {
			return err
		}
		if err := p.s.expect(')'); err != nil {
			return err
		}
	}

	// Result type.
	var result Value
	if producer, ok := op.(ValueProducer); ok {
		result = producer.Result()
	}
	p.s.skipSpace()
	if p.s.peek() == ':' {
		p.s.advance()
		if err := p.s.expect('!'); err != nil {
			return err
		}
		typeName, err := p.s.ident()
		if err != nil {
			return err
		}
		typ, registered := TypeByName(typeName)
		if !registered {
			return p.s.errorf("value type !%s is not registered", typeName)
		}
		if result == nil {
			return p.s.errorf("operation kind %q produces no value of type !%s", kindName, typeName)
		}
		if result.Type() != typ {
			return p.s.errorf("operation kind %q produces !%s, not !%s", kindName, result.Type().Name(), typeName)
		}
	} else if result != nil {
		return p.s.errorf("operation kind %q produces a value, expected its result type", kindName)
	}

	// Explicit location.
	p.s.skipSpace()
	if p.s.peek() == 'l' {
		if err := p.keyword("loc"); err != nil {
			return err
		}
		if err := p.s.expect('('); err != nil {
			return err
		}
		file, err := p.s.stringLit()
		if err != nil {
			return err
		}
		if err := p.s.expect(':'); err != nil {
			return err
		}
		line, err := p.s.number()
		if err != nil {
			return err
		}
		if err := p.s.expect(':'); err != nil {
			return err
		}
		col, err := p.s.number()
		if err != nil {
			return err
		}
		if err := p.s.expect(')'); err != nil {
			return err
		}
		if relocatable, ok := op.(interface{ setLoc(loc Location) }); ok {
			relocatable.setLoc(Loc(file, line, col))
		}
	}

	// Bind the result name.
	if resultName != "" {
		if result == nil {
			return p.s.errorf("operation kind %q produces no value to bind to %%%s", kindName, resultName)
		}
		if _, exists := p.values[resultName]; exists {
			return p.s.errorf("value %%%s redefined", resultName)
		}
		p.values[resultName] = result
	}
	return nil
}

// scanner is a minimal byte scanner over the module's textual form, tracking
// line and column so errors and implicit operation locations point at the
// source text.
type scanner struct {
	filename  string
	src       string
	pos       int
	line, col int // 1-based.
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

// peek returns the current byte, or 0 at end of input.
func (s *scanner) peek() byte { return s.peekAt(0) }

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}
	return s.src[s.pos+offset]
}

func (s *scanner) advance() {
	if s.src[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

// skipSpace skips whitespace and "//" line comments.
func (s *scanner) skipSpace() {
	for !s.eof() {
		c := s.peek()
		if c == '/' && s.peekAt(1) == '/' {
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
			continue
		}
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return
		}
		s.advance()
	}
}

func (s *scanner) expect(c byte) error {
	s.skipSpace()
	if s.eof() || s.peek() != c {
		return s.errorf("expected %q", string(c))
	}
	s.advance()
	return nil
}

// ident scans [A-Za-z_][A-Za-z0-9_.]* -- the dot allows dialect-qualified
// names like async.token.
func (s *scanner) ident() (string, error) {
	s.skipSpace()
	start := s.pos
	for !s.eof() {
		c := s.peek()
		isLetter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isTail := s.pos > start && ((c >= '0' && c <= '9') || c == '.')
		if !isLetter && !isTail {
			break
		}
		s.advance()
	}
	if s.pos == start {
		return "", s.errorf("expected identifier")
	}
	return s.src[start:s.pos], nil
}

func (s *scanner) stringLit() (string, error) {
	s.skipSpace()
	if s.peek() != '"' {
		return "", s.errorf("expected string literal")
	}
	quoted, err := strconv.QuotedPrefix(s.src[s.pos:])
	if err != nil {
		return "", s.errorf("malformed string literal")
	}
	value, err := strconv.Unquote(quoted)
	if err != nil {
		return "", s.errorf("malformed string literal")
	}
	for i := 0; i < len(quoted); i++ {
		s.advance()
	}
	return value, nil
}

func (s *scanner) number() (int, error) {
	s.skipSpace()
	start := s.pos
	for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
		s.advance()
	}
	if s.pos == start {
		return 0, s.errorf("expected number")
	}
	value, err := strconv.Atoi(s.src[start:s.pos])
	if err != nil {
		return 0, s.errorf("malformed number")
	}
	return value, nil
}

func (s *scanner) errorf(format string, args ...any) error {
	prefixed := append([]any{s.filename, s.line, s.col}, args...)
	return errors.Errorf("%s:%d:%d: "+format, prefixed...)
}
