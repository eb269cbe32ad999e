package jsonc

import "fmt"

// Options gates which JSONC extensions the parser accepts. Parse and
// ParseToValue default every flag to true; ParseStrict and
// ParseToValueStrict default every flag to false. Use an Option to
// override individual flags — this is the "partial option mapping merged
// over its defaults" behavior, expressed as Go functional options rather
// than a pointer-field patch struct.
type Options struct {
	AllowComments                 bool
	AllowTrailingCommas           bool
	AllowMissingCommas            bool
	AllowSingleQuotedStrings      bool
	AllowHexadecimalNumbers       bool
	AllowUnaryPlusNumbers         bool
	AllowLooseObjectPropertyNames bool
}

// DefaultOptions returns every extension enabled, the default for Parse
// and ParseToValue.
func DefaultOptions() Options {
	return Options{
		AllowComments:                 true,
		AllowTrailingCommas:           true,
		AllowMissingCommas:            true,
		AllowSingleQuotedStrings:      true,
		AllowHexadecimalNumbers:       true,
		AllowUnaryPlusNumbers:         true,
		AllowLooseObjectPropertyNames: true,
	}
}

// StrictOptions returns every extension disabled, the default for
// ParseStrict and ParseToValueStrict.
func StrictOptions() Options {
	return Options{}
}

// Option overrides a single flag in an Options value.
type Option func(*Options)

func WithComments(v bool) Option            { return func(o *Options) { o.AllowComments = v } }
func WithTrailingCommas(v bool) Option      { return func(o *Options) { o.AllowTrailingCommas = v } }
func WithMissingCommas(v bool) Option       { return func(o *Options) { o.AllowMissingCommas = v } }
func WithSingleQuotedStrings(v bool) Option {
	return func(o *Options) { o.AllowSingleQuotedStrings = v }
}
func WithHexadecimalNumbers(v bool) Option {
	return func(o *Options) { o.AllowHexadecimalNumbers = v }
}
func WithUnaryPlusNumbers(v bool) Option { return func(o *Options) { o.AllowUnaryPlusNumbers = v } }
func WithLooseObjectPropertyNames(v bool) Option {
	return func(o *Options) { o.AllowLooseObjectPropertyNames = v }
}

func applyOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// Merge returns a copy of o with each Option applied in order, the same
// merge-over-defaults logic Parse and ParseStrict use internally. Host
// code that wants to compose its own option profile ahead of parsing can
// call this directly instead of re-implementing it.
func (o Options) Merge(opts ...Option) Options {
	return applyOptions(o, opts)
}

// Parse parses src as JSONC with every extension enabled by default.
func Parse(src []byte, opts ...Option) (*Root, error) {
	return parseWithOptions(string(src), applyOptions(DefaultOptions(), opts))
}

// ParseStrict parses src as strict JSON, with every extension disabled by
// default.
func ParseStrict(src []byte, opts ...Option) (*Root, error) {
	return parseWithOptions(string(src), applyOptions(StrictOptions(), opts))
}

func parseWithOptions(src string, opts Options) (*Root, error) {
	p := newParser(src, opts)
	return p.parseDocument()
}

// parser builds a lossless CST from a token stream, one token of
// lookahead ahead of the node it is currently building.
type parser struct {
	sc   *scanner
	cur  token
	opts Options
}

func newParser(src string, opts Options) *parser {
	return &parser{sc: newScanner(src, opts), opts: opts}
}

func (p *parser) init() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) advance() (token, error) {
	prev := p.cur
	tok, err := p.sc.next()
	if err != nil {
		return token{}, err
	}
	p.cur = tok
	return prev, nil
}

func (p *parser) at(k tokenKind) bool { return p.cur.kind == k }

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: p.cur.offset, Line: p.cur.line, Column: p.cur.col, Message: fmt.Sprintf(format, args...)}
}

// parseDocument parses root = value? ; attaching every token, including
// surrounding trivia, as a Root child in source order.
func (p *parser) parseDocument() (*Root, error) {
	if err := p.init(); err != nil {
		return nil, err
	}

	root := &Root{baseNode: baseNode{kind: KindRoot}}

	leading, err := p.collectTrivia()
	if err != nil {
		return nil, err
	}
	appendChildren(root, leading)

	if !p.at(tokEOF) {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		appendChild(root, val)
		root.value = val
	}

	trailing, err := p.collectTrivia()
	if err != nil {
		return nil, err
	}
	appendChildren(root, trailing)

	if !p.at(tokEOF) {
		return nil, p.errorf("unexpected content after document value")
	}

	return root, nil
}

// collectTrivia consumes a run of whitespace/newline/comment tokens,
// converting each into a trivia node. Comments are rejected unless
// AllowComments is set.
func (p *parser) collectTrivia() ([]Node, error) {
	var nodes []Node
	for {
		switch p.cur.kind {
		case tokWhitespace:
			tok, err := p.advance()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, newWhitespace(tok.text))
		case tokNewline:
			tok, err := p.advance()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, newNewline(tok.text))
		case tokLineComment:
			if !p.opts.AllowComments {
				return nil, p.errorf("comments are not allowed")
			}
			tok, err := p.advance()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, newLineComment(tok.text))
		case tokBlockComment:
			if !p.opts.AllowComments {
				return nil, p.errorf("comments are not allowed")
			}
			tok, err := p.advance()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, newBlockComment(tok.text))
		default:
			return nodes, nil
		}
	}
}

func (p *parser) parseValue() (Node, error) {
	switch p.cur.kind {
	case tokLBrace:
		return p.parseObject()
	case tokLBracket:
		return p.parseArray()
	case tokString:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return newString(tok.text), nil
	case tokNumber:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return newNumber(tok.text), nil
	case tokBoolean:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return newBoolean(tok.text), nil
	case tokNull:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return newNull(), nil
	default:
		return nil, p.errorf("expected a value")
	}
}

// parseObject parses object = '{' ( prop ( ',' prop )* ','? )? '}' ;
func (p *parser) parseObject() (*Object, error) {
	obj := &Object{baseNode: baseNode{kind: KindObject}}

	open, err := p.advance() // '{'
	if err != nil {
		return nil, err
	}
	appendChild(obj, newToken(KindLBrace, open.text))

	trivia, err := p.collectTrivia()
	if err != nil {
		return nil, err
	}
	appendChildren(obj, trivia)

	for !p.at(tokRBrace) {
		if p.at(tokEOF) {
			return nil, p.errorf("unexpected end of input inside object")
		}

		prop, err := p.parseObjectProperty()
		if err != nil {
			return nil, err
		}
		appendChild(obj, prop)

		trivia, err := p.collectTrivia()
		if err != nil {
			return nil, err
		}
		appendChildren(obj, trivia)

		if p.at(tokComma) {
			commaTok, err := p.advance()
			if err != nil {
				return nil, err
			}
			appendChild(obj, newToken(KindComma, commaTok.text))

			trivia, err := p.collectTrivia()
			if err != nil {
				return nil, err
			}
			appendChildren(obj, trivia)

			if p.at(tokRBrace) && !p.opts.AllowTrailingCommas {
				return nil, p.errorf("trailing comma is not allowed")
			}
			continue
		}

		if p.at(tokRBrace) {
			break
		}

		if !p.opts.AllowMissingCommas {
			return nil, p.errorf("expected ',' between object properties")
		}
	}

	closeTok, err := p.advance() // '}'
	if err != nil {
		return nil, err
	}
	appendChild(obj, newToken(KindRBrace, closeTok.text))

	return obj, nil
}

// parseObjectProperty parses prop = name ':' value ;
func (p *parser) parseObjectProperty() (*ObjectProperty, error) {
	prop := &ObjectProperty{baseNode: baseNode{kind: KindObjectProperty}}

	var name Node
	switch {
	case p.at(tokString):
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		name = newString(tok.text)
	case p.at(tokWord) && p.opts.AllowLooseObjectPropertyNames:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		name = newWord(tok.text)
	case p.at(tokWord):
		return nil, p.errorf("unquoted property names are not allowed")
	default:
		return nil, p.errorf("expected a property name")
	}
	appendChild(prop, name)
	prop.name = name

	trivia, err := p.collectTrivia()
	if err != nil {
		return nil, err
	}
	appendChildren(prop, trivia)

	if !p.at(tokColon) {
		return nil, p.errorf("expected ':' after property name")
	}
	colonTok, err := p.advance()
	if err != nil {
		return nil, err
	}
	appendChild(prop, newToken(KindColon, colonTok.text))

	trivia, err = p.collectTrivia()
	if err != nil {
		return nil, err
	}
	appendChildren(prop, trivia)

	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	appendChild(prop, val)
	prop.value = val

	return prop, nil
}

// parseArray parses array = '[' ( value ( ',' value )* ','? )? ']' ;
func (p *parser) parseArray() (*Array, error) {
	arr := &Array{baseNode: baseNode{kind: KindArray}}

	open, err := p.advance() // '['
	if err != nil {
		return nil, err
	}
	appendChild(arr, newToken(KindLBracket, open.text))

	trivia, err := p.collectTrivia()
	if err != nil {
		return nil, err
	}
	appendChildren(arr, trivia)

	for !p.at(tokRBracket) {
		if p.at(tokEOF) {
			return nil, p.errorf("unexpected end of input inside array")
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		appendChild(arr, val)

		trivia, err := p.collectTrivia()
		if err != nil {
			return nil, err
		}
		appendChildren(arr, trivia)

		if p.at(tokComma) {
			commaTok, err := p.advance()
			if err != nil {
				return nil, err
			}
			appendChild(arr, newToken(KindComma, commaTok.text))

			trivia, err := p.collectTrivia()
			if err != nil {
				return nil, err
			}
			appendChildren(arr, trivia)

			if p.at(tokRBracket) && !p.opts.AllowTrailingCommas {
				return nil, p.errorf("trailing comma is not allowed")
			}
			continue
		}

		if p.at(tokRBracket) {
			break
		}

		if !p.opts.AllowMissingCommas {
			return nil, p.errorf("expected ',' between array elements")
		}
	}

	closeTok, err := p.advance() // ']'
	if err != nil {
		return nil, err
	}
	appendChild(arr, newToken(KindRBracket, closeTok.text))

	return arr, nil
}
