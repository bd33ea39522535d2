package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/agentsmd/pkg/errors"
)

// Parse parses a complete guard expression. Surrounding whitespace is
// ignored; anything left over after a complete expression is an error.
func Parse(src string) (Expr, error) {
	p := &parser{src: src}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if !p.eof() {
		return nil, p.errorf("trailing characters in expression")
	}
	return e, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) *errors.Error {
	return errors.Newf(errors.ErrParse, format, args...).WithDetail("offset", p.pos)
}

// OrExpr := AndExpr ( '||' AndExpr )*
func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWS()
		if !p.consume("||") {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
}

// AndExpr := NotExpr ( '&&' NotExpr )*
func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWS()
		if !p.consume("&&") {
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
}

// NotExpr := '!' NotExpr | Primary
func (p *parser) parseNot() (Expr, error) {
	p.skipWS()
	if p.consume("!") {
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not(inner), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	p.skipWS()
	if p.consume("(") {
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if !p.consume(")") {
			return nil, p.errorf("expected ')'")
		}
		return e, nil
	}

	switch {
	case p.consumeKeyword("exists"):
		arg, err := p.parseParenString()
		if err != nil {
			return nil, err
		}
		return Match(Exists{Pattern: arg}), nil
	case p.consumeKeyword("lang"):
		arg, err := p.parseParenString()
		if err != nil {
			return nil, err
		}
		return Match(Lang{Name: arg}), nil
	case p.consumeKeyword("env"):
		m, err := p.parseEnv()
		if err != nil {
			return nil, err
		}
		return Match(m), nil
	}

	return nil, p.errorf("expected matcher or '('")
}

func (p *parser) parseParenString() (string, error) {
	p.skipWS()
	if !p.consume("(") {
		return "", p.errorf("expected '('")
	}
	p.skipWS()
	s, err := p.parseStringLike(")")
	if err != nil {
		return "", err
	}
	p.skipWS()
	if !p.consume(")") {
		return "", p.errorf("expected ')'")
	}
	return s, nil
}

// EnvArg := Name [ '=' StringLike ]
func (p *parser) parseEnv() (Matcher, error) {
	p.skipWS()
	if !p.consume("(") {
		return nil, p.errorf("expected '(' after env")
	}
	p.skipWS()
	if p.eof() {
		return nil, p.errorf("missing ')' in expression")
	}
	if p.peek() == ')' {
		return nil, p.errorf("empty env() argument")
	}

	name, err := p.parseStringLike("=)")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, p.errorf("empty env var name")
	}

	p.skipWS()
	if !p.consume("=") {
		if !p.consume(")") {
			return nil, p.errorf("expected ')'")
		}
		return EnvExists{Name: name}, nil
	}

	p.skipWS()
	value := ""
	if p.peek() != ')' {
		value, err = p.parseStringLike(")")
		if err != nil {
			return nil, err
		}
	}
	p.skipWS()
	if !p.consume(")") {
		return nil, p.errorf("expected ')'")
	}
	return EnvEquals{Name: name, Value: value}, nil
}

// parseStringLike reads a quoted, raw or bare string. Bare strings stop at
// whitespace or any rune in stop.
func (p *parser) parseStringLike(stop string) (string, error) {
	switch {
	case p.peek() == '"' || p.peek() == '\'':
		return p.parseQuoted()
	case strings.HasPrefix(p.src[p.pos:], `r"`):
		p.pos++
		return p.parseRaw()
	}

	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if unicode.IsSpace(r) || strings.ContainsRune(stop, r) {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		// An empty name is reported by the caller with a better message.
		if strings.ContainsRune(stop, '=') && p.peek() == '=' {
			return "", nil
		}
		return "", p.errorf("expected string")
	}
	return p.src[start:p.pos], nil
}

func (p *parser) parseQuoted() (string, error) {
	quote, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size

	var b strings.Builder
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		if r == quote {
			return b.String(), nil
		}
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if p.eof() {
			return "", p.errorf("unterminated escape")
		}
		esc, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '\'', '"':
			b.WriteRune(esc)
		default:
			b.WriteByte('\\')
			b.WriteRune(esc)
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *parser) parseRaw() (string, error) {
	if !p.consume(`"`) {
		return "", p.errorf(`expected '"' after r`)
	}
	end := strings.IndexByte(p.src[p.pos:], '"')
	if end < 0 {
		p.pos = len(p.src)
		return "", p.errorf("unterminated raw string")
	}
	s := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return s, nil
}

// consumeKeyword consumes kw only when it is not the prefix of a longer
// identifier, so existsFoo is not read as exists.
func (p *parser) consumeKeyword(kw string) bool {
	if !strings.HasPrefix(p.src[p.pos:], kw) {
		return false
	}
	rest := p.src[p.pos+len(kw):]
	if rest != "" {
		r, _ := utf8.DecodeRuneInString(rest)
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	p.pos += len(kw)
	return true
}

func (p *parser) consume(s string) bool {
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) skipWS() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) peek() rune {
	if p.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}
