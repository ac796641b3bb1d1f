package parse

import (
	"fmt"
	"os"
	"runtime/debug"
)

type parser struct {
	src []byte
	off int
}

type parseErrorBreakOut struct {
	err error
}

// Parse applies the prototype grammar across the whole buffer and returns
// the declarations in source order. Parsing is all or nothing, the first
// failure aborts with a single error and no declarations.
func Parse(src []byte) (decls []Decl, errRet error) {
	p := &parser{src: src}
	defer func() {
		if e := recover(); e != nil {
			peb := e.(parseErrorBreakOut) // Will re-panic if not a breakout.
			decls = nil
			errRet = peb.err
		}
	}()
	for {
		p.skipSpace()
		if p.off == len(p.src) {
			return decls, nil
		}
		decls = append(decls, p.parseDeclaration())
	}
}

func (p *parser) error(kind ErrorKind, m string, vals ...interface{}) {
	p.errorAt(kind, p.off, m, vals...)
}

func (p *parser) errorAt(kind ErrorKind, off int, m string, vals ...interface{}) {
	var err error = ParseError{
		Kind: kind,
		Msg:  fmt.Sprintf(m, vals...),
		Pos:  posAt(p.src, off),
	}
	if os.Getenv("LDPSCDEBUG") == "true" {
		err = fmt.Errorf("%w\n%s", err, debug.Stack())
	}
	panic(parseErrorBreakOut{err})
}

func (p *parser) at(c byte) bool {
	return p.off < len(p.src) && p.src[p.off] == c
}

func (p *parser) expect(c byte) {
	if p.off >= len(p.src) {
		p.error(ErrSyntax, "unexpected end of input, expected '%c'", c)
	}
	if p.src[p.off] != c {
		p.error(ErrSyntax, "expected '%c' got '%c'", c, p.src[p.off])
	}
	p.off++
}

func (p *parser) skipSpace() {
	for p.off < len(p.src) && isWhiteSpace(p.src[p.off]) {
		p.off++
	}
}

func (p *parser) parseIdent() string {
	end, ok := identifier(p.src, p.off)
	if !ok {
		if p.off >= len(p.src) {
			p.error(ErrSyntax, "unexpected end of input, expected identifier")
		}
		p.error(ErrLexical, "expected identifier got '%c'", p.src[p.off])
	}
	name := string(p.src[p.off:end])
	p.off = end
	return name
}

// parseType parses a qualifier list, a single specifier from the supported
// set and the pointer depth, in that order. Pointer stars may be separated
// from the specifier by whitespace but not from each other.
func (p *parser) parseType() Type {
	var ty Type
	for {
		p.skipSpace()
		start := p.off
		end, ok := identifier(p.src, p.off)
		if !ok {
			if p.off >= len(p.src) {
				p.error(ErrSyntax, "unexpected end of input, expected type specifier")
			}
			p.error(ErrType, "expected type specifier got '%c'", p.src[p.off])
		}
		word := string(p.src[start:end])
		if q, isQualifier := qualifierLUT[word]; isQualifier {
			p.off = end
			if p.off >= len(p.src) {
				p.error(ErrSyntax, "unexpected end of input, expected type specifier")
			}
			if !isWhiteSpace(p.src[p.off]) {
				p.error(ErrType, "expected whitespace after qualifier %q", word)
			}
			ty.Qualifiers = append(ty.Qualifiers, q)
			continue
		}
		if !specifierLUT[word] {
			p.errorAt(ErrType, start, "unknown type specifier %q", word)
		}
		ty.Specifier = word
		p.off = end
		break
	}
	p.skipSpace()
	for p.at('*') {
		p.off++
		ty.Pointer++
	}
	return ty
}

// parseDeclaration parses one prototype: return type, function name,
// parameter list and the terminating semicolon.
func (p *parser) parseDeclaration() Decl {
	var d Decl
	d.Ret = p.parseType()
	p.skipSpace()
	d.Name = p.parseIdent()
	p.skipSpace()
	p.expect('(')
	p.skipSpace()
	if !p.at(')') {
		for {
			var prm Param
			prm.Type = p.parseType()
			p.skipSpace()
			prm.Name = p.parseIdent()
			d.Params = append(d.Params, prm)
			p.skipSpace()
			if !p.at(',') {
				break
			}
			p.off++
		}
	}
	p.expect(')')
	p.skipSpace()
	if p.at('{') {
		p.error(ErrSyntax, "expected ';', function bodies are not supported")
	}
	p.expect(';')
	return d
}
