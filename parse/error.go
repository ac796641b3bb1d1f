package parse

import "fmt"

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// ErrLexical means a character fits no expected class at its position.
	ErrLexical ErrorKind = iota
	// ErrType means a qualifier or specifier token was unknown or malformed.
	ErrType
	// ErrSyntax means a delimiter was missing, input ended inside a
	// declaration, or unparsable content followed a complete declaration.
	ErrSyntax
)

func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "lexical error"
	case ErrType:
		return "type error"
	case ErrSyntax:
		return "syntax error"
	}
	return "error"
}

// Pos is a position inside the input buffer.
type Pos struct {
	Off  int
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ParseError describes why and where the transformation was aborted.
type ParseError struct {
	Kind ErrorKind
	Msg  string
	Pos  Pos
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Msg, e.Pos)
}

// posAt computes the line and column of a byte offset. Lines and columns
// are 1-based, columns count bytes.
func posAt(src []byte, off int) Pos {
	if off > len(src) {
		off = len(src)
	}
	pos := Pos{Off: off, Line: 1, Col: 1}
	for _, c := range src[:off] {
		if c == '\n' {
			pos.Line++
			pos.Col = 1
		} else {
			pos.Col++
		}
	}
	return pos
}
