package parse

import "strings"

// Qualifier is one of the C type qualifiers.
type Qualifier int

const (
	Const Qualifier = iota
	Restrict
	Volatile
	Atomic
)

func (q Qualifier) String() string {
	switch q {
	case Const:
		return "const"
	case Restrict:
		return "restrict"
	case Volatile:
		return "volatile"
	case Atomic:
		return "_Atomic"
	}
	return "unknown"
}

var qualifierLUT = map[string]Qualifier{
	"const":    Const,
	"restrict": Restrict,
	"volatile": Volatile,
	"_Atomic":  Atomic,
}

// The supported type specifiers. A type has exactly one, multi keyword
// specifiers like "unsigned long" are deliberately not recognized.
var specifierLUT = map[string]bool{
	"void":     true,
	"char":     true,
	"short":    true,
	"int":      true,
	"long":     true,
	"float":    true,
	"double":   true,
	"signed":   true,
	"unsigned": true,
	"_Bool":    true,
	"_Complex": true,
	"size_t":   true,
}

// Type is a C type within the supported subset: an ordered qualifier
// list, a single specifier keyword and a pointer depth.
type Type struct {
	Qualifiers []Qualifier
	Specifier  string
	Pointer    int
}

// String renders the type as C source, qualifiers first, then the
// specifier, then a space and the pointer stars if there are any.
func (t Type) String() string {
	var b strings.Builder
	for _, q := range t.Qualifiers {
		b.WriteString(q.String())
		b.WriteByte(' ')
	}
	b.WriteString(t.Specifier)
	if t.Pointer > 0 {
		b.WriteByte(' ')
		for i := 0; i < t.Pointer; i++ {
			b.WriteByte('*')
		}
	}
	return b.String()
}

// IsVoid reports whether the type is plain void with no indirection.
func (t Type) IsVoid() bool {
	return t.Specifier == "void" && t.Pointer == 0
}

// Param is a single named function parameter.
type Param struct {
	Type Type
	Name string
}

// Decl is one parsed function prototype.
type Decl struct {
	Ret    Type
	Name   string
	Params []Param
}
