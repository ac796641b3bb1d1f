package parse

import "testing"

var typeStringTestCases = []struct {
	ty   Type
	want string
}{
	{Type{Specifier: "int"}, "int"},
	{Type{Specifier: "void", Pointer: 1}, "void *"},
	{Type{Specifier: "char", Pointer: 3}, "char ***"},
	{Type{Qualifiers: []Qualifier{Const}, Specifier: "char", Pointer: 1}, "const char *"},
	{Type{Qualifiers: []Qualifier{Const, Volatile, Atomic}, Specifier: "size_t"}, "const volatile _Atomic size_t"},
	{Type{Qualifiers: []Qualifier{Restrict}, Specifier: "float"}, "restrict float"},
}

func TestTypeString(t *testing.T) {
	for _, tc := range typeStringTestCases {
		if got := tc.ty.String(); got != tc.want {
			t.Errorf("Type.String() = %q, want %q", got, tc.want)
		}
	}
}

func TestIsVoid(t *testing.T) {
	if !(Type{Specifier: "void"}).IsVoid() {
		t.Error("void does not report IsVoid")
	}
	if (Type{Specifier: "void", Pointer: 1}).IsVoid() {
		t.Error("void * reports IsVoid")
	}
	if (Type{Specifier: "int"}).IsVoid() {
		t.Error("int reports IsVoid")
	}
}
