package stub

import (
	"fmt"
	"github.com/aticu/ldpsc/parse"
	"io"
)

// Stderr is the log destination meaning the target's standard error
// stream. Stubs write to it directly instead of opening a file.
const Stderr = "-"

type emitter struct {
	o   io.Writer
	err error
}

// Emit writes a complete C translation unit to o: the preload prelude
// followed by one interceptor stub per declaration, in declaration order,
// separated by blank lines. logDest is the file the stubs append their
// log lines to, or Stderr.
func Emit(decls []parse.Decl, logDest string, o io.Writer) error {
	e := &emitter{
		o: o,
	}

	e.emit("#define _GNU_SOURCE\n")
	e.emit("#include<dlfcn.h>\n")
	e.emit("#include<stdio.h>\n")

	for i := range decls {
		e.emit("\n")
		e.emitStub(&decls[i], logDest)
	}

	return e.err
}

func (e *emitter) emit(s string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.o, s, args...)
}

func (e *emitter) emiti(s string, args ...interface{}) {
	e.emit("    "+s, args...)
}

// emitSignature renders the declaration header. With asPointer the name
// becomes the function pointer the original implementation is loaded
// into.
func (e *emitter) emitSignature(d *parse.Decl, asPointer bool) {
	if d.Ret.Pointer > 0 {
		e.emit("%s", d.Ret)
	} else {
		e.emit("%s ", d.Ret)
	}
	if asPointer {
		e.emit("(*original_%s)(", d.Name)
	} else {
		e.emit("%s(", d.Name)
	}
	for i := range d.Params {
		if i > 0 {
			e.emit(", ")
		}
		if d.Params[i].Type.Pointer > 0 {
			e.emit("%s%s", d.Params[i].Type, d.Params[i].Name)
		} else {
			e.emit("%s %s", d.Params[i].Type, d.Params[i].Name)
		}
	}
	e.emit(")")
}

func (e *emitter) emitStub(d *parse.Decl, logDest string) {
	keepResult := !d.Ret.IsVoid()

	e.emitSignature(d, false)
	e.emit(" {\n")

	if logDest == Stderr {
		e.emiti("FILE *output = stderr;\n")
	} else {
		e.emiti("FILE *output = fopen(\"%s\", \"a\");\n", logDest)
	}

	e.emit("    ")
	e.emitSignature(d, true)
	e.emit(" = dlsym(RTLD_NEXT, \"%s\");\n", d.Name)

	e.emit("    ")
	if keepResult {
		if d.Ret.Pointer > 0 {
			e.emit("%sresult = ", d.Ret)
		} else {
			e.emit("%s result = ", d.Ret)
		}
	}
	e.emit("original_%s(", d.Name)
	for i := range d.Params {
		if i > 0 {
			e.emit(", ")
		}
		e.emit("%s", d.Params[i].Name)
	}
	e.emit(");\n")

	e.emiti("fprintf(output, \"%s(", d.Name)
	for i := range d.Params {
		if i > 0 {
			e.emit(", ")
		}
		e.emit("%s", formatToken(d.Params[i].Type))
	}
	e.emit(")")
	if keepResult {
		e.emit(" = %s", formatToken(d.Ret))
	}
	e.emit("\\n\"")
	for i := range d.Params {
		e.emit(", %s", d.Params[i].Name)
	}
	if keepResult {
		e.emit(", result")
	}
	e.emit(");\n")

	if logDest != Stderr {
		e.emiti("fclose(output);\n")
	}

	if keepResult {
		e.emiti("return result;\n")
	}

	e.emit("}\n")
}

// formatToken selects the fprintf conversion used to log a value of the
// given type. Unknown value types still log something recognizable.
func formatToken(t parse.Type) string {
	switch {
	case t.Specifier == "char" && t.Pointer == 1:
		return `\"%s\"`
	case t.Pointer > 0:
		return "%p"
	case t.Specifier == "int":
		return "%d"
	case t.Specifier == "size_t":
		return "%zd"
	default:
		return "{Unknown Type: %d}"
	}
}
