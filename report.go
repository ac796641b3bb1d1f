package main

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/aticu/ldpsc/parse"
	"os"
)

// reportError prints err to stderr. For parse errors the offending source
// line is shown with a caret under the reported column.
func reportError(err error) {
	fmt.Fprintln(os.Stderr, err)
	var srcErr *sourceError
	if !errors.As(err, &srcErr) {
		return
	}
	var perr parse.ParseError
	if !errors.As(srcErr.err, &perr) {
		return
	}
	line, ok := sourceLine(srcErr.src, perr.Pos.Line)
	if !ok {
		return
	}
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintf(os.Stderr, "%s\n", line)
	// Tab columns in the padding mirror the source line.
	for i := 0; i < perr.Pos.Col-1; i++ {
		if i < len(line) && line[i] == '\t' {
			fmt.Fprint(os.Stderr, "\t")
		} else {
			fmt.Fprint(os.Stderr, " ")
		}
	}
	fmt.Fprintln(os.Stderr, "^")
}

// sourceLine returns the n-th line of src, 1-based, without the line
// terminator.
func sourceLine(src []byte, n int) ([]byte, bool) {
	lines := bytes.Split(src, []byte("\n"))
	if n < 1 || n > len(lines) {
		return nil, false
	}
	return bytes.TrimSuffix(lines[n-1], []byte("\r")), true
}
