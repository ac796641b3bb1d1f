package main

import (
	"bytes"
	"flag"
	"fmt"
	"github.com/aticu/ldpsc/parse"
	"github.com/aticu/ldpsc/stub"
	"golang.org/x/sync/errgroup"
	"io"
	"os"
)

func printVersion() {
	fmt.Println("ldpsc version 0.2.0")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("ldpsc (ld preload stub creator) turns C prototypes into LD_PRELOAD stubs.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ldpsc [FLAGS] [FILE ...]")
	fmt.Println()
	fmt.Println("Each FILE holds function prototypes, one stub is generated per")
	fmt.Println("prototype. - means stdin, which is also the default.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  LDPSCDEBUG=true enables extended error messages for debugging the parser.")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

type input struct {
	name string
	src  []byte
}

// sourceError ties a parse failure to the input it came from.
type sourceError struct {
	name string
	src  []byte
	err  error
}

func (e *sourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.name, e.err)
}

func (e *sourceError) Unwrap() error {
	return e.err
}

func readInputs(names []string) ([]input, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	inputs := make([]input, len(names))
	for i, name := range names {
		var src []byte
		var err error
		if name == "-" {
			src, err = io.ReadAll(os.Stdin)
		} else {
			src, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %s", name, err)
		}
		inputs[i] = input{name: name, src: src}
	}
	return inputs, nil
}

// parseInputs parses the inputs concurrently. The returned declarations
// keep input order.
func parseInputs(inputs []input) ([]parse.Decl, error) {
	lists := make([][]parse.Decl, len(inputs))
	var g errgroup.Group
	for i, in := range inputs {
		g.Go(func() error {
			decls, err := parse.Parse(in.src)
			if err != nil {
				return &sourceError{name: in.name, src: in.src, err: err}
			}
			lists[i] = decls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var decls []parse.Decl
	for _, l := range lists {
		decls = append(decls, l...)
	}
	return decls, nil
}

func transform(inputs []input, logDest string, out io.Writer) error {
	decls, err := parseInputs(inputs)
	if err != nil {
		return err
	}
	return stub.Emit(decls, logDest, out)
}

func main() {
	flag.Usage = printUsage
	version := flag.Bool("version", false, "Print version info and exit.")
	outputPath := flag.String("o", "-", "File to write output to, - for stdout.")
	logDest := flag.String("log", stub.Stderr, "File the stubs append log lines to, - for stderr.")
	flag.Parse()

	if *version {
		printVersion()
		return
	}

	inputs, err := readInputs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Nothing is written out until the whole transform has succeeded.
	var buf bytes.Buffer
	if err := transform(inputs, *logDest, &buf); err != nil {
		reportError(err)
		os.Exit(1)
	}

	if *outputPath == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := os.WriteFile(*outputPath, buf.Bytes(), 0666); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output file: %s\n", err)
		os.Exit(1)
	}
}
