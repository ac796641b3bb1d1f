package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"github.com/aticu/ldpsc/parse"
	"github.com/aticu/ldpsc/preload"
	"github.com/aticu/ldpsc/stub"
	"io"
	"os"
	"os/exec"
)

func printVersion() {
	fmt.Println("ldpsc-run version 0.2.0")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ldpsc-run [FLAGS] FILE COMMAND [ARG ...]")
	fmt.Println()
	fmt.Println("Generates stubs from the prototypes in FILE, builds them into a")
	fmt.Println("shared object and runs COMMAND with LD_PRELOAD pointing at it.")
	fmt.Println("- means stdin.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  LDPSCDEBUG=true enables extended error messages for debugging the parser.")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func run(stubsPath string, argv []string, cfg preload.Config, logDest string, keep bool) (int, error) {
	src, err := readInput(stubsPath)
	if err != nil {
		return 1, fmt.Errorf("failed to read %s: %s", stubsPath, err)
	}

	decls, err := parse.Parse(src)
	if err != nil {
		return 1, fmt.Errorf("%s: %s", stubsPath, err)
	}

	var csrc bytes.Buffer
	if err := stub.Emit(decls, logDest, &csrc); err != nil {
		return 1, err
	}

	dir, err := os.MkdirTemp("", "ldpsc")
	if err != nil {
		return 1, err
	}
	if keep {
		fmt.Fprintf(os.Stderr, "build directory: %s\n", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	lib, err := cfg.Build(csrc.Bytes(), dir)
	if err != nil {
		return 1, err
	}

	if err := preload.Exec(lib, argv); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The target already wrote its own diagnostics.
			return exitErr.ExitCode(), nil
		}
		return 1, err
	}
	return 0, nil
}

func main() {
	flag.Usage = printUsage
	version := flag.Bool("version", false, "Print version info and exit.")
	logDest := flag.String("log", stub.Stderr, "File the stubs append log lines to, - for stderr.")
	ccTemplate := flag.String("cc", preload.DefaultConfig.CC, "Compile command `template` for the shared object.")
	keep := flag.Bool("keep", false, "Keep the build directory and print its path.")
	flag.Parse()

	if *version {
		printVersion()
		return
	}
	if flag.NArg() < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := preload.DefaultConfig
	cfg.CC = *ccTemplate

	code, err := run(flag.Arg(0), flag.Args()[1:], cfg, *logDest, *keep)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
