// Package preload compiles generated stubs into a shared object and runs
// target programs with it preloaded.
package preload

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// Config controls how the stub shared object is produced.
type Config struct {
	// CC is the compile command, rendered with {{.In}} (the C source
	// file) and {{.Out}} (the shared object to produce).
	CC string
	// Timeout bounds the compiler run.
	Timeout time.Duration
}

// DefaultConfig builds with the system C compiler.
var DefaultConfig = Config{
	CC:      "cc -shared -fPIC -o {{.Out}} {{.In}} -ldl",
	Timeout: 30 * time.Second,
}

// Build writes csrc to stubs.c under dir, compiles it into a shared
// object next to it and returns the object's path.
func (c Config) Build(csrc []byte, dir string) (string, error) {
	in := filepath.Join(dir, "stubs.c")
	if err := os.WriteFile(in, csrc, 0666); err != nil {
		return "", err
	}
	out := filepath.Join(dir, "libldpsc.so")
	if err := runWithInOutTemplate(in, out, c.CC, c.Timeout); err != nil {
		return "", fmt.Errorf("compiling %s: %w", in, err)
	}
	return out, nil
}

// Exec runs argv with the shared object preloaded, passing the standard
// streams through. The environment of the current process is inherited.
func Exec(lib string, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command to run")
	}
	c := exec.Command(argv[0], argv[1:]...)
	c.Env = append(os.Environ(), "LD_PRELOAD="+lib)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func renderInOutTemplate(in, out, templ string) (string, error) {
	data := struct{ In, Out string }{In: in, Out: out}
	t, err := template.New("gencmdline").Parse(templ)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func runWithInOutTemplate(in, out, templ string, timeout time.Duration) error {
	cmdline, err := renderInOutTemplate(in, out, templ)
	if err != nil {
		return err
	}
	return runWithTimeout(cmdline, timeout)
}

func runWithTimeout(command string, timeout time.Duration) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("malformed command %q", command)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	c := exec.CommandContext(ctx, args[0], args[1:]...)
	output, err := c.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out", args[0])
	}
	if err != nil {
		if msg := bytes.TrimSpace(output); len(msg) > 0 {
			return fmt.Errorf("%s: %s", err, msg)
		}
		return err
	}
	return nil
}
