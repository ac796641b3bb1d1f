package preload

import (
	"bytes"
	"github.com/aticu/ldpsc/parse"
	"github.com/aticu/ldpsc/stub"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRenderInOutTemplate(t *testing.T) {
	got, err := renderInOutTemplate("stubs.c", "libldpsc.so", DefaultConfig.CC)
	if err != nil {
		t.Fatal(err)
	}
	want := "cc -shared -fPIC -o libldpsc.so stubs.c -ldl"
	if got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestRenderInOutTemplateMalformed(t *testing.T) {
	if _, err := renderInOutTemplate("a.c", "a.so", "cc {{.In"); err == nil {
		t.Error("malformed template accepted")
	}
}

func TestRunWithTimeoutEmptyCommand(t *testing.T) {
	if err := runWithTimeout("", time.Second); err == nil {
		t.Error("empty command accepted")
	}
}

func TestRunWithTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not found")
	}
	err := runWithTimeout("sleep 5", 50*time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Errorf("got %v, want a timeout", err)
	}
}

func TestExecNoCommand(t *testing.T) {
	if err := Exec("libldpsc.so", nil); err == nil {
		t.Error("empty argv accepted")
	}
}

// Generated stubs must compile with the system C compiler.
func TestBuild(t *testing.T) {
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("cc not found")
	}
	decls, err := parse.Parse([]byte("size_t read(int fd, char *buf, size_t count);"))
	if err != nil {
		t.Fatal(err)
	}
	var csrc bytes.Buffer
	if err := stub.Emit(decls, stub.Stderr, &csrc); err != nil {
		t.Fatal(err)
	}
	lib, err := DefaultConfig.Build(csrc.Bytes(), t.TempDir())
	if err != nil {
		t.Fatalf("Build failed: %s", err)
	}
	if filepath.Base(lib) != "libldpsc.so" {
		t.Errorf("built %s, want libldpsc.so", lib)
	}
	if _, err := os.Stat(lib); err != nil {
		t.Errorf("shared object missing: %s", err)
	}
}
