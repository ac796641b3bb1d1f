package main

import (
	"bytes"
	"github.com/aticu/ldpsc/stub"
	"os"
	"strings"
	"testing"
)

func stubsToExpectedFile(s string) string {
	return s[0:len(s)-len(".stubs")] + ".expected"
}

func transformTestCase(t *testing.T, stubsfile string, expectedfile string) {
	src, err := os.ReadFile(stubsfile)
	if err != nil {
		t.Fatal(err)
	}
	expected, err := os.ReadFile(expectedfile)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = transform([]input{{name: stubsfile, src: src}}, stub.Stderr, &buf)
	if err != nil {
		t.Errorf("Testfile %s failed because %s", stubsfile, err)
		return
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("Test failed %s:\ngot:\n%s\nexpected:\n%s", stubsfile, buf.Bytes(), expected)
	}
}

func TestTransform(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".stubs") {
			continue
		}
		transformTestCase(t, "testdata/"+name, stubsToExpectedFile("testdata/"+name))
	}
}

func TestTransformKeepsInputOrder(t *testing.T) {
	inputs := []input{
		{name: "a.stubs", src: []byte("void first();\n")},
		{name: "b.stubs", src: []byte("void second();\n")},
		{name: "c.stubs", src: []byte("void third();\n")},
	}
	var buf bytes.Buffer
	if err := transform(inputs, stub.Stderr, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	first := strings.Index(out, "original_first")
	second := strings.Index(out, "original_second")
	third := strings.Index(out, "original_third")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("stubs missing from output:\n%s", out)
	}
	if first > second || second > third {
		t.Errorf("stubs out of input order:\n%s", out)
	}
}

func TestTransformFailureWritesNothing(t *testing.T) {
	inputs := []input{
		{name: "good.stubs", src: []byte("void fine();\n")},
		{name: "bad.stubs", src: []byte("void broken(\n")},
	}
	var buf bytes.Buffer
	err := transform(inputs, stub.Stderr, &buf)
	if err == nil {
		t.Fatal("transform of a broken input succeeded")
	}
	if !strings.Contains(err.Error(), "bad.stubs") {
		t.Errorf("error %q does not name the failing input", err)
	}
	if buf.Len() != 0 {
		t.Errorf("failed transform wrote %d bytes", buf.Len())
	}
}
