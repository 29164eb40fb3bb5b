package mdinclude

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestIncluder(t *testing.T, opts ...Option) (*Includer, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	in, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return in, &logs
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
}

func TestProcess_WholeFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "file"), "a\nb\nc\n")

	in, _ := newTestIncluder(t, WithBasePath(tmpDir))
	got, err := in.Process(context.Background(), []string{"intro", "{!file!}", "outro"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := []string{"intro", "a", "b", "c", "outro"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process() = %q, want %q", got, want)
	}
}

func TestProcess_Selectors(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "tagged"), "x\ntag::T\ny\nz\nend::T\nw\n")
	writeTestFile(t, filepath.Join(tmpDir, "ten"), "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\n")

	tests := []struct {
		name      string
		directive string
		want      []string
	}{
		{name: "tag", directive: "{!tagged!tag=T}", want: []string{"y", "z"}},
		{name: "range", directive: "{!ten!lines=3-5}", want: []string{"l3", "l4", "l5"}},
		{name: "set", directive: "{!ten!lines=5,3,3}", want: []string{"l3", "l5"}},
		{name: "single", directive: "{!ten!lines=10}", want: []string{"l10"}},
	}

	in, _ := newTestIncluder(t, WithBasePath(tmpDir))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := in.Process(context.Background(), []string{tt.directive})
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Process() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcess_MissingEndTag(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "file"), "x\ntag::T\ny\n")

	in, logs := newTestIncluder(t, WithBasePath(tmpDir))
	got, err := in.Process(context.Background(), []string{"{!file!tag=T}"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := []string{"x", "tag::T", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process() = %q, want %q", got, want)
	}
	if !strings.Contains(logs.String(), "end of tag") {
		t.Errorf("expected diagnostic naming the end marker, got:\n%s", logs.String())
	}
}

func TestProcess_Recursive(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "a.md"), "A start\n{!b.md!}\nA end\n")
	writeTestFile(t, filepath.Join(tmpDir, "b.md"), "B\n")

	in, _ := newTestIncluder(t, WithBasePath(tmpDir))
	got, err := in.Process(context.Background(), []string{"{!a.md!}"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := []string{"A start", "B", "A end"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process() = %q, want %q", got, want)
	}
	for _, line := range got {
		if strings.Contains(line, "{!") {
			t.Errorf("residual directive in %q", line)
		}
	}
}

func TestProcess_NonexistentFile(t *testing.T) {
	in, logs := newTestIncluder(t, WithBasePath(t.TempDir()))
	got, err := in.Process(context.Background(), []string{"one", "{!nope.md!}", "two"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := []string{"one", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process() = %q, want %q", got, want)
	}
	if !strings.Contains(logs.String(), "nope.md") {
		t.Errorf("expected diagnostic naming the file, got:\n%s", logs.String())
	}
}

func TestProcess_NoDirectives(t *testing.T) {
	input := []string{"# Heading", "", "Some {text} with ! marks."}
	got, err := Process(context.Background(), input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !reflect.DeepEqual(got, input) {
		t.Errorf("Process() = %q, want %q", got, input)
	}
}

func TestProcessString(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "part.md"), "part\r\n")

	in, _ := newTestIncluder(t, WithBasePath(tmpDir))

	got, err := in.ProcessString(context.Background(), "head\n{!part.md!}\n")
	if err != nil {
		t.Fatalf("ProcessString() error = %v", err)
	}
	if want := "head\npart\n"; got != want {
		t.Errorf("ProcessString() = %q, want %q", got, want)
	}

	got, err = in.ProcessString(context.Background(), "{!part.md!}")
	if err != nil {
		t.Fatalf("ProcessString() error = %v", err)
	}
	if want := "part"; got != want {
		t.Errorf("ProcessString() = %q, want %q", got, want)
	}
}

func TestProcessFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "index.src.md"), "# Doc\n\n{!usage.md!}\n")
	writeTestFile(t, filepath.Join(tmpDir, "usage.md"), "Run it.\n")

	in, _ := newTestIncluder(t)

	out := filepath.Join(tmpDir, "out", "index.md")
	if err := in.ProcessFile(context.Background(), filepath.Join(tmpDir, "index.src.md"), out); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if want := "# Doc\n\nRun it.\n"; string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}

	html := filepath.Join(tmpDir, "index.html")
	if err := in.ProcessFile(context.Background(), filepath.Join(tmpDir, "index.src.md"), html); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	data, err = os.ReadFile(html)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "<p>Run it.</p>") {
		t.Errorf("html output = %q", data)
	}
}

func TestProcessFile_WithValidation(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "api.src.yaml"), `openapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
paths:
{!paths.yaml!}
`)
	writeTestFile(t, filepath.Join(tmpDir, "paths.yaml"), `  /test:
    get:
      summary: Test endpoint
      responses:
        '200':
          description: Success
`)

	in, _ := newTestIncluder(t, WithValidation(true))
	out := filepath.Join(tmpDir, "api.yaml")
	if err := in.ProcessFile(context.Background(), filepath.Join(tmpDir, "api.src.yaml"), out); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if _, err := os.Stat(out); os.IsNotExist(err) {
		t.Fatal("Output file was not created")
	}
}

func TestProcessFile_FileNotFound(t *testing.T) {
	err := ProcessFile(context.Background(), "nonexistent.md", filepath.Join(t.TempDir(), "out.md"))
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
}

func TestNew_UnknownEncoding(t *testing.T) {
	if _, err := New(WithEncoding("klingon")); err == nil {
		t.Error("New() expected error for unknown encoding")
	}
}

func ExampleIncluder_ProcessString() {
	dir, err := os.MkdirTemp("", "mdinclude")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	_ = os.WriteFile(filepath.Join(dir, "hello.go"), []byte(`package main

// tag::main
func main() {}
// end::main
`), 0644)

	in, err := New(WithBasePath(dir))
	if err != nil {
		panic(err)
	}
	out, err := in.ProcessString(context.Background(), "```go\n{! hello.go !tag=main}\n```\n")
	if err != nil {
		panic(err)
	}
	fmt.Print(out)
	// Output:
	// ```go
	// func main() {}
	// ```
}
