package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/pipeline"
)

// syncWriter serializes writes from the spinner goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

const sampleGML = `graph [
	label "sample"
	node [ id 1 label "app" ]
	node [ id 2 label "lib" ]
	edge [ source 1 target 2 ]
	edge [ source 2 target 3 label "uses" ]
]`

// isolate points config and cache lookups at fresh temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	captureStatus(t)

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "g.gml", sampleGML)

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"anon": true`},
		{"text", "  node [\n    id 3\n    anon true\n  ]\n"},
		{"dot", `"2" -> "3" [label="uses"];`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "parse", path, "-f", tt.format)
			if err != nil {
				t.Fatalf("parse -f %s: %v", tt.format, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestParseCommandOutputFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "g.gml", sampleGML)
	outPath := filepath.Join(dir, "g.json")

	out, err := execute(t, "parse", path, "-o", outPath)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("stdout should be empty with -o, got %q", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"nodes"`) {
		t.Errorf("output file is not the JSON export:\n%s", data)
	}
}

func TestParseCommandErrors(t *testing.T) {
	dir := isolate(t)
	bad := writeFile(t, dir, "bad.gml", "graph [ node [ label \"x\" ] ]")

	_, err := execute(t, "parse", bad)
	if !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("parse bad.gml = %v, want STRUCTURAL_ERROR", err)
	}

	_, err = execute(t, "parse", bad, "-f", "svg")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("parse -f svg = %v, want INVALID_FORMAT", err)
	}

	_, err = execute(t, "parse", filepath.Join(dir, "missing.gml"))
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("parse missing.gml = %v, want IO_ERROR", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "deps.gml", sampleGML)

	if _, err := execute(t, "render", path, "-f", "dot", "--rankdir", "LR"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "deps.dot"))
	if err != nil {
		t.Fatalf("default output not written: %v", err)
	}
	if !strings.Contains(string(data), "rankdir=LR;") {
		t.Errorf("rankdir flag not applied:\n%s", data)
	}

	out, err := execute(t, "render", path, "-f", "dot", "-o", "-", "--detailed")
	if err != nil {
		t.Fatalf("render -o -: %v", err)
	}
	if !strings.Contains(out, `label="uses"`) {
		t.Errorf("stdout render missing edge label:\n%s", out)
	}

	if _, err := execute(t, "render", path, "-f", "pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("render -f pdf = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderCommandUsesConfig(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "deps.gml", sampleGML)
	cfg := writeFile(t, dir, "gml.toml", "[render]\nrankdir = \"BT\"\n[cache]\nbackend = \"none\"\n")

	out, err := execute(t, "--config", cfg, "render", path, "-f", "dot", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "rankdir=BT;") {
		t.Errorf("config rankdir not applied:\n%s", out)
	}
}

func TestBadConfig(t *testing.T) {
	dir := isolate(t)
	cfg := writeFile(t, dir, "gml.toml", "[log]\nlevel = \"shouty\"\n")

	if _, err := execute(t, "--config", cfg, "cache", "path"); err == nil {
		t.Error("invalid config should fail the command")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "deps.gml", sampleGML)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(dir, "cache", "gml")
	if strings.TrimSpace(out) != cacheDir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), cacheDir)
	}

	if _, err := execute(t, "render", path, "-f", "dot", "-o", "-"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for shell := range completionGenerators {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
		}
		if out == "" {
			t.Errorf("completion %s produced no output", shell)
		}
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input, format, want string
	}{
		{"deps.gml", "svg", "deps.svg"},
		{"dir/graph.v2.gml", "png", "dir/graph.v2.png"},
		{"noext", "dot", "noext.dot"},
	}
	for _, tt := range tests {
		if got := defaultOutputPath(tt.input, tt.format); got != tt.want {
			t.Errorf("defaultOutputPath(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("-"); got != "stdin" {
		t.Errorf("displayName(-) = %q", got)
	}
	if got := displayName("a/b/c.gml"); got != "c.gml" {
		t.Errorf("displayName(a/b/c.gml) = %q", got)
	}
}

func TestSummaryLine(t *testing.T) {
	line := summaryLine(pipeline.Stats{NodeCount: 3, AnonCount: 1, EdgeCount: 1}, true)
	for _, want := range []string{"3 nodes", "1 edge", "1 anonymous", "cached"} {
		if !strings.Contains(line, want) {
			t.Errorf("summaryLine() = %q, missing %q", line, want)
		}
	}
	if strings.Contains(summaryLine(pipeline.Stats{NodeCount: 1}, false), "anonymous") {
		t.Error("summaryLine() should omit a zero anonymous count")
	}
}

func TestErrorContext(t *testing.T) {
	src := []byte("graph [ node [ id 1 ] node [ ] ]")

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"middle", errors.NewAt(errors.ErrCodeStructural, 9, "missing id"), []string{"…", "]", "node"}},
		{"end", errors.NewAt(errors.ErrCodeUnexpectedEOF, 11, "unexpected end of input"), []string{"<end of input>"}},
		{"no position", errors.New(errors.ErrCodeIO, "boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorContext(src, tt.err)
			if tt.want == nil {
				if got != "" {
					t.Errorf("errorContext() = %q, want empty", got)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("errorContext() = %q, missing %q", got, w)
				}
			}
		})
	}
}
