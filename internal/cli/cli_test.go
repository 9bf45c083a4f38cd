package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/pipeline"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// runCLI executes the root command with args and returns what it wrote to
// its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisURL, "")

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"render", "layout", "view", "sample", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "", "sample"},
		{"", "plans/run.toml", "plans/run"},
		{"out/chart.svg", "x.json", "out/chart"},
		{"out/chart.txt", "", "out/chart"},
		{"out/chart", "", "out/chart"},
		{"out/chart.v2", "", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths("run.json", "", []string{"svg", "flow"})
	if got["svg"] != "run.svg" || got["flow"] != "run.flow.svg" {
		t.Errorf("outputPaths = %v", got)
	}

	got = outputPaths("run.json", "chart.png", []string{"png"})
	if got["png"] != "chart.png" {
		t.Errorf("single format should use output as is, got %v", got)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "chart")

	if _, err := runCLI(t, "render", "--no-cache", "-f", "svg,txt,json", "-o", base); err != nil {
		t.Fatal(err)
	}
	for _, ext := range []string{"svg", "txt", "json"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := runCLI(t, "render", "--no-cache", "-f", "json", "--row-weight", "2", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"row_weight": 2`) || !strings.Contains(out, `"max_time": 7.5`) {
		t.Errorf("stdout json:\n%s", out)
	}

	if _, err := runCLI(t, "render", "--no-cache", "-f", "svg,json", "-o", "-"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("two formats to stdout = %v, want INVALID_INPUT", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, "render", "--no-cache", "-f", "gif", "-o", filepath.Join(dir, "x")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}

	if _, err := runCLI(t, "render", "--no-cache", filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"tasks":[{"label":"A","lane":0,"begin_at":2,"finish_at":1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "render", "--no-cache", "-o", filepath.Join(dir, "bad.svg"), bad); !errors.Is(err, errors.ErrCodeInvalidInterval) {
		t.Errorf("invalid schedule error = %v", err)
	}
}

func TestRenderCommandUsesCache(t *testing.T) {
	cacheHome := t.TempDir()
	dir := t.TempDir()
	t.Setenv(envRedisURL, "")

	run := func(args ...string) {
		t.Helper()
		t.Setenv("XDG_CACHE_HOME", cacheHome)
		c := New(io.Discard, LogInfo)
		c.out = io.Discard
		root := c.RootCommand()
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	render := []string{"render", "-f", "svg", "-o", filepath.Join(dir, "c.svg")}
	run(render...)
	run(render...)

	entries, err := os.ReadDir(filepath.Join(cacheHome, appName))
	if err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
	if len(entries) == 0 {
		t.Error("cache dir is empty after render")
	}

	run("cache", "clear")
	entries, err = os.ReadDir(filepath.Join(cacheHome, appName))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear", len(entries))
	}
}

func TestSampleCommand(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", `"tasks"`},
		{"json", `"begin_at"`},
		{"toml", "[[task]]"},
		{"hcl", `task "A"`},
	}
	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			args := []string{"sample"}
			if tt.format != "" {
				args = append(args, "-f", tt.format)
			}
			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestSampleRoundTrip(t *testing.T) {
	for _, ext := range []string{"json", "toml", "hcl"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sample."+ext)
			if _, err := runCLI(t, "sample", "-o", path); err != nil {
				t.Fatal(err)
			}
			s, err := pipeline.LoadSchedule(path)
			if err != nil {
				t.Fatal(err)
			}
			want, _ := pipeline.HashSchedule(schedule.Sample())
			got, _ := pipeline.HashSchedule(s)
			if got != want {
				t.Errorf("%s sample does not round-trip", ext)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	out, err := runCLI(t, "layout", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"max time", "7.5", "unused", "Transmissions", "0–80"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "layout", "--no-cache", "--json", "--integer")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"numeric": "integer"`) {
		t.Errorf("json output:\n%s", out)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the program name")
	}
}

func TestChartModel(t *testing.T) {
	l, err := pipeline.BuildLayout(schedule.Sample(), pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	m := newChartModel(l, "sample")

	if v := m.View(); !strings.Contains(v, "waiting") {
		t.Errorf("view before size = %q", v)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(ChartModel)
	v := m.View()
	if !strings.Contains(v, "sample") || !strings.Contains(v, "8 rects") {
		t.Errorf("view header missing:\n%s", v)
	}
	if !strings.Contains(v, "C→1") {
		t.Errorf("view should show labels:\n%s", v)
	}
	if lines := strings.Count(v, "\n"); lines != 20-viewChrome+2 {
		t.Errorf("view has %d newlines, want %d", lines, 20-viewChrome+2)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m = next.(ChartModel)
	if m.Labels || strings.Contains(m.View(), "C→1") {
		t.Error("l should hide labels")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}
