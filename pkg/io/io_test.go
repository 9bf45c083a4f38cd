package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

func TestReadJSON(t *testing.T) {
	src := `{"tasks": [
		{"lane": 2, "label": "C", "begin_at": 0, "finish_at": 1.5,
		 "transmissions": [{"begin_at": 1.5, "finish_at": 3, "dest_lane": 1}]}
	]}`

	s, err := ReadJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	want := schedule.Schedule{{Lane: 2, Label: "C", BeginAt: 0, FinishAt: 1.5, Transmissions: []schedule.Transmission{
		{BeginAt: 1.5, FinishAt: 3, DestLane: 1},
	}}}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("ReadJSON() = %v, want %v", s, want)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"malformed", `{"tasks": [`},
		{"unknown field", `{"tasks": [{"lane": 0, "finsh_at": 2}]}`},
		{"wrong type", `{"tasks": [{"lane": "zero"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.src))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadJSON() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestReadJSONDoesNotValidate(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(`{"tasks": [{"lane": 0, "label": "x", "begin_at": 5, "finish_at": 1}]}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if err := s.Validate(); !errors.Is(err, errors.ErrCodeInvalidInterval) {
		t.Errorf("Validate() error = %v, want INVALID_INTERVAL", err)
	}
}

func TestReadTOML(t *testing.T) {
	src := `
[[task]]
lane = 1
label = "A"
begin_at = 0
finish_at = 2

[[task]]
lane = 3
label = "D"
begin_at = 4.0
finish_at = 5.0

  [[task.transmission]]
  begin_at = 5.0
  finish_at = 6.0
  dest_lane = 1
`
	s, err := ReadTOML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	want := schedule.Schedule{
		{Lane: 1, Label: "A", BeginAt: 0, FinishAt: 2},
		{Lane: 3, Label: "D", BeginAt: 4, FinishAt: 5, Transmissions: []schedule.Transmission{
			{BeginAt: 5, FinishAt: 6, DestLane: 1},
		}},
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("ReadTOML() = %v, want %v", s, want)
	}
}

func TestReadTOMLUnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("[[task]]\nlane = 1\ncolour = \"red\"\n"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("ReadTOML() error = %v, want INVALID_FORMAT", err)
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error %q does not name the unknown key", err)
	}
}

func TestReadHCL(t *testing.T) {
	src := `
task "C" {
  lane      = 2
  begin_at  = 0
  finish_at = 1.5

  transmission {
    begin_at  = 1.5
    finish_at = 3
    dest_lane = 1
  }
  transmission {
    begin_at  = 1.5
    finish_at = 3
    dest_lane = 3
  }
}

task "E" {
  lane      = 1
  begin_at  = 6
  finish_at = 7.5
}
`
	s, err := ReadHCL([]byte(src), "chart.hcl")
	if err != nil {
		t.Fatalf("ReadHCL() error: %v", err)
	}
	sample := schedule.Sample()
	want := schedule.Schedule{sample[2], sample[4]}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("ReadHCL() = %v, want %v", s, want)
	}
}

func TestReadHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `task "A" {`},
		{"missing attribute", `task "A" { lane = 0 }`},
		{"unknown attribute", `task "A" { lane = 0
begin_at = 0
finish_at = 1
color = "red" }`},
		{"missing label", `task { lane = 0 }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHCL([]byte(tt.src), "bad.hcl")
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadHCL() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestWriteRead(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(schedule.Sample(), &buf, f); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			got, err := Read(&buf, f, "sample."+string(f))
			if err != nil {
				t.Fatalf("Read() error: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(got, schedule.Sample()) {
				t.Errorf("Read(Write(sample)) = %v", got)
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"chart.json", "chart.toml", "chart.hcl", "CHART.JSON"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(schedule.Sample(), path); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if !reflect.DeepEqual(got, schedule.Sample()) {
				t.Errorf("Import() = %v", got)
			}
		})
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	yaml := filepath.Join(dir, "chart.yaml")
	if err := os.WriteFile(yaml, []byte("tasks: []"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"unsupported extension", yaml, errors.ErrCodeInvalidFormat},
		{"no extension", filepath.Join(dir, "chart"), errors.ErrCodeInvalidFormat},
		{"missing file", filepath.Join(dir, "missing.json"), errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Import(tt.path); !errors.Is(err, tt.code) {
				t.Errorf("Import(%s) error = %v, want %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"json", ".toml", "HCL"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", in, err)
		}
	}
	if _, err := ParseFormat("yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(yaml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestExampleSchedules(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "schedules")
	want, err := Import(filepath.Join(dir, "etl.json"))
	if err != nil {
		t.Fatalf("Import(etl.json) error: %v", err)
	}
	if err := want.Validate(); err != nil {
		t.Fatalf("etl.json is invalid: %v", err)
	}
	if len(want) != 4 || want.TransmissionCount() != 3 {
		t.Fatalf("etl.json: got %d tasks, %d transmissions", len(want), want.TransmissionCount())
	}

	for _, name := range []string{"etl.toml", "etl.hcl"} {
		t.Run(name, func(t *testing.T) {
			got, err := Import(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Import(%s) = %v, want %v", name, got, want)
			}
		})
	}
}
