package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// Format is a schedule file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatTOML, FormatHCL}

// ParseFormat parses a format name, with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatJSON, FormatTOML, FormatHCL:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported schedule format: %q (must be json, toml, or hcl)", s)
}

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "%s: missing file extension", path)
	}
	return ParseFormat(ext)
}

type document struct {
	Tasks schedule.Schedule `json:"tasks"`
}

// ReadJSON decodes a JSON schedule document from r.
//
// Unknown fields are rejected so that a misspelled key such as "finsh_at"
// does not silently become a zero time. ReadJSON does not close r.
func ReadJSON(r io.Reader) (schedule.Schedule, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json schedule")
	}
	return doc.Tasks, nil
}

// Read decodes a schedule from r in the given format. name is used in
// HCL diagnostics.
func Read(r io.Reader, f Format, name string) (schedule.Schedule, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatHCL:
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", name)
		}
		return ReadHCL(src, name)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported schedule format: %q", f)
}

// Import reads the schedule file at path, choosing the decoder from its
// extension.
func Import(path string) (schedule.Schedule, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer file.Close()

	s, err := Read(file, f, path)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return s, nil
}
