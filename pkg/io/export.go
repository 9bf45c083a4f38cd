package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// WriteJSON encodes s as an indented JSON schedule document.
// The output can be re-read with [ReadJSON].
func WriteJSON(s schedule.Schedule, w io.Writer) error {
	if s == nil {
		s = schedule.Schedule{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Tasks: s}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json schedule")
	}
	return nil
}

// Write encodes s to w in the given format.
func Write(s schedule.Schedule, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(s, w)
	case FormatTOML:
		return WriteTOML(s, w)
	case FormatHCL:
		return WriteHCL(s, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported schedule format: %q", f)
}

// Export writes s to path, choosing the encoder from its extension.
func Export(s schedule.Schedule, path string) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := Write(s, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
