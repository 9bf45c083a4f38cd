package io

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

type tomlDocument struct {
	Tasks schedule.Schedule `toml:"task"`
}

// ReadTOML decodes a TOML schedule made of [[task]] tables with nested
// [[task.transmission]] tables. Keys the schedule does not know about are
// an error.
func ReadTOML(r io.Reader) (schedule.Schedule, error) {
	var doc tomlDocument
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml schedule")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "decode toml schedule: unknown keys: %s", strings.Join(keys, ", "))
	}
	return doc.Tasks, nil
}

// WriteTOML encodes s as a TOML schedule.
func WriteTOML(s schedule.Schedule, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(tomlDocument{Tasks: s}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml schedule")
	}
	return nil
}
