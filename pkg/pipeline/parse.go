package pipeline

import (
	"bytes"

	"github.com/matzehuels/laneplot/pkg/cache"
	"github.com/matzehuels/laneplot/pkg/errors"
	scheduleio "github.com/matzehuels/laneplot/pkg/io"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// LoadSchedule reads the schedule file at path. An empty path loads the
// built-in sample schedule.
func LoadSchedule(path string) (schedule.Schedule, error) {
	if path == "" {
		return schedule.Sample(), nil
	}
	return scheduleio.Import(path)
}

// ParseSchedule decodes a schedule document in the named format
// ("json", "toml" or "hcl"). An empty format means JSON.
func ParseSchedule(data []byte, format string) (schedule.Schedule, error) {
	f := scheduleio.FormatJSON
	if format != "" {
		var err error
		if f, err = scheduleio.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	return scheduleio.Read(bytes.NewReader(data), f, "schedule."+string(f))
}

// HashSchedule returns the content hash of the schedule's canonical JSON.
// Schedules that differ only in file format hash the same.
func HashSchedule(s schedule.Schedule) (string, error) {
	var buf bytes.Buffer
	if err := scheduleio.WriteJSON(s, &buf); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash schedule")
	}
	return cache.Hash(buf.Bytes()), nil
}
