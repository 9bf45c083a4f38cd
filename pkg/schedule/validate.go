package schedule

import (
	"math"

	"github.com/matzehuels/laneplot/pkg/errors"
)

// MaxLane is the highest lane index a schedule may use. The layout engine
// allocates one profile slot per lane up to the highest one used.
const MaxLane = 1 << 16

// Validate checks every task and transmission before any layout math runs.
//
// It returns an INVALID_INTERVAL error for a finish time before its begin
// time, a negative begin time, or a NaN/infinite time, and a
// LANE_OUT_OF_RANGE error for a lane or destination lane outside
// 0..[MaxLane]. The
// first offending element is reported; an empty schedule is valid here and
// rejected later by the layout engine as degenerate.
func (s Schedule) Validate() error {
	for i, t := range s {
		if t.Lane < 0 || t.Lane > MaxLane {
			return errors.New(errors.ErrCodeLaneOutOfRange, "task %d (%q): lane %d outside 0..%d", i, t.Label, t.Lane, MaxLane)
		}
		if reason := checkInterval(t.BeginAt, t.FinishAt); reason != "" {
			return errors.New(errors.ErrCodeInvalidInterval, "task %d (%q): %s", i, t.Label, reason)
		}
		for j, tr := range t.Transmissions {
			if tr.DestLane < 0 || tr.DestLane > MaxLane {
				return errors.New(errors.ErrCodeLaneOutOfRange, "task %d (%q) transmission %d: destination lane %d outside 0..%d", i, t.Label, j, tr.DestLane, MaxLane)
			}
			if reason := checkInterval(tr.BeginAt, tr.FinishAt); reason != "" {
				return errors.New(errors.ErrCodeInvalidInterval, "task %d (%q) transmission %d: %s", i, t.Label, j, reason)
			}
		}
	}
	return nil
}

// checkInterval returns the reason an interval is invalid, or "".
func checkInterval(begin, finish float64) string {
	switch {
	case !finite(begin) || !finite(finish):
		return "non-finite time"
	case begin < 0:
		return "negative begin time"
	case finish < begin:
		return "finishes before it begins"
	}
	return ""
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
