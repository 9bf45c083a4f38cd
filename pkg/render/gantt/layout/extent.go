package layout

import "github.com/matzehuels/laneplot/pkg/schedule"

// Extents are the global measurements of a schedule that fix the scale.
type Extents struct {
	// MaxTime is the right edge of the time axis. See the package
	// documentation for how transmissions contribute to it.
	MaxTime float64 `json:"max_time"`
	// MaxLane is the highest lane index used by a task, or -1 if none.
	MaxLane int `json:"max_lane"`
	// Profile has MaxLane+1 entries.
	Profile LaneProfile `json:"lanes"`
}

// ComputeExtents derives the time extent and lane profile of s.
//
// Each task contributes its own finish time when it has no transmissions,
// and the finish time of its last listed transmission otherwise. The
// largest contribution wins. An empty schedule yields a zero MaxTime and
// an empty profile; callers must not divide by either.
//
// Tasks with a negative lane are left out of the profile. The profile
// grows with the highest lane, so callers must validate first: [Build]
// rejects lanes outside 0..[schedule.MaxLane] before this point.
func ComputeExtents(s schedule.Schedule) Extents {
	ext := Extents{MaxLane: -1}
	for _, t := range s {
		end := t.FinishAt
		if last, ok := t.LastTransmission(); ok {
			end = last.FinishAt
		}
		if end > ext.MaxTime {
			ext.MaxTime = end
		}
		if t.Lane > ext.MaxLane {
			ext.MaxLane = t.Lane
		}
	}

	ext.Profile = make(LaneProfile, ext.MaxLane+1)
	for _, t := range s {
		if t.Lane < 0 {
			continue
		}
		n := len(t.Transmissions)
		if cur, ok := ext.Profile[t.Lane].MaxTransmissions(); !ok || n > cur {
			ext.Profile[t.Lane] = Used(n)
		}
	}
	return ext
}
