package layout

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/laneplot/pkg/errors"
)

// LaneSlot is one entry of a [LaneProfile]: either a used lane with its
// maximum transmission count, or an unused lane.
type LaneSlot struct {
	used  bool
	count int
}

// Unused is the slot for a lane no task runs on.
var Unused = LaneSlot{}

// Used returns the slot for a lane whose busiest task sends count transmissions.
func Used(count int) LaneSlot { return LaneSlot{used: true, count: count} }

// IsUsed reports whether any task runs on the lane.
func (s LaneSlot) IsUsed() bool { return s.used }

// MaxTransmissions returns the largest transmission count on the lane.
// ok is false for unused lanes.
func (s LaneSlot) MaxTransmissions() (count int, ok bool) { return s.count, s.used }

// Rows returns the lane's row budget for task weight k: count+k when used, 0 otherwise.
func (s LaneSlot) Rows(k int) int {
	if !s.used {
		return 0
	}
	return s.count + k
}

func (s LaneSlot) String() string {
	if !s.used {
		return "unused"
	}
	return fmt.Sprintf("used(%d)", s.count)
}

type laneSlotJSON struct {
	Used             bool `json:"used"`
	MaxTransmissions int  `json:"max_transmissions"`
}

// MarshalJSON encodes the slot as {"used": bool, "max_transmissions": n}.
func (s LaneSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(laneSlotJSON{Used: s.used, MaxTransmissions: s.count})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *LaneSlot) UnmarshalJSON(data []byte) error {
	var v laneSlotJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Used {
		*s = Used(v.MaxTransmissions)
	} else {
		*s = Unused
	}
	return nil
}

// LaneProfile holds one [LaneSlot] per lane index, 0 through MaxLane.
// It is computed once per layout pass and must not be modified afterwards.
type LaneProfile []LaneSlot

// Slot returns the entry for lane, or a LANE_OUT_OF_RANGE error.
func (p LaneProfile) Slot(lane int) (LaneSlot, error) {
	if lane < 0 || lane >= len(p) {
		return Unused, errors.New(errors.ErrCodeLaneOutOfRange, "lane %d not in profile (0..%d)", lane, len(p)-1)
	}
	return p[lane], nil
}

// SumRows returns the total row budget over all used lanes.
func (p LaneProfile) SumRows(k int) int {
	sum := 0
	for _, s := range p {
		sum += s.Rows(k)
	}
	return sum
}

// RowsBefore returns the row offset of lane's block: the summed budget of
// lanes 0..lane-1.
func (p LaneProfile) RowsBefore(lane, k int) (int, error) {
	if _, err := p.Slot(lane); err != nil {
		return 0, err
	}
	return p[:lane].SumRows(k), nil
}

// UsedLanes returns the number of used slots.
func (p LaneProfile) UsedLanes() int {
	n := 0
	for _, s := range p {
		if s.used {
			n++
		}
	}
	return n
}
