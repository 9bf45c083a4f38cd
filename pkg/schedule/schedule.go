// Package schedule defines the input model for lane timeline charts.
//
// A [Schedule] is an ordered list of [Task] executions. Each task runs on
// one lane for a time interval and may emit [Transmission] messages to
// other lanes. The schedule is supplied already decided: laneplot never
// assigns lanes or times, it only lays out what it is given.
//
// Schedules are plain values. Once built they are treated as immutable by
// every consumer; the layout engine reads them and never writes back.
//
// Order is significant. Tasks keep their insertion order, and a task's
// transmissions are assumed to be listed in time order by the producer.
// Nothing in this module re-sorts either list.
package schedule

import (
	"fmt"
	"slices"
	"strings"
)

// Transmission is a message sent from its owning task to DestLane.
type Transmission struct {
	BeginAt  float64 `json:"begin_at" toml:"begin_at" bson:"begin_at"`
	FinishAt float64 `json:"finish_at" toml:"finish_at" bson:"finish_at"`
	DestLane int     `json:"dest_lane" toml:"dest_lane" bson:"dest_lane"`
}

// Duration returns FinishAt - BeginAt.
func (t Transmission) Duration() float64 { return t.FinishAt - t.BeginAt }

func (t Transmission) String() string {
	return fmt.Sprintf("T(b: %g, f: %g, dest: %d)", t.BeginAt, t.FinishAt, t.DestLane)
}

// Task is one execution interval on one lane.
type Task struct {
	Lane          int            `json:"lane" toml:"lane" bson:"lane"`
	Label         string         `json:"label" toml:"label" bson:"label"`
	BeginAt       float64        `json:"begin_at" toml:"begin_at" bson:"begin_at"`
	FinishAt      float64        `json:"finish_at" toml:"finish_at" bson:"finish_at"`
	Transmissions []Transmission `json:"transmissions,omitempty" toml:"transmission,omitempty" bson:"transmissions,omitempty"`
}

// Duration returns FinishAt - BeginAt.
func (t Task) Duration() float64 { return t.FinishAt - t.BeginAt }

// LastTransmission returns the final transmission in list order.
func (t Task) LastTransmission() (Transmission, bool) {
	if len(t.Transmissions) == 0 {
		return Transmission{}, false
	}
	return t.Transmissions[len(t.Transmissions)-1], true
}

func (t Task) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task(lane: %d, label: %s, b: %g, f: %g, transmissions:", t.Lane, t.Label, t.BeginAt, t.FinishAt)
	if len(t.Transmissions) == 0 {
		b.WriteString(" none")
	}
	for _, tr := range t.Transmissions {
		b.WriteString(" ")
		b.WriteString(tr.String())
	}
	b.WriteString(")")
	return b.String()
}

// Schedule is an ordered sequence of tasks.
type Schedule []Task

// Lanes returns the distinct lanes used by tasks, in ascending order.
// Destination-only lanes are not included.
func (s Schedule) Lanes() []int {
	seen := make(map[int]struct{}, len(s))
	lanes := make([]int, 0, len(s))
	for _, t := range s {
		if _, ok := seen[t.Lane]; ok {
			continue
		}
		seen[t.Lane] = struct{}{}
		lanes = append(lanes, t.Lane)
	}
	slices.Sort(lanes)
	return lanes
}

// TransmissionCount returns the total number of transmissions across tasks.
func (s Schedule) TransmissionCount() int {
	n := 0
	for _, t := range s {
		n += len(t.Transmissions)
	}
	return n
}

// Sample returns the demonstration schedule: three lanes, five tasks and
// three transmissions, with lane 1 running the bulk of the work.
func Sample() Schedule {
	return Schedule{
		{Lane: 1, Label: "A", BeginAt: 0, FinishAt: 2},
		{Lane: 1, Label: "B", BeginAt: 2, FinishAt: 4},
		{Lane: 2, Label: "C", BeginAt: 0, FinishAt: 1.5, Transmissions: []Transmission{
			{BeginAt: 1.5, FinishAt: 3, DestLane: 1},
			{BeginAt: 1.5, FinishAt: 3, DestLane: 3},
		}},
		{Lane: 3, Label: "D", BeginAt: 4, FinishAt: 5, Transmissions: []Transmission{
			{BeginAt: 5, FinishAt: 6, DestLane: 1},
		}},
		{Lane: 1, Label: "E", BeginAt: 6, FinishAt: 7.5},
	}
}
