package schedule

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/laneplot/pkg/errors"
)

func TestTaskString(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{
			name: "no transmissions",
			task: Task{Lane: 1, Label: "A", BeginAt: 0, FinishAt: 2},
			want: "Task(lane: 1, label: A, b: 0, f: 2, transmissions: none)",
		},
		{
			name: "with transmissions",
			task: Task{Lane: 2, Label: "C", BeginAt: 0, FinishAt: 1.5, Transmissions: []Transmission{
				{BeginAt: 1.5, FinishAt: 3, DestLane: 1},
				{BeginAt: 1.5, FinishAt: 3, DestLane: 3},
			}},
			want: "Task(lane: 2, label: C, b: 0, f: 1.5, transmissions: T(b: 1.5, f: 3, dest: 1) T(b: 1.5, f: 3, dest: 3))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastTransmission(t *testing.T) {
	task := Task{Transmissions: []Transmission{{FinishAt: 10}, {FinishAt: 5}}}
	last, ok := task.LastTransmission()
	if !ok || last.FinishAt != 5 {
		t.Errorf("LastTransmission() = %v, %v; want FinishAt 5", last, ok)
	}

	if _, ok := (Task{}).LastTransmission(); ok {
		t.Error("LastTransmission() on empty task should report false")
	}
}

func TestLanes(t *testing.T) {
	got := Sample().Lanes()
	if want := []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Lanes() = %v, want %v", got, want)
	}
	if got := (Schedule{}).Lanes(); len(got) != 0 {
		t.Errorf("Lanes() on empty = %v, want empty", got)
	}
}

func TestTransmissionCount(t *testing.T) {
	if got := Sample().TransmissionCount(); got != 3 {
		t.Errorf("TransmissionCount() = %d, want 3", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		schedule Schedule
		code     errors.Code
	}{
		{
			name:     "sample is valid",
			schedule: Sample(),
		},
		{
			name:     "empty is valid",
			schedule: Schedule{},
		},
		{
			name:     "zero duration is valid",
			schedule: Schedule{{Lane: 0, Label: "Z", BeginAt: 3, FinishAt: 3}},
		},
		{
			name:     "highest lane is valid",
			schedule: Schedule{{Lane: MaxLane, Label: "top", FinishAt: 1}},
		},
		{
			name:     "lane above cap",
			schedule: Schedule{{Lane: MaxLane + 1, Label: "X", FinishAt: 1}},
			code:     errors.ErrCodeLaneOutOfRange,
		},
		{
			name:     "lane MaxInt",
			schedule: Schedule{{Lane: math.MaxInt, Label: "X", FinishAt: 1}},
			code:     errors.ErrCodeLaneOutOfRange,
		},
		{
			name: "destination lane above cap",
			schedule: Schedule{{Lane: 0, Label: "X", FinishAt: 2, Transmissions: []Transmission{
				{BeginAt: 1, FinishAt: 2, DestLane: math.MaxInt},
			}}},
			code: errors.ErrCodeLaneOutOfRange,
		},
		{
			name:     "task finishes before begin",
			schedule: Schedule{{Lane: 0, Label: "X", BeginAt: 5, FinishAt: 2}},
			code:     errors.ErrCodeInvalidInterval,
		},
		{
			name: "transmission finishes before begin",
			schedule: Schedule{{Lane: 0, Label: "X", BeginAt: 0, FinishAt: 2, Transmissions: []Transmission{
				{BeginAt: 4, FinishAt: 3, DestLane: 1},
			}}},
			code: errors.ErrCodeInvalidInterval,
		},
		{
			name:     "negative begin",
			schedule: Schedule{{Lane: 0, Label: "X", BeginAt: -1, FinishAt: 2}},
			code:     errors.ErrCodeInvalidInterval,
		},
		{
			name:     "NaN time",
			schedule: Schedule{{Lane: 0, Label: "X", BeginAt: 0, FinishAt: math.NaN()}},
			code:     errors.ErrCodeInvalidInterval,
		},
		{
			name:     "infinite time",
			schedule: Schedule{{Lane: 0, Label: "X", BeginAt: 0, FinishAt: math.Inf(1)}},
			code:     errors.ErrCodeInvalidInterval,
		},
		{
			name:     "negative lane",
			schedule: Schedule{{Lane: -1, Label: "X", BeginAt: 0, FinishAt: 1}},
			code:     errors.ErrCodeLaneOutOfRange,
		},
		{
			name: "negative destination lane",
			schedule: Schedule{{Lane: 0, Label: "X", BeginAt: 0, FinishAt: 1, Transmissions: []Transmission{
				{BeginAt: 1, FinishAt: 2, DestLane: -3},
			}}},
			code: errors.ErrCodeLaneOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
