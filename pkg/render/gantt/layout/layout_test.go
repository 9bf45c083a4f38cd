package layout

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

const tol = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= tol*math.Max(1, math.Abs(b)) }

func TestBuildSingleTask(t *testing.T) {
	s := schedule.Schedule{{Lane: 0, Label: "A", BeginAt: 0, FinishAt: 2}}

	l, err := Build(s, 640, 480, WithRowWeight(1))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if l.MaxTime != 2 {
		t.Errorf("MaxTime = %v, want 2", l.MaxTime)
	}
	if want := (LaneProfile{Used(0)}); !reflect.DeepEqual(l.Profile, want) {
		t.Errorf("Profile = %v, want %v", l.Profile, want)
	}
	if l.Units.X != 320 || l.Units.Y != 480 {
		t.Errorf("units = (%v, %v), want (320, 480)", l.Units.X, l.Units.Y)
	}
	if len(l.Rects) != 1 {
		t.Fatalf("Rects = %d, want 1", len(l.Rects))
	}
	r := l.Rects[0]
	if r.X != 0 || r.Y != 0 || r.Width != 640 || r.Height != 480 {
		t.Errorf("task rect = {%v %v %v %v}, want {0 0 640 480}", r.X, r.Y, r.Width, r.Height)
	}
	if r.Category != CategoryTask || r.Label != "A" || r.Index != -1 {
		t.Errorf("task rect tags = %+v", r)
	}
}

func TestBuildLaneOffsets(t *testing.T) {
	s := schedule.Schedule{
		{Lane: 0, Label: "A", BeginAt: 0, FinishAt: 1},
		{Lane: 0, Label: "B", BeginAt: 1, FinishAt: 2},
		{Lane: 1, Label: "C", BeginAt: 1, FinishAt: 3, Transmissions: []schedule.Transmission{
			{BeginAt: 3, FinishAt: 4, DestLane: 0},
			{BeginAt: 3, FinishAt: 4, DestLane: 2},
		}},
	}

	l, err := Build(s, 640, 480)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if l.MaxTime != 4 {
		t.Errorf("MaxTime = %v, want 4", l.MaxTime)
	}
	if want := (LaneProfile{Used(0), Used(2)}); !reflect.DeepEqual(l.Profile, want) {
		t.Errorf("Profile = %v, want %v", l.Profile, want)
	}
	if l.SumRows != 4 {
		t.Errorf("SumRows = %d, want 4", l.SumRows)
	}

	c := l.Rects[2]
	if c.Label != "C" {
		t.Fatalf("Rects[2] = %q, want C", c.Label)
	}
	if c.Y != 1*l.Units.Y {
		t.Errorf("lane-1 task Y = %v, want %v", c.Y, l.Units.Y)
	}
	if got := l.Rects[3]; got.Y != 2*l.Units.Y || got.Label != "C→0" || got.Height != l.Units.Y {
		t.Errorf("first transmission = %+v", got)
	}
	if got := l.Rects[4]; got.Y != 3*l.Units.Y || got.DestLane != 2 || got.Index != 1 {
		t.Errorf("second transmission = %+v", got)
	}
}

func TestBuildInvalidInterval(t *testing.T) {
	s := schedule.Schedule{{Lane: 0, Label: "bad", BeginAt: 5, FinishAt: 1}}

	l, err := Build(s, 640, 480)
	if !errors.Is(err, errors.ErrCodeInvalidInterval) {
		t.Fatalf("Build() error = %v, want INVALID_INTERVAL", err)
	}
	if len(l.Rects) != 0 {
		t.Errorf("Rects = %d, want none", len(l.Rects))
	}
}

func TestBuildDegenerate(t *testing.T) {
	tests := []struct {
		name string
		s    schedule.Schedule
	}{
		{"empty", schedule.Schedule{}},
		{"nil", nil},
		{"all zero times", schedule.Schedule{{Lane: 0, Label: "Z"}, {Lane: 2, Label: "Y"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Build(tt.s, 640, 480)
			if !errors.Is(err, errors.ErrCodeDegenerateSchedule) {
				t.Fatalf("Build() error = %v, want DEGENERATE_SCHEDULE", err)
			}
			if l.Rects != nil {
				t.Errorf("Rects = %v, want nil", l.Rects)
			}
		})
	}
}

func TestMaxTimeUsesLastTransmission(t *testing.T) {
	s := schedule.Schedule{{Lane: 0, Label: "Q", BeginAt: 0, FinishAt: 1, Transmissions: []schedule.Transmission{
		{BeginAt: 1, FinishAt: 10, DestLane: 1},
		{BeginAt: 1, FinishAt: 5, DestLane: 2},
	}}}

	if got := ComputeExtents(s).MaxTime; got != 5 {
		t.Fatalf("ComputeExtents().MaxTime = %v, want 5 (last listed, not maximum)", got)
	}

	l, err := Build(s, 500, 300)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if l.Units.X != 100 {
		t.Errorf("X unit = %v, want 100", l.Units.X)
	}
	// The earlier transmission runs past the canvas edge.
	if r := l.Rects[1]; r.Right() != 1000 {
		t.Errorf("first transmission right edge = %v, want 1000", r.Right())
	}
}

func TestMaxTimeIgnoresTaskFinishWhenTransmitting(t *testing.T) {
	s := schedule.Schedule{{Lane: 0, Label: "T", BeginAt: 0, FinishAt: 9, Transmissions: []schedule.Transmission{
		{BeginAt: 1, FinishAt: 3, DestLane: 1},
	}}}
	if got := ComputeExtents(s).MaxTime; got != 3 {
		t.Errorf("MaxTime = %v, want 3", got)
	}
}

func TestComputeExtents(t *testing.T) {
	ext := ComputeExtents(schedule.Sample())

	if ext.MaxTime != 7.5 {
		t.Errorf("MaxTime = %v, want 7.5", ext.MaxTime)
	}
	if ext.MaxLane != 3 {
		t.Errorf("MaxLane = %d, want 3", ext.MaxLane)
	}
	want := LaneProfile{Unused, Used(0), Used(2), Used(1)}
	if !reflect.DeepEqual(ext.Profile, want) {
		t.Errorf("Profile = %v, want %v", ext.Profile, want)
	}

	empty := ComputeExtents(nil)
	if empty.MaxTime != 0 || empty.MaxLane != -1 || len(empty.Profile) != 0 {
		t.Errorf("empty extents = %+v", empty)
	}
}

func TestResolveUnits(t *testing.T) {
	ext := ComputeExtents(schedule.Sample())

	tests := []struct {
		name    string
		w, h    float64
		opts    []Option
		want    Units
		errCode errors.Code
	}{
		{
			name: "float K=1",
			w:    640, h: 480,
			want: Units{X: 640 / 7.5, Y: 80, SumRows: 6},
		},
		{
			name: "float K=2",
			w:    640, h: 480,
			opts: []Option{WithRowWeight(2)},
			want: Units{X: 640 / 7.5, Y: 480.0 / 9, SumRows: 9},
		},
		{
			name: "integer K=1",
			w:    640, h: 480,
			opts: []Option{WithIntegerUnits()},
			want: Units{X: 85, Y: 80, SumRows: 6},
		},
		{
			name: "integer truncates to zero",
			w:    5, h: 480,
			opts:    []Option{WithIntegerUnits()},
			errCode: errors.ErrCodeDegenerateSchedule,
		},
		{
			name: "zero row weight",
			w:    640, h: 480,
			opts:    []Option{WithRowWeight(0)},
			errCode: errors.ErrCodeInvalidInput,
		},
		{
			name: "zero canvas",
			w:    0, h: 480,
			errCode: errors.ErrCodeInvalidInput,
		},
		{
			name: "negative canvas",
			w:    640, h: -1,
			errCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveUnits(tt.w, tt.h, ext, tt.opts...)
			if tt.errCode != "" {
				if !errors.Is(err, tt.errCode) {
					t.Fatalf("ResolveUnits() error = %v, want %s", err, tt.errCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveUnits() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveUnits() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveUnitsDegenerate(t *testing.T) {
	_, err := ResolveUnits(640, 480, ComputeExtents(nil))
	if !errors.Is(err, errors.ErrCodeDegenerateSchedule) {
		t.Errorf("ResolveUnits(empty) error = %v, want DEGENERATE_SCHEDULE", err)
	}
}

func TestBuildSample(t *testing.T) {
	l, err := Build(schedule.Sample(), 640, 480)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(l.Rects) != 8 {
		t.Fatalf("Rects = %d, want 8", len(l.Rects))
	}
	if got := len(l.TaskRects()); got != 5 {
		t.Errorf("TaskRects() = %d, want 5", got)
	}
	if got := len(l.TransmissionRects()); got != 3 {
		t.Errorf("TransmissionRects() = %d, want 3", got)
	}
	if got := len(l.LaneRects(2)); got != 3 {
		t.Errorf("LaneRects(2) = %d, want 3", got)
	}

	wantY := map[string]float64{"A": 0, "B": 0, "C": 80, "C→1": 160, "C→3": 240, "D": 320, "D→1": 400, "E": 0}
	for _, r := range l.Rects {
		if r.Y != wantY[r.Label] {
			t.Errorf("%s Y = %v, want %v", r.Label, r.Y, wantY[r.Label])
		}
	}

	if want := []float64{80, 320, 480}; !slices.Equal(l.Separators, want) {
		t.Errorf("Separators = %v, want %v", l.Separators, want)
	}

	wantBands := []LaneBand{{1, 0, 80}, {2, 80, 320}, {3, 320, 480}}
	if got := l.LaneBands(); !reflect.DeepEqual(got, wantBands) {
		t.Errorf("LaneBands() = %v, want %v", got, wantBands)
	}
}

func TestBuildIntegerUnits(t *testing.T) {
	l, err := Build(schedule.Sample(), 640, 480, WithIntegerUnits())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if l.Numeric != Integer {
		t.Errorf("Numeric = %v, want integer", l.Numeric)
	}
	for _, r := range l.Rects {
		for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
			if v != math.Trunc(v) {
				t.Fatalf("%s has fractional coordinate %v", r.Label, v)
			}
		}
	}
	e := l.Rects[len(l.Rects)-1]
	if e.Label != "E" || e.X != 510 || e.Width != 127 {
		t.Errorf("E = {x %v, w %v}, want {510, 127}", e.X, e.Width)
	}
}

func TestBuildZeroDuration(t *testing.T) {
	s := schedule.Schedule{
		{Lane: 0, Label: "point", BeginAt: 2, FinishAt: 2},
		{Lane: 0, Label: "span", BeginAt: 0, FinishAt: 4},
	}
	l, err := Build(s, 400, 100)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if r := l.Rects[0]; r.Width != 0 || r.X != 200 {
		t.Errorf("zero-duration rect = %+v, want x 200 width 0", r)
	}
}

func TestBuildRectsLaneOutOfRange(t *testing.T) {
	s := schedule.Schedule{{Lane: 4, Label: "far", BeginAt: 0, FinishAt: 1}}
	_, _, err := BuildRects(s, LaneProfile{Used(0)}, Units{X: 1, Y: 1, SumRows: 1})
	if !errors.Is(err, errors.ErrCodeLaneOutOfRange) {
		t.Fatalf("BuildRects() error = %v, want LANE_OUT_OF_RANGE", err)
	}

	_, _, err = BuildRects(schedule.Schedule{{Lane: 0, Label: "x", FinishAt: 1}}, LaneProfile{Unused}, Units{X: 1, Y: 1})
	if !errors.Is(err, errors.ErrCodeLaneOutOfRange) {
		t.Fatalf("BuildRects() on unused slot error = %v, want LANE_OUT_OF_RANGE", err)
	}
}

func TestBuildNegativeLane(t *testing.T) {
	_, err := Build(schedule.Schedule{{Lane: -2, Label: "neg", FinishAt: 1}}, 100, 100)
	if !errors.Is(err, errors.ErrCodeLaneOutOfRange) {
		t.Fatalf("Build() error = %v, want LANE_OUT_OF_RANGE", err)
	}
}

func TestBuildHugeLane(t *testing.T) {
	for _, lane := range []int{schedule.MaxLane + 1, 1 << 33, math.MaxInt} {
		_, err := Build(schedule.Schedule{{Lane: lane, Label: "far", FinishAt: 1}}, 640, 480)
		if !errors.Is(err, errors.ErrCodeLaneOutOfRange) {
			t.Errorf("Build(lane %d) error = %v, want LANE_OUT_OF_RANGE", lane, err)
		}
	}
}

func TestLaneProfileRowsBefore(t *testing.T) {
	p := LaneProfile{Unused, Used(0), Used(2), Used(1)}

	tests := []struct {
		lane, k, want int
	}{
		{0, 1, 0},
		{1, 1, 0},
		{2, 1, 1},
		{3, 1, 4},
		{3, 2, 6},
	}
	for _, tt := range tests {
		got, err := p.RowsBefore(tt.lane, tt.k)
		if err != nil {
			t.Fatalf("RowsBefore(%d, %d) error: %v", tt.lane, tt.k, err)
		}
		if got != tt.want {
			t.Errorf("RowsBefore(%d, %d) = %d, want %d", tt.lane, tt.k, got, tt.want)
		}
	}

	if _, err := p.RowsBefore(4, 1); !errors.Is(err, errors.ErrCodeLaneOutOfRange) {
		t.Errorf("RowsBefore(4) error = %v, want LANE_OUT_OF_RANGE", err)
	}
	if got := p.UsedLanes(); got != 3 {
		t.Errorf("UsedLanes() = %d, want 3", got)
	}
}

func TestLaneSlot(t *testing.T) {
	if n, ok := Unused.MaxTransmissions(); ok || n != 0 {
		t.Errorf("Unused.MaxTransmissions() = %d, %v", n, ok)
	}
	if Unused.Rows(2) != 0 {
		t.Errorf("Unused.Rows(2) = %d, want 0", Unused.Rows(2))
	}
	if Used(3).Rows(2) != 5 {
		t.Errorf("Used(3).Rows(2) = %d, want 5", Used(3).Rows(2))
	}
	if Used(0).String() != "used(0)" || Unused.String() != "unused" {
		t.Errorf("String() = %q, %q", Used(0).String(), Unused.String())
	}
}

func TestLayoutJSONRoundTrip(t *testing.T) {
	l, err := Build(schedule.Sample(), 640, 480, WithRowWeight(2), WithIntegerUnits())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	var got Layout
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, l)
	}
}

func TestParseNumeric(t *testing.T) {
	for in, want := range map[string]Numeric{"": Float, "float": Float, "integer": Integer, "int": Integer} {
		got, err := ParseNumeric(in)
		if err != nil || got != want {
			t.Errorf("ParseNumeric(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseNumeric("fixed"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseNumeric(fixed) error = %v, want INVALID_INPUT", err)
	}
}

// randomSchedule produces a valid schedule with sparse lanes and uneven
// transmission counts.
func randomSchedule(r *rand.Rand) schedule.Schedule {
	n := 1 + r.IntN(12)
	s := make(schedule.Schedule, n)
	for i := range s {
		begin := r.Float64() * 20
		t := schedule.Task{
			Lane:     r.IntN(6),
			Label:    string(rune('A' + i)),
			BeginAt:  begin,
			FinishAt: begin + r.Float64()*5,
		}
		at := t.FinishAt
		for j := r.IntN(4); j > 0; j-- {
			d := r.Float64() * 3
			t.Transmissions = append(t.Transmissions, schedule.Transmission{BeginAt: at, FinishAt: at + d, DestLane: r.IntN(6)})
			at += d
		}
		s[i] = t
	}
	return s
}

func forEachRandomLayout(t *testing.T, fn func(t *testing.T, s schedule.Schedule, l Layout, k int)) {
	t.Helper()
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		s := randomSchedule(r)
		k := 1 + r.IntN(2)
		opts := []Option{WithRowWeight(k)}
		if i%2 == 1 {
			opts = append(opts, WithIntegerUnits())
		}
		l, err := Build(s, 1024, 768, opts...)
		if err != nil {
			t.Fatalf("Build(#%d) error: %v", i, err)
		}
		fn(t, s, l, k)
	}
}

func TestPropertyNoOverlapAcrossLanes(t *testing.T) {
	forEachRandomLayout(t, func(t *testing.T, _ schedule.Schedule, l Layout, _ int) {
		for i, a := range l.Rects {
			for _, b := range l.Rects[i+1:] {
				if a.Lane == b.Lane {
					continue
				}
				if a.Bottom() > b.Y+tol && b.Bottom() > a.Y+tol {
					t.Fatalf("lane %d rect %q [%v,%v) overlaps lane %d rect %q [%v,%v)",
						a.Lane, a.Label, a.Y, a.Bottom(), b.Lane, b.Label, b.Y, b.Bottom())
				}
			}
		}
	})
}

func TestPropertyRectsStayInLaneBand(t *testing.T) {
	forEachRandomLayout(t, func(t *testing.T, _ schedule.Schedule, l Layout, _ int) {
		for _, r := range l.Rects {
			b, ok := l.LaneOf(r)
			if !ok {
				t.Fatalf("%q has no lane band", r.Label)
			}
			if r.Y < b.Top-tol || r.Bottom() > b.Bottom+tol {
				t.Fatalf("%q [%v,%v) outside lane %d band [%v,%v)", r.Label, r.Y, r.Bottom(), r.Lane, b.Top, b.Bottom)
			}
		}
	})
}

func TestPropertyRowPartitionSum(t *testing.T) {
	forEachRandomLayout(t, func(t *testing.T, _ schedule.Schedule, l Layout, _ int) {
		total := l.Units.Y * float64(l.SumRows)
		if l.Numeric == Float && !approx(total, l.CanvasHeight) {
			t.Fatalf("Y*SumRows = %v, want %v", total, l.CanvasHeight)
		}
		if l.Numeric == Integer && (total > l.CanvasHeight || l.CanvasHeight-total >= float64(l.SumRows)) {
			t.Fatalf("integer Y*SumRows = %v, canvas %v, rows %d", total, l.CanvasHeight, l.SumRows)
		}
	})
}

func TestPropertyMonotonicOffsets(t *testing.T) {
	forEachRandomLayout(t, func(t *testing.T, s schedule.Schedule, l Layout, k int) {
		var taskY float64
		for _, r := range l.Rects {
			if r.Category == CategoryTask {
				taskY = r.Y
				continue
			}
			want := taskY + float64(k+r.Index)*l.Units.Y
			if !approx(r.Y, want) {
				t.Fatalf("%q index %d Y = %v, want %v", r.Label, r.Index, r.Y, want)
			}
		}
	})
}

func TestPropertyIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 50; i++ {
		s := randomSchedule(r)
		a, errA := Build(s, 800, 600)
		b, errB := Build(s, 800, 600)
		if errA != nil || errB != nil {
			t.Fatalf("Build() errors: %v, %v", errA, errB)
		}
		ja, _ := json.Marshal(a)
		jb, _ := json.Marshal(b)
		if string(ja) != string(jb) {
			t.Fatalf("layouts differ for schedule %v", s)
		}
	}
}
