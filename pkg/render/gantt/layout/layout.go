package layout

import (
	"fmt"
	"slices"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// Layout is the complete result of a layout pass: everything a sink needs
// to draw the chart. It is a plain value and safe to share once built.
type Layout struct {
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	RowWeight    int     `json:"row_weight"`
	Numeric      Numeric `json:"numeric"`

	Extents
	Units

	// Rects holds task and transmission rectangles in schedule order: each
	// task bar is followed by its transmissions.
	Rects []Rect `json:"rects"`
	// Separators are the y coordinates of lane dividers, ascending and unique.
	Separators []float64 `json:"separators"`
}

// Build lays out s on a width×height canvas.
//
// The schedule is validated first; any invalid interval or lane fails the
// whole pass and no rectangles are produced. Build is deterministic: the
// same schedule and options always yield an identical Layout.
func Build(s schedule.Schedule, width, height float64, opts ...Option) (Layout, error) {
	c, err := newConfig(opts)
	if err != nil {
		return Layout{}, err
	}
	if err := s.Validate(); err != nil {
		return Layout{}, err
	}

	ext := ComputeExtents(s)
	units, err := resolveUnits(width, height, ext, c)
	if err != nil {
		return Layout{}, err
	}

	rects, seps, err := buildRects(s, ext.Profile, units, c)
	if err != nil {
		return Layout{}, err
	}

	return Layout{
		CanvasWidth:  width,
		CanvasHeight: height,
		RowWeight:    c.rowWeight,
		Numeric:      c.numeric,
		Extents:      ext,
		Units:        units,
		Rects:        rects,
		Separators:   seps,
	}, nil
}

// BuildRects emits one rect per task and per transmission, plus the lane
// separator positions, for an already resolved profile and units. The
// options must match those passed to [ResolveUnits].
func BuildRects(s schedule.Schedule, p LaneProfile, u Units, opts ...Option) ([]Rect, []float64, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	return buildRects(s, p, u, c)
}

func buildRects(s schedule.Schedule, p LaneProfile, u Units, c config) ([]Rect, []float64, error) {
	k := c.rowWeight

	offsets := make([]int, len(p))
	acc := 0
	for lane, slot := range p {
		offsets[lane] = acc
		acc += slot.Rows(k)
	}

	rects := make([]Rect, 0, len(s)+s.TransmissionCount())
	seps := make([]float64, 0, len(s))

	for ti, t := range s {
		slot, err := p.Slot(t.Lane)
		if err != nil {
			return nil, nil, err
		}
		if !slot.IsUsed() {
			return nil, nil, errors.New(errors.ErrCodeLaneOutOfRange, "lane %d of task %q is unused in profile", t.Lane, t.Label)
		}
		rowsBefore := offsets[t.Lane]

		rects = append(rects, Rect{
			X:        c.round(t.BeginAt * u.X),
			Y:        c.round(float64(rowsBefore) * u.Y),
			Width:    c.round(t.Duration() * u.X),
			Height:   c.round(float64(k) * u.Y),
			Label:    t.Label,
			Category: CategoryTask,
			Lane:     t.Lane,
			Task:     ti,
			Index:    -1,
		})

		for i, tr := range t.Transmissions {
			rects = append(rects, Rect{
				X:        c.round(tr.BeginAt * u.X),
				Y:        c.round(float64(rowsBefore+k+i) * u.Y),
				Width:    c.round(tr.Duration() * u.X),
				Height:   u.Y,
				Label:    TransmissionLabel(t.Label, tr.DestLane),
				Category: CategoryTransmission,
				Lane:     t.Lane,
				Task:     ti,
				Index:    i,
				DestLane: tr.DestLane,
			})
		}

		seps = append(seps, c.round(float64(rowsBefore+k+len(t.Transmissions))*u.Y))
	}

	slices.Sort(seps)
	return rects, slices.Compact(seps), nil
}

// TransmissionLabel is the display label of a transmission rect.
func TransmissionLabel(task string, dest int) string {
	return fmt.Sprintf("%s→%d", task, dest)
}

// LaneBand is the vertical pixel band [Top, Bottom) reserved for one lane.
type LaneBand struct {
	Lane   int
	Top    float64
	Bottom float64
}

// LaneBands returns the band of every used lane, top to bottom.
func (l Layout) LaneBands() []LaneBand {
	bands := make([]LaneBand, 0, l.Profile.UsedLanes())
	rows := 0
	for lane, slot := range l.Profile {
		if !slot.IsUsed() {
			continue
		}
		n := slot.Rows(l.RowWeight)
		bands = append(bands, LaneBand{
			Lane:   lane,
			Top:    float64(rows) * l.Units.Y,
			Bottom: float64(rows+n) * l.Units.Y,
		})
		rows += n
	}
	return bands
}

// LaneOf returns the band holding r. The second result is false when r
// belongs to a lane that has no band in this layout.
func (l Layout) LaneOf(r Rect) (LaneBand, bool) {
	for _, b := range l.LaneBands() {
		if b.Lane == r.Lane {
			return b, true
		}
	}
	return LaneBand{}, false
}

// TaskRects returns only the task bars.
func (l Layout) TaskRects() []Rect { return l.filter(CategoryTask) }

// TransmissionRects returns only the transmission rects.
func (l Layout) TransmissionRects() []Rect { return l.filter(CategoryTransmission) }

// LaneRects returns the rects drawn in lane's band.
func (l Layout) LaneRects(lane int) []Rect {
	var out []Rect
	for _, r := range l.Rects {
		if r.Lane == lane {
			out = append(out, r)
		}
	}
	return out
}

func (l Layout) filter(c Category) []Rect {
	var out []Rect
	for _, r := range l.Rects {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}
