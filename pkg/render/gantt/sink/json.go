package sink

import (
	"encoding/json"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
)

type jsonOutput struct {
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	RowWeight  int            `json:"row_weight"`
	Numeric    layout.Numeric `json:"numeric"`
	MaxTime    float64        `json:"max_time"`
	MaxLane    int            `json:"max_lane"`
	XUnit      float64        `json:"x_unit"`
	YUnit      float64        `json:"y_unit"`
	SumRows    int            `json:"sum_rows"`
	Lanes      []jsonLane     `json:"lanes"`
	Rects      []layout.Rect  `json:"rects"`
	Separators []float64      `json:"separators"`
}

type jsonLane struct {
	Lane             int  `json:"lane"`
	Used             bool `json:"used"`
	MaxTransmissions int  `json:"max_transmissions"`
}

// RenderJSON exports the layout as a pretty-printed JSON document.
//
// The document holds the canvas, the resolved units, the lane profile, and
// every rect in layout order, so external tools can redraw the chart
// without knowing the layout rules. [ReadLayoutJSON] reverses it.
func RenderJSON(l layout.Layout) ([]byte, error) {
	out := jsonOutput{
		Width:      l.CanvasWidth,
		Height:     l.CanvasHeight,
		RowWeight:  l.RowWeight,
		Numeric:    l.Numeric,
		MaxTime:    l.MaxTime,
		MaxLane:    l.MaxLane,
		XUnit:      l.Units.X,
		YUnit:      l.Units.Y,
		SumRows:    l.SumRows,
		Lanes:      make([]jsonLane, len(l.Profile)),
		Rects:      l.Rects,
		Separators: l.Separators,
	}
	for i, slot := range l.Profile {
		n, used := slot.MaxTransmissions()
		out.Lanes[i] = jsonLane{Lane: i, Used: used, MaxTransmissions: n}
	}
	if out.Rects == nil {
		out.Rects = []layout.Rect{}
	}
	if out.Separators == nil {
		out.Separators = []float64{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadLayoutJSON decodes a document produced by [RenderJSON].
func ReadLayoutJSON(data []byte) (layout.Layout, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout json")
	}

	profile := make(layout.LaneProfile, len(in.Lanes))
	for i, ln := range in.Lanes {
		if ln.Lane != i {
			return layout.Layout{}, errors.New(errors.ErrCodeInvalidFormat, "decode layout json: lane %d listed at position %d", ln.Lane, i)
		}
		if ln.Used {
			profile[i] = layout.Used(ln.MaxTransmissions)
		}
	}

	return layout.Layout{
		CanvasWidth:  in.Width,
		CanvasHeight: in.Height,
		RowWeight:    in.RowWeight,
		Numeric:      in.Numeric,
		Extents: layout.Extents{
			MaxTime: in.MaxTime,
			MaxLane: in.MaxLane,
			Profile: profile,
		},
		Units: layout.Units{
			X:       in.XUnit,
			Y:       in.YUnit,
			SumRows: in.SumRows,
		},
		Rects:      in.Rects,
		Separators: in.Separators,
	}, nil
}
