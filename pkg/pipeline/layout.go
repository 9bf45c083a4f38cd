package pipeline

import (
	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// BuildLayout lays out s with the canvas and engine options in opts.
// Zero options take their defaults.
func BuildLayout(s schedule.Schedule, opts Options) (layout.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, err
	}
	return layout.Build(s, opts.Width, opts.Height, opts.LayoutOptions()...)
}
