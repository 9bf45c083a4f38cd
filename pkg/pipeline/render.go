package pipeline

import (
	"context"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
	"github.com/matzehuels/laneplot/pkg/render/gantt/sink"
	"github.com/matzehuels/laneplot/pkg/render/lanegraph"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// Render generates output artifacts in the requested formats.
//
// Chart formats draw l. The dot and flow formats describe the message flow
// between lanes and are built from s directly.
func Render(ctx context.Context, s schedule.Schedule, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, s, l, format, opts)
		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, s schedule.Schedule, l layout.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(l,
			sink.WithScale(opts.Scale),
			sink.WithPNGLabels(!opts.NoLabels),
		)
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOptions(opts)...))
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatText:
		return []byte(sink.RenderText(l, opts.TextCols, opts.TextRows)), nil
	case FormatDOT:
		return []byte(lanegraph.ToDOT(s, lanegraph.Options{Detailed: true})), nil
	case FormatFlow:
		return lanegraph.RenderSVG(ctx, lanegraph.ToDOT(s, lanegraph.Options{Detailed: !opts.NoLabels}))
	}
	return nil, ValidateFormat(format)
}

func svgOptions(opts Options) []sink.SVGOption {
	return []sink.SVGOption{
		sink.WithLabels(!opts.NoLabels),
		sink.WithTitle(opts.Title),
	}
}
