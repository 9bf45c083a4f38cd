// Package sink provides output format renderers for lane timeline charts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format.
// Sinks never re-run the layout; they draw exactly the rectangles they are
// given. This package provides renderers for:
//
//   - SVG: Scalable vector graphics
//   - JSON: Layout data export for external tools and the layout cache
//   - PNG: Native raster output with a built-in bitmap font
//   - PDF: Print-ready output (requires rsvg-convert)
//   - Text: A character grid for terminals
//
// # SVG Output
//
// [RenderSVG] draws every rect as an outlined box, filled by category, with
// its label centered when it fits. Lane separators are dashed lines across
// the canvas.
//
//	svg := sink.RenderSVG(l,
//	    sink.WithTitle("pipeline"),
//	    sink.WithLabels(false),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the complete layout. [ReadLayoutJSON] reads it back
// into an identical [layout.Layout], which is how cached layouts are
// restored without recomputing them.
//
// # PNG Output
//
// [RenderPNG] rasterizes the layout directly. Use [WithScale] for high-DPI
// output. No external tools are needed.
//
// # PDF Output
//
// [RenderPDF] renders SVG first, then converts it with [render.ToPDF].
// This requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # Text Output
//
// [RenderText] maps the canvas onto a cols×rows cell grid. [Rasterize]
// exposes the same grid with the category of every cell, for callers that
// colorize it.
//
// [render.ToPDF]: github.com/matzehuels/laneplot/pkg/render.ToPDF
package sink
