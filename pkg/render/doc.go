// Package render provides visualization rendering for lane schedules.
//
// # Overview
//
// This package contains the rendering pipeline that turns a schedule into
// visual output:
//
//   - Generic format conversion (SVG to PDF)
//   - Lane timeline charts (in the [gantt] subpackages)
//   - Lane message-flow graphs (in [lanegraph])
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg). When the tool is missing it returns an UNSUPPORTED error.
// [HasRSVG] lets callers check up front.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Timeline Charts
//
// [gantt/layout] computes pixel rectangles for every task and transmission;
// [gantt/sink] turns those rectangles into SVG, PNG, PDF, JSON, or text.
//
// # Message-Flow Graphs
//
// [lanegraph] draws lanes as nodes and transmissions as edges using
// Graphviz.
//
//	dot := lanegraph.ToDOT(s)
//	svg, err := lanegraph.RenderSVG(ctx, dot)
//
// [gantt]: github.com/matzehuels/laneplot/pkg/render/gantt/layout
// [gantt/layout]: github.com/matzehuels/laneplot/pkg/render/gantt/layout
// [gantt/sink]: github.com/matzehuels/laneplot/pkg/render/gantt/sink
// [lanegraph]: github.com/matzehuels/laneplot/pkg/render/lanegraph
package render
