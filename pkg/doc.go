// Package pkg provides the core libraries for laneplot lane-schedule charts.
//
// # Overview
//
// laneplot turns a schedule of tasks, each running on a lane and emitting
// transmissions to other lanes, into a timeline chart. Every lane gets a
// horizontal band tall enough for its task bars plus one row per
// transmission; time runs left to right. The pkg directory is organized
// into these areas:
//
//  1. [schedule] - Input model and validation
//  2. [io] - Schedule readers and writers (JSON, TOML, HCL)
//  3. [render] - Layout engine, output sinks, and message-flow graphs
//  4. [pipeline] - Orchestration (parse → layout → render) with caching
//  5. [cache], [store] - Artifact caching and saved-chart persistence
//
// # Architecture
//
// The typical data flow:
//
//	Schedule file (JSON/TOML/HCL)
//	         ↓
//	    [io] package (decode)
//	         ↓
//	    [schedule] package (validate)
//	         ↓
//	    [render/gantt/layout] package (extents → units → rects)
//	         ↓
//	    [render/gantt/sink] package (SVG/PNG/PDF/JSON/text)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/laneplot/pkg/render/gantt/layout"
//	    "github.com/matzehuels/laneplot/pkg/render/gantt/sink"
//	    "github.com/matzehuels/laneplot/pkg/schedule"
//	)
//
//	l, err := layout.Build(schedule.Sample(), 640, 480, layout.WithRowWeight(2))
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(l, sink.WithTitle("sample"))
//
// # Main Packages
//
// [render/gantt/layout] - The layout engine. [layout.ComputeExtents] scans the
// schedule for the time horizon and per-lane row counts,
// [layout.ResolveUnits] converts them into pixel scale factors, and
// [layout.BuildRects] positions one rectangle per task and per transmission.
//
// [render/gantt/sink] - Output formats. SVG and text are drawn directly,
// PNG is rasterized natively, PDF goes through rsvg-convert.
//
// [render/lanegraph] - Lanes as Graphviz nodes, transmissions as edges.
//
// [pipeline] - The complete pipeline used by both the CLI and the HTTP
// server. [pipeline.Runner] adds content-addressed caching of layouts and
// artifacts.
//
// [observability] - Global hooks for pipeline, cache, and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// [schedule]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/schedule
// [io]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/render
// [render/gantt/layout]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/render/gantt/layout
// [render/gantt/sink]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/render/gantt/sink
// [render/lanegraph]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/render/lanegraph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/errors
// [layout.ComputeExtents]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/render/gantt/layout#ComputeExtents
// [layout.ResolveUnits]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/render/gantt/layout#ResolveUnits
// [layout.BuildRects]: https://pkg.go.dev/github.com/matzehuels/laneplot/pkg/render/gantt/layout#BuildRects
package pkg
