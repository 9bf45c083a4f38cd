// Package layout computes pixel rectangles for lane timeline charts.
//
// # Overview
//
// A [schedule.Schedule] describes tasks on lanes and the transmissions they
// send. This package turns it into a [Layout]: one [Rect] per task and per
// transmission, positioned on a fixed canvas so that no two lanes share a
// vertical band. The pipeline runs in four fixed steps:
//
//	Validate → ComputeExtents → ResolveUnits → BuildRects
//
// [Build] runs all of them; each step is also exported for callers that
// want the intermediate values.
//
// # Rows
//
// The vertical axis is measured in row units. A task bar occupies K rows,
// where K is the row weight set with [WithRowWeight] (default 1); each
// transmission occupies one row below its task. A lane's budget is its
// [LaneProfile] entry, the largest transmission count of any task on that
// lane, plus K. Lanes that no task uses take no space.
//
// # Time Extent
//
// The horizontal scale is the canvas width divided by the time extent. A
// task contributes its own finish time if it has no transmissions, and
// otherwise the finish time of its last listed transmission. Only the tail
// element is inspected, so a transmission list that is not in time order
// can under-report the extent:
//
//	transmissions: [{0, 10}, {0, 5}]   // contributes 5, not 10
//
// Producers are expected to list transmissions in time order.
//
// # Numeric Representation
//
// By default units and coordinates are real numbers ([Float]). With
// [WithIntegerUnits] both units are truncated to whole pixels and every
// coordinate is truncated as well, which leaves a strip of unused canvas on
// the right and bottom edges instead of fractional pixels.
//
// # Errors
//
// Build reports coded errors from [errors]:
//
//   - INVALID_INTERVAL: a task or transmission finishes before it begins
//   - DEGENERATE_SCHEDULE: nothing to scale (empty schedule, zero extent)
//   - LANE_OUT_OF_RANGE: a lane outside 0..schedule.MaxLane, or a lane missing from the profile
//   - INVALID_INPUT: non-positive canvas or row weight
//
// No partial layout is returned on error.
//
// # Integration
//
//	schedule → layout.Build → sink.RenderSVG / RenderPNG / RenderJSON
//
// [errors]: github.com/matzehuels/laneplot/pkg/errors
package layout
