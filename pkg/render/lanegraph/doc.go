// Package lanegraph renders the message flow between lanes as a node-link
// diagram.
//
// # Overview
//
// A timeline chart shows when each transmission happens; the lane graph
// shows who talks to whom. Every lane becomes a node and every
// transmission an edge from the sending task's lane to its destination
// lane. Parallel transmissions collapse into one edge labelled with their
// count.
//
// # Usage
//
//	dot := lanegraph.ToDOT(s, lanegraph.Options{})
//	svg, err := lanegraph.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels also show the task count and busy time of the lane
//
// Lanes that only ever receive transmissions are drawn dashed.
//
// # Dependencies
//
// [RenderSVG] uses github.com/goccy/go-graphviz, which embeds Graphviz as
// WebAssembly; no system Graphviz install is needed.
package lanegraph
