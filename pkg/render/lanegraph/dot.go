package lanegraph

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// Options configures lane graph generation.
type Options struct {
	// Detailed adds per-lane task counts and busy time to node labels.
	Detailed bool
}

type laneStats struct {
	tasks int
	busy  float64
	hosts bool
}

type flow struct {
	from, to int
}

// ToDOT converts the message flow of s to Graphviz DOT format.
// Nodes and edges are emitted in lane order so the output is stable.
func ToDOT(s schedule.Schedule, opts Options) string {
	lanes := make(map[int]*laneStats)
	stats := func(lane int) *laneStats {
		if st, ok := lanes[lane]; ok {
			return st
		}
		st := &laneStats{}
		lanes[lane] = st
		return st
	}

	flows := make(map[flow]int)
	for _, t := range s {
		st := stats(t.Lane)
		st.tasks++
		st.busy += t.Duration()
		st.hosts = true
		for _, tr := range t.Transmissions {
			stats(tr.DestLane)
			flows[flow{t.Lane, tr.DestLane}]++
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=14];\n")
	buf.WriteString("\n")

	for _, lane := range slices.Sorted(maps.Keys(lanes)) {
		st := lanes[lane]
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(lane, st, opts.Detailed))}
		if !st.hosts {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(lane), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	keys := slices.SortedFunc(maps.Keys(flows), func(a, b flow) int {
		return cmp.Or(cmp.Compare(a.from, b.from), cmp.Compare(a.to, b.to))
	})
	for _, f := range keys {
		if n := flows[f]; n > 1 {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"×%d\"];\n", nodeID(f.from), nodeID(f.to), n)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(f.from), nodeID(f.to))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(lane int) string { return "lane" + strconv.Itoa(lane) }

func fmtLabel(lane int, st *laneStats, detailed bool) string {
	label := fmt.Sprintf("lane %d", lane)
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\ntasks: %d\nbusy: %g", label, st.tasks, st.busy)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg header with a plain
// pixel viewBox so the graph scales like the timeline charts.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
