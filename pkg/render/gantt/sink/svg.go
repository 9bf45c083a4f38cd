package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
)

const svgStyle = `
    .task { fill: #cfe2f3; stroke: #1c4587; stroke-width: 1; }
    .transmission { fill: #fce5cd; stroke: #b45f06; stroke-width: 1; }
    .separator { stroke: #999999; stroke-width: 1; stroke-dasharray: 4 3; }
    .label { font-family: monospace; fill: #222222; text-anchor: middle; dominant-baseline: central; }
    .title { font-family: sans-serif; font-size: 14px; fill: #222222; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	separators bool
	title      string
}

// WithLabels toggles rect labels (default on).
func WithLabels(on bool) SVGOption { return func(r *svgRenderer) { r.labels = on } }

// WithSeparators toggles dashed lane separators (default on).
func WithSeparators(on bool) SVGOption { return func(r *svgRenderer) { r.separators = on } }

// WithTitle sets the document title and draws it in the top-left corner.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{labels: true, separators: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws l as a standalone SVG document whose viewBox is the
// layout canvas. Rects outside the canvas are clipped by the viewer.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(l.CanvasWidth), num(l.CanvasHeight), l.CanvasWidth, l.CanvasHeight)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	if r.separators {
		for _, y := range l.Separators {
			if y >= l.CanvasHeight {
				continue
			}
			fmt.Fprintf(&buf, `  <line class="separator" x1="0" y1="%s" x2="%s" y2="%s"/>`+"\n",
				num(y), num(l.CanvasWidth), num(y))
		}
	}

	for _, rect := range l.Rects {
		fmt.Fprintf(&buf, `  <rect class="%s" data-lane="%d" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			rect.Category, rect.Lane, num(rect.X), num(rect.Y), num(rect.Width), num(rect.Height))
	}

	if r.labels {
		for _, rect := range l.Rects {
			renderLabel(&buf, rect)
		}
	}

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="4" y="16">%s</text>`+"\n", escapeXML(r.title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLabel(buf *bytes.Buffer, rect layout.Rect) {
	size := fontSizeFor(rect.Width, rect.Height, utf8.RuneCountInString(rect.Label))
	if size == 0 || rect.Label == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="label" x="%s" y="%s" font-size="%s">%s</text>`+"\n",
		num(rect.CenterX()), num(rect.CenterY()), num(size), escapeXML(rect.Label))
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
