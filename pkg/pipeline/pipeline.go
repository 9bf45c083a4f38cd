// Package pipeline provides the chart pipeline shared by the CLI and the
// HTTP API.
//
// This package implements the complete parse → layout → render pipeline. By
// centralizing it, the CLI and the server apply the same defaults, cache
// the same way, and produce byte-identical artifacts.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Load a schedule from a JSON, TOML, or HCL file
//  2. Layout: Compute the rectangles of every task and transmission
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, text, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg", "png"}}
//	result, err := runner.Execute(ctx, s, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, hit, err := runner.LayoutWithCacheInfo(ctx, s, opts)
//	artifacts, err := runner.Render(ctx, s, l, opts)
//
// # Caching
//
// Layouts are cached under the hash of the schedule JSON and the layout
// options; artifacts under the hash of the layout and the render options.
// Because layout is deterministic, a cached entry is always identical to
// what a fresh run would produce.
package pipeline

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/laneplot/pkg/cache"
	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 640.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 480.0

	// DefaultRowWeight is the default task bar height in transmission rows.
	DefaultRowWeight = layout.DefaultRowWeight

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1

	// MaxScale bounds the PNG scale factor.
	MaxScale = 8

	// MaxCanvasSize bounds each canvas side in pixels.
	MaxCanvasSize = 1 << 15

	// DefaultTextCols and DefaultTextRows size the text grid.
	DefaultTextCols = 100
	DefaultTextRows = 30

	// MaxTextCols and MaxTextRows bound the text grid.
	MaxTextCols = 1000
	MaxTextRows = 1000
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
	FormatDOT  = "dot"
	// FormatFlow is the lane message-flow graph rendered to SVG by Graphviz.
	FormatFlow = "flow"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatFlow: true,
}

// FormatNames lists the formats in help-text order.
var FormatNames = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatText, FormatDOT, FormatFlow}

// Extension returns the file extension for an artifact format.
func Extension(format string) string {
	if format == FormatFlow {
		return "flow.svg"
	}
	return format
}

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatFlow:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests and BSON for
// stored charts.
type Options struct {
	// Layout options
	Width     float64 `json:"width,omitempty" bson:"width"`
	Height    float64 `json:"height,omitempty" bson:"height"`
	RowWeight int     `json:"row_weight,omitempty" bson:"row_weight"`
	Integer   bool    `json:"integer,omitempty" bson:"integer"`

	// Render options
	Formats  []string `json:"formats,omitempty" bson:"formats,omitempty"`
	Title    string   `json:"title,omitempty" bson:"title,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty" bson:"no_labels,omitempty"`
	Scale    int      `json:"scale,omitempty" bson:"scale,omitempty"`
	TextCols int      `json:"text_cols,omitempty" bson:"text_cols,omitempty"`
	TextRows int      `json:"text_rows,omitempty" bson:"text_rows,omitempty"`

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty" bson:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" bson:"-"`

	// validated tracks whether ValidateAndSetDefaults has succeeded.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Schedule is the input schedule.
	Schedule schedule.Schedule

	// ScheduleHash is the content hash of the schedule JSON.
	ScheduleHash string

	// Layout is the computed layout.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TaskCount         int
	LaneCount         int
	TransmissionCount int
	RectCount         int
	LayoutTime        time.Duration
	RenderTime        time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every zero option with its default.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.RowWeight == 0 {
		o.RowWeight = DefaultRowWeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TextCols == 0 {
		o.TextCols = DefaultTextCols
	}
	if o.TextRows == 0 {
		o.TextRows = DefaultTextRows
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges. It does not apply defaults.
func (o *Options) Validate() error {
	if !positiveFinite(o.Width) || !positiveFinite(o.Height) {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must be positive and finite, got %gx%g", o.Width, o.Height)
	}
	if o.Width > MaxCanvasSize || o.Height > MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must be at most %dx%d, got %gx%g", MaxCanvasSize, MaxCanvasSize, o.Width, o.Height)
	}
	if o.RowWeight < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "row weight must be at least 1, got %d", o.RowWeight)
	}
	if o.Scale < 1 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 1 and %d, got %d", MaxScale, o.Scale)
	}
	if o.TextCols < 1 || o.TextRows < 1 || o.TextCols > MaxTextCols || o.TextRows > MaxTextRows {
		return errors.New(errors.ErrCodeInvalidInput, "text grid must be between 1x1 and %dx%d, got %dx%d", MaxTextCols, MaxTextRows, o.TextCols, o.TextRows)
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Numeric returns the layout's numeric representation.
func (o *Options) Numeric() layout.Numeric {
	if o.Integer {
		return layout.Integer
	}
	return layout.Float
}

// LayoutOptions returns the engine options for these pipeline options.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithRowWeight(o.RowWeight),
		layout.WithNumeric(o.Numeric()),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		RowWeight: o.RowWeight,
		Numeric:   o.Numeric().String(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect format are left out so that, for example,
// changing the PNG scale does not invalidate cached SVGs.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.Title = o.Title
		k.NoLabels = o.NoLabels
	case FormatPNG:
		k.NoLabels = o.NoLabels
		k.Scale = o.Scale
	case FormatText:
		k.Cols = o.TextCols
		k.Rows = o.TextRows
	}
	return k
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
