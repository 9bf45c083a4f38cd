package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/pipeline"
	"github.com/matzehuels/laneplot/pkg/render"
)

// sampleBase is the output base name when rendering the built-in sample.
const sampleBase = "sample"

// renderFlags holds the flags shared by render, layout and view.
type renderFlags struct {
	noCache bool
	redis   string
}

// addLayoutFlags registers the layout engine flags on cmd.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "canvas height in pixels")
	cmd.Flags().IntVar(&opts.RowWeight, "row-weight", pipeline.DefaultRowWeight, "task bar height in transmission rows")
	cmd.Flags().BoolVar(&opts.Integer, "integer", false, "truncate units and coordinates to whole pixels")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		flags      renderFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [schedule]",
		Short: "Render a schedule to SVG, PNG, PDF, JSON, text or DOT",
		Long: `Render a schedule file (.json, .toml or .hcl) as a lane chart.

With no file, the built-in sample schedule is rendered. Several formats may
be requested at once (-f svg,png); each is written next to the output base
path. Use -o - to write a single format to stdout.

Formats:
  svg   vector chart
  png   raster chart (--scale for resolution)
  pdf   chart converted with rsvg-convert
  json  layout document with every rect
  txt   text grid (--cols, --rows)
  dot   Graphviz source of the lane message graph
  flow  lane message graph rendered to SVG

Layouts and artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = pipeline.ParseFormats(formatsStr)
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, output, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatSVG, "output format(s): "+strings.Join(pipeline.FormatNames, ", ")+" (comma-separated)")
	addLayoutFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title (svg, pdf)")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit rect labels")
	cmd.Flags().IntVar(&opts.Scale, "scale", pipeline.DefaultScale, "png scale factor")
	cmd.Flags().IntVar(&opts.TextCols, "cols", pipeline.DefaultTextCols, "text grid columns (txt)")
	cmd.Flags().IntVar(&opts.TextRows, "rows", pipeline.DefaultTextRows, "text grid rows (txt)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.redis, "redis", "", "cache in Redis at this URL (default $"+envRedisURL+")")

	return cmd
}

// runRender loads the schedule, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, flags renderFlags) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if slices.Contains(opts.Formats, pipeline.FormatPDF) && !render.HasRSVG() {
		printWarning("pdf output needs rsvg-convert on PATH, skipping pdf")
		opts.Formats = slices.DeleteFunc(opts.Formats, func(f string) bool { return f == pipeline.FormatPDF })
		if len(opts.Formats) == 0 {
			return errors.New(errors.ErrCodeUnsupported, "no renderable formats left")
		}
	}
	if output == "-" && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(opts.Formats))
	}

	s, err := pipeline.LoadSchedule(input)
	if err != nil {
		return err
	}
	if input == "" {
		c.Logger.Debug("no schedule given, using the sample")
	}

	runner, err := c.newRunner(ctx, flags.noCache, flags.redis)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	opts.Logger = c.Logger
	res, err := runner.Execute(ctx, s, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(res.Artifacts)))

	if output == "-" {
		_, err := c.out.Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(input, output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(res.Stats, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	return nil
}

// outputPaths maps every format to its output file.
//
// A single format with an explicit output is written exactly there.
// Otherwise each format goes to base.ext, where base is the output with any
// known extension stripped, or the input path without its extension.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return sampleBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if slices.Contains(pipeline.FormatNames, ext) {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
