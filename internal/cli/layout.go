package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/laneplot/pkg/pipeline"
	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
	"github.com/matzehuels/laneplot/pkg/render/gantt/sink"
)

// layoutCommand creates the layout command, which reports how a schedule
// is partitioned without drawing it.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		asJSON bool
		flags  renderFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [schedule]",
		Short: "Show the extents, lane profile and units of a schedule",
		Long: `Show how a schedule is laid out: the time extent, the lane profile with
each lane's row budget and offset, and the resolved pixel units.

With --json, the full layout document (the same as 'render -f json') is
printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runLayout(cmd.Context(), input, opts, asJSON, flags)
		},
	}

	addLayoutFlags(cmd, &opts)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.redis, "redis", "", "cache in Redis at this URL (default $"+envRedisURL+")")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, asJSON bool, flags renderFlags) error {
	s, err := pipeline.LoadSchedule(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, flags.redis)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, hit, err := runner.LayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := sink.RenderJSON(l)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.out, "%s\n", data)
		return err
	}

	fmt.Fprintln(c.out, StyleTitle.Render("Layout"))
	fmt.Fprintln(c.out, layoutSummary(l))
	fmt.Fprintln(c.out, laneTable(l))
	printStats(pipeline.Stats{
		TaskCount:         len(s),
		LaneCount:         l.Profile.UsedLanes(),
		TransmissionCount: s.TransmissionCount(),
	}, hit)
	return nil
}

// layoutSummary renders the scalar facts of a layout as key/value lines.
func layoutSummary(l layout.Layout) string {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	rows := [][2]string{
		{"canvas", fmt.Sprintf("%gx%g", l.CanvasWidth, l.CanvasHeight)},
		{"max time", strconv.FormatFloat(l.MaxTime, 'g', -1, 64)},
		{"max lane", strconv.Itoa(l.MaxLane)},
		{"row weight", strconv.Itoa(l.RowWeight)},
		{"rows", strconv.Itoa(l.SumRows)},
		{"units", fmt.Sprintf("x=%g y=%g (%s)", l.Units.X, l.Units.Y, l.Numeric)},
		{"rects", strconv.Itoa(len(l.Rects))},
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(keyStyle.Render(r[0]) + " " + StyleValue.Render(r[1]))
	}
	return b.String()
}

// laneTable renders one row per profile slot: its transmission count, row
// budget, row offset and pixel band. Unused lanes are listed dimmed.
func laneTable(l layout.Layout) string {
	bands := make(map[int]layout.LaneBand)
	for _, b := range l.LaneBands() {
		bands[b.Lane] = b
	}

	rows := make([][]string, 0, len(l.Profile))
	for lane, slot := range l.Profile {
		n, used := slot.MaxTransmissions()
		if !used {
			rows = append(rows, []string{strconv.Itoa(lane), "unused", "-", "-", "-"})
			continue
		}
		offset, _ := l.Profile.RowsBefore(lane, l.RowWeight)
		b := bands[lane]
		rows = append(rows, []string{
			strconv.Itoa(lane),
			strconv.Itoa(n),
			strconv.Itoa(slot.Rows(l.RowWeight)),
			strconv.Itoa(offset),
			fmt.Sprintf("%g–%g", b.Top, b.Bottom),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Lane", "Transmissions", "Rows", "Offset", "Band (px)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if row >= 0 && row < len(rows) && rows[row][1] == "unused" {
				return base.Foreground(colorDim)
			}
			if col == 0 {
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		})
	return t.Render()
}
