package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/laneplot/pkg/pipeline"
	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
	"github.com/matzehuels/laneplot/pkg/render/gantt/sink"
)

// Chart styles
var (
	viewTaskStyle         = lipgloss.NewStyle().Foreground(colorCyan)
	viewTaskLabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(colorCyan)
	viewTransmissionStyle = lipgloss.NewStyle().Foreground(colorYellow)
	viewTxLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(colorYellow)
	viewSeparatorStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// viewChrome is the number of terminal lines used by the header and footer.
const viewChrome = 3

// viewCommand creates the interactive view command.
func (c *CLI) viewCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "view [schedule]",
		Short: "Draw a schedule interactively in the terminal",
		Long: `Draw a schedule in the terminal. The layout is computed once and redrawn
to fit the window whenever it is resized.

Keys: l toggles labels, q/esc/ctrl+c quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runView(cmd.Context(), input, opts, flags)
		},
	}

	addLayoutFlags(cmd, &opts)
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.redis, "redis", "", "cache in Redis at this URL (default $"+envRedisURL+")")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	s, err := pipeline.LoadSchedule(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, flags.redis)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, err := runner.Layout(ctx, s, opts)
	if err != nil {
		return err
	}

	name := input
	if name == "" {
		name = sampleBase
	}
	p := tea.NewProgram(newChartModel(l, name), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// ChartModel - Interactive chart view
// =============================================================================

// ChartModel is the bubbletea model that draws a fixed layout scaled to the
// terminal.
type ChartModel struct {
	Layout layout.Layout
	Name   string
	Width  int
	Height int
	Labels bool
}

// newChartModel creates a chart model with labels shown.
func newChartModel(l layout.Layout, name string) ChartModel {
	return ChartModel{Layout: l, Name: name, Labels: true}
}

func (m ChartModel) Init() tea.Cmd {
	return nil
}

func (m ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "l":
			m.Labels = !m.Labels
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	}
	return m, nil
}

func (m ChartModel) View() string {
	if m.Width <= 0 || m.Height <= viewChrome {
		return "waiting for terminal size..."
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d rects · max time %g · %dx%d", len(m.Layout.Rects), m.Layout.MaxTime, m.Width, m.Height-viewChrome)))
	b.WriteString("\n")

	grid := sink.Rasterize(m.Layout, m.Width, m.Height-viewChrome)
	for _, row := range grid {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("l labels  q quit"))
	return b.String()
}

// renderRow styles runs of cells that share a style in one call.
func (m ChartModel) renderRow(row []sink.Cell) string {
	var (
		b     strings.Builder
		run   []rune
		style *lipgloss.Style
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		if style == nil {
			b.WriteString(string(run))
		} else {
			b.WriteString(style.Render(string(run)))
		}
		run = run[:0]
	}

	for _, cell := range row {
		r, st := m.cellStyle(cell)
		if st != style {
			flush()
			style = st
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}

// cellStyle returns the rune to draw for cell and its style, or a nil
// style for background.
func (m ChartModel) cellStyle(cell sink.Cell) (rune, *lipgloss.Style) {
	fill := isFillRune(cell.Rune)
	switch {
	case cell.Separator:
		return cell.Rune, &viewSeparatorStyle
	case cell.Category == layout.CategoryTask:
		if fill {
			return cell.Rune, &viewTaskStyle
		}
		if !m.Labels {
			return '█', &viewTaskStyle
		}
		return cell.Rune, &viewTaskLabelStyle
	case cell.Category == layout.CategoryTransmission:
		if fill {
			return cell.Rune, &viewTransmissionStyle
		}
		if !m.Labels {
			return '▒', &viewTransmissionStyle
		}
		return cell.Rune, &viewTxLabelStyle
	}
	return cell.Rune, nil
}

func isFillRune(r rune) bool {
	return r == '█' || r == '▒'
}

var viewHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
