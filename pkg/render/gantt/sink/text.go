package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
)

const (
	fontHeightRatio = 0.6
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 16.0
)

// fontSizeFor picks a font size that fits a label of n characters in the
// given box, or 0 when even the minimum size does not fit.
func fontSizeFor(availWidth, availHeight float64, n int) float64 {
	n = max(1, n)
	byHeight := availHeight * fontHeightRatio
	byWidth := availWidth / (float64(n) * fontCharWidth)
	size := min(fontSizeMax, min(byHeight, byWidth))
	if size < fontSizeMin {
		return 0
	}
	return size
}

// Cell is one character of a rasterized layout.
type Cell struct {
	Rune rune
	// Category is empty for background and separator cells.
	Category  layout.Category
	Separator bool
}

const (
	runeTask         = '█'
	runeTransmission = '▒'
	runeSeparator    = '┄'
	runeEmpty        = ' '
)

// Rasterize maps l onto a cols×rows grid of cells. Every rect covers at
// least one cell so that short tasks stay visible. Labels are written over
// the left edge of a rect when they fit.
func Rasterize(l layout.Layout, cols, rows int) [][]Cell {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]Cell, rows)
	for i := range grid {
		grid[i] = make([]Cell, cols)
		for j := range grid[i] {
			grid[i][j].Rune = runeEmpty
		}
	}
	if l.CanvasWidth <= 0 || l.CanvasHeight <= 0 {
		return grid
	}

	sx := float64(cols) / l.CanvasWidth
	sy := float64(rows) / l.CanvasHeight

	for _, y := range l.Separators {
		r := cellIndex(y*sy, rows)
		if y >= l.CanvasHeight || r >= rows {
			continue
		}
		for c := range grid[r] {
			grid[r][c] = Cell{Rune: runeSeparator, Separator: true}
		}
	}

	for _, rect := range l.Rects {
		c0, c1 := span(rect.X*sx, rect.Right()*sx, cols)
		r0, r1 := span(rect.Y*sy, rect.Bottom()*sy, rows)
		fill := runeTask
		if rect.IsTransmission() {
			fill = runeTransmission
		}
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				grid[r][c] = Cell{Rune: fill, Category: rect.Category}
			}
		}
		label := []rune(rect.Label)
		if len(label) <= c1-c0 {
			mid := r0 + (r1-r0-1)/2
			for i, ch := range label {
				grid[mid][c0+i].Rune = ch
			}
		}
	}
	return grid
}

// RenderText renders l as plain text on a cols×rows grid, one line per row.
func RenderText(l layout.Layout, cols, rows int) string {
	grid := Rasterize(l, cols, rows)
	var sb strings.Builder
	for i, row := range grid {
		if i > 0 {
			sb.WriteByte('\n')
		}
		line := make([]rune, len(row))
		for j, c := range row {
			line[j] = c.Rune
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// span converts a [from, to) pixel range to a non-empty cell range.
func span(from, to float64, n int) (int, int) {
	a := cellIndex(from, n)
	b := min(n, int(math.Round(to)))
	if b <= a {
		b = min(n, a+1)
	}
	if a >= n {
		a = n - 1
	}
	return a, b
}

func cellIndex(v float64, n int) int {
	i := int(math.Floor(v))
	return max(0, min(n-1, i))
}
