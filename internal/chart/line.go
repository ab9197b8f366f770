// Package chart draws the balance history as a plain-text line chart. The
// output carries no styling; callers color it.
package chart

import (
	"math"
	"strings"

	"github.com/andy/rebancariza/internal/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Point is one plotted value with its X-axis label.
type Point struct {
	Label string
	Value float64
}

// Options controls the chart size and Y-axis currency.
type Options struct {
	Width  int // total columns including the Y axis
	Height int // plot rows, excluding the X axis and its labels
	Symbol string
}

const (
	gridIntervals = 5
	xLabelCount   = 6

	marker    = '●'
	vertical  = '│'
	flat      = '─'
	gridRune  = '┄'
	minHeight = gridIntervals + 1
	minWidth  = 20
)

// Points converts a balance series to chart points labeled "02/01".
func Points(series []service.BalancePoint) []Point {
	out := make([]Point, len(series))
	for i, p := range series {
		out[i] = Point{Label: p.Date.Format("02/01"), Value: p.Balance}
	}
	return out
}

// Line renders points as a step line over a grid with five intervals. A
// flat series is drawn along the middle row.
func Line(points []Point, opts Options) string {
	if len(points) == 0 {
		return ""
	}
	rows := max(opts.Height, minHeight)
	width := max(opts.Width, minWidth)

	lo, hi := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}

	// Y labels, top to bottom
	yLabels := make(map[int]string, gridIntervals+1)
	labelW := 0
	for i := 0; i <= gridIntervals; i++ {
		row := tickRow(i, rows)
		label := moneyLabel(hi-(hi-lo)*float64(i)/gridIntervals, opts.Symbol)
		yLabels[row] = label
		labelW = max(labelW, len([]rune(label)))
	}

	plotW := max(width-labelW-2, 2)
	grid := make([][]rune, rows)
	for r := range grid {
		fill := ' '
		if _, ok := yLabels[r]; ok {
			fill = gridRune
		}
		grid[r] = []rune(strings.Repeat(string(fill), plotW))
	}

	rowOf := func(v float64) int {
		if hi == lo {
			return (rows - 1) / 2
		}
		return int(math.Round((hi - v) / (hi - lo) * float64(rows-1)))
	}

	prevX, prevRow := -1, -1
	for i, p := range points {
		x := column(i, len(points), plotW)
		r := rowOf(p.Value)
		if prevX >= 0 {
			for c := prevX + 1; c < x; c++ {
				grid[prevRow][c] = flat
			}
			for rr := min(prevRow, r); rr <= max(prevRow, r); rr++ {
				grid[rr][x] = vertical
			}
		}
		grid[r][x] = marker
		prevX, prevRow = x, r
	}

	var b strings.Builder
	for r, line := range grid {
		label := yLabels[r]
		b.WriteString(strings.Repeat(" ", labelW-len([]rune(label))))
		b.WriteString(label)
		if label != "" {
			b.WriteString(" ┤")
		} else {
			b.WriteString(" │")
		}
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", labelW+1))
	b.WriteString("└")
	b.WriteString(strings.Repeat("─", plotW))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", labelW+2))
	b.WriteString(strings.TrimRight(xAxis(points, plotW), " "))
	return b.String()
}

// tickRow returns the plot row of grid line i, 0 being the top.
func tickRow(i, rows int) int {
	return int(math.Round(float64(i) * float64(rows-1) / gridIntervals))
}

// column spreads n points evenly over width columns.
func column(i, n, width int) int {
	if n == 1 {
		return 0
	}
	return int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
}

// xAxis places about six evenly spaced labels under their points, skipping
// any that would overlap the previous one.
func xAxis(points []Point, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	seen := make(map[int]bool, xLabelCount)
	for k := 0; k < xLabelCount; k++ {
		idx := 0
		if len(points) > 1 {
			idx = int(math.Round(float64(k) * float64(len(points)-1) / (xLabelCount - 1)))
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true

		label := []rune(points[idx].Label)
		start := column(idx, len(points), width)
		if start+len(label) > width {
			start = width - len(label)
		}
		if start < next || start < 0 {
			continue
		}
		copy(line[start:], label)
		next = start + len(label) + 1
	}
	return string(line)
}

// moneyLabel formats whole currency units with grouping, "S/ 1,250".
func moneyLabel(v float64, symbol string) string {
	p := message.NewPrinter(language.English)
	if symbol == "" {
		return p.Sprintf("%.0f", v)
	}
	return p.Sprintf("%s %.0f", symbol, v)
}
