package chart

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/andy/rebancariza/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(values ...float64) []Point {
	out := make([]Point, len(values))
	for i, v := range values {
		out[i] = Point{Label: fmt.Sprintf("%02d/03", i+1), Value: v}
	}
	return out
}

func markerRows(out string) []int {
	var rows []int
	for i, line := range strings.Split(out, "\n") {
		if strings.ContainsRune(line, marker) {
			rows = append(rows, i)
		}
	}
	return rows
}

func TestLine_Empty(t *testing.T) {
	assert.Equal(t, "", Line(nil, Options{Width: 60, Height: 11}))
}

func TestLine_FlatSeriesOnMiddleRow(t *testing.T) {
	out := Line(series(500, 500, 500), Options{Width: 40, Height: 11, Symbol: "S/"})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, []int{5}, markerRows(out))
	assert.Equal(t, 3, strings.Count(lines[5], string(marker)))
}

func TestLine_ExtremesAndLabels(t *testing.T) {
	out := Line(series(100, 300, 200), Options{Width: 40, Height: 11, Symbol: "S/"})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[0], "S/ 300 ┤"), lines[0])
	assert.True(t, strings.HasPrefix(lines[10], "S/ 100 ┤"), lines[10])
	assert.True(t, strings.HasPrefix(lines[2], "S/ 260 ┤"), lines[2])
	assert.Contains(t, lines[0], string(marker))
	assert.Contains(t, lines[10], string(marker))
	assert.Contains(t, lines[11], "└")
}

func TestLine_XAxisLabels(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(1000 + i*10)
	}

	out := Line(series(values...), Options{Width: 60, Height: 10, Symbol: "S/"})

	lines := strings.Split(out, "\n")
	xLabels := lines[len(lines)-1]
	assert.Equal(t, xLabelCount, strings.Count(xLabels, "/"))
	assert.Contains(t, xLabels, "01/03")
	assert.Contains(t, xLabels, "30/03")
}

func TestLine_SmallOptionsAreClamped(t *testing.T) {
	out := Line(series(1, 2), Options{})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, minHeight+2)
}

func TestPoints(t *testing.T) {
	gen := service.BalanceGenerator{Days: 7}
	today := domain.NewDate(2024, time.March, 10)

	pts := Points(gen.Generate(service.SampleClients(), today))

	require.Len(t, pts, 7)
	assert.Equal(t, "04/03", pts[0].Label)
	assert.Equal(t, "10/03", pts[6].Label)
}
