// Package present assembles the read-only values handed to the heatmap renderer.
package present

import (
	"fmt"

	"nqdsheat/domain/misfit"
)

// modelTickStride labels every 25th model so long model axes stay readable
const modelTickStride = 25

// ColorScale describes the value-to-color mapping of a heatmap
type ColorScale struct {
	Name       string
	Min        float64
	Max        float64
	TickValues []float64
	TickText   []string
}

// DefaultColorScale clamps misfit colors to 0..20
func DefaultColorScale() ColorScale {
	return ColorScale{
		Name:       "bluered",
		Min:        0,
		Max:        20,
		TickValues: []float64{0, 2, 5, 10, 20},
		TickText:   []string{"1", "2", "5", "10", "20"},
	}
}

// Ticks are the labeled positions along one axis
type Ticks struct {
	Title     string
	Positions []int
	Labels    []string
}

// Heatmap is everything a renderer needs to draw one view
type Heatmap struct {
	Title      string
	Matrix     *misfit.Matrix
	HoverText  [][]string
	XTicks     Ticks
	YTicks     Ticks
	ColorScale ColorScale
}

// Describe builds the renderer payload for m. An empty colorScale keeps the default name.
func Describe(m *misfit.Matrix, colorScale string) Heatmap {
	scale := DefaultColorScale()
	if colorScale != "" {
		scale.Name = colorScale
	}
	return Heatmap{
		Title:      Title(m),
		Matrix:     m,
		HoverText:  HoverText(m),
		XTicks:     AxisTicks(m.ColAxis(), m.ColLabels()),
		YTicks:     AxisTicks(m.RowAxis(), m.RowLabels()),
		ColorScale: scale,
	}
}

// Title names a view by its axes, rows first: "Wells x Models"
func Title(m *misfit.Matrix) string {
	return fmt.Sprintf("%s x %s", m.RowAxis(), m.ColAxis())
}

// HoverText returns one caption per cell, shaped like m
func HoverText(m *misfit.Matrix) [][]string {
	rowName := m.RowAxis().Singular()
	colName := m.ColAxis().Singular()
	rowLabels := m.RowLabels()
	colLabels := m.ColLabels()

	text := make([][]string, len(rowLabels))
	for i, row := range rowLabels {
		text[i] = make([]string, len(colLabels))
		for j, col := range colLabels {
			text[i][j] = fmt.Sprintf("%s: %s<br>%s: %s<br>Value: %s",
				rowName, row, colName, col, FormatValue(m.At(i, j)))
		}
	}
	return text
}

// FormatValue renders a cell with two decimals, or "n/a" when missing
func FormatValue(v float64) string {
	if misfit.IsMissing(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// AxisTicks labels every position, except on the Models axis where only
// every 25th position is labeled with its 1-based index.
func AxisTicks(axis misfit.Axis, labels []string) Ticks {
	ticks := Ticks{Title: string(axis)}
	if axis == misfit.AxisModels {
		for i := modelTickStride - 1; i < len(labels); i += modelTickStride {
			ticks.Positions = append(ticks.Positions, i)
			ticks.Labels = append(ticks.Labels, fmt.Sprint(i+1))
		}
		return ticks
	}

	ticks.Positions = make([]int, len(labels))
	for i := range labels {
		ticks.Positions[i] = i
	}
	ticks.Labels = append([]string(nil), labels...)
	return ticks
}

// HeatmapID names the graph element of one iteration's heatmap
func HeatmapID(iteration int) string {
	return fmt.Sprintf("heatmap-%d", iteration)
}
