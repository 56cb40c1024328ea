package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"nqdsheat/internal/present"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	labelStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// printHeatmap writes one view as a bordered table, rows labeled in the first column
func printHeatmap(w io.Writer, iteration int, h present.Heatmap) {
	m := h.Matrix
	rows, cols := m.Dims()
	rowLabels := m.RowLabels()

	headers := append([]string{string(m.RowAxis()) + ` \ ` + string(m.ColAxis())}, m.ColLabels()...)
	body := make([][]string, rows)
	for i := 0; i < rows; i++ {
		body[i] = make([]string, cols+1)
		body[i][0] = rowLabels[i]
		for j := 0; j < cols; j++ {
			body[i][j+1] = present.FormatValue(m.At(i, j))
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s, iteration %d)", h.Title, present.HeatmapID(iteration), iteration)))
	fmt.Fprintln(w, t.String())
}
