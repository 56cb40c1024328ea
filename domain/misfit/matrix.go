package misfit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MissingValue is the cell marker for (row, column) pairs with no records.
// Zero is a valid misfit, so absence is NaN rather than 0.
func MissingValue() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-cell marker
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// ValidPairing reports whether (row, col) is one of the supported view pairings
// or a transpose of one.
func ValidPairing(row, col Axis) bool {
	switch {
	case row == AxisWells && col == AxisModels,
		row == AxisAttributes && col == AxisModels,
		row == AxisWells && col == AxisAttributes:
		return true
	case col == AxisWells && row == AxisModels,
		col == AxisAttributes && row == AxisModels,
		col == AxisWells && row == AxisAttributes:
		return true
	}
	return false
}

// Matrix is a labeled 2D view of reduced misfit values. It is never mutated
// after construction; every transformation returns a new Matrix.
type Matrix struct {
	rowAxis   Axis
	colAxis   Axis
	rowLabels []string
	colLabels []string
	cells     *mat.Dense
}

// NewMatrix builds a Matrix from a row-major grid of values. values must have
// len(rowLabels) rows of len(colLabels) cells each.
func NewMatrix(rowAxis, colAxis Axis, rowLabels, colLabels []string, values [][]float64) (*Matrix, error) {
	if !ValidPairing(rowAxis, colAxis) {
		return nil, fmt.Errorf("%w %s x %s", ErrUnsupportedPairing, rowAxis, colAxis)
	}
	if len(rowLabels) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAxis, rowAxis)
	}
	if len(colLabels) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAxis, colAxis)
	}
	if err := checkUnique(rowAxis, rowLabels); err != nil {
		return nil, err
	}
	if err := checkUnique(colAxis, colLabels); err != nil {
		return nil, err
	}
	if len(values) != len(rowLabels) {
		return nil, fmt.Errorf("%w: %d rows of values for %d labels", ErrInvalidMatrix, len(values), len(rowLabels))
	}

	r, c := len(rowLabels), len(colLabels)
	data := make([]float64, 0, r*c)
	for i, row := range values {
		if len(row) != c {
			return nil, fmt.Errorf("%w: row %d has %d values for %d columns", ErrInvalidMatrix, i, len(row), c)
		}
		data = append(data, row...)
	}

	return &Matrix{
		rowAxis:   rowAxis,
		colAxis:   colAxis,
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		cells:     mat.NewDense(r, c, data),
	}, nil
}

func checkUnique(axis Axis, labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%w: duplicate label %q on axis %s", ErrInvalidMatrix, l, axis)
		}
		seen[l] = struct{}{}
	}
	return nil
}

// RowAxis returns the name of the row axis
func (m *Matrix) RowAxis() Axis { return m.rowAxis }

// ColAxis returns the name of the column axis
func (m *Matrix) ColAxis() Axis { return m.colAxis }

// RowLabels returns a copy of the row labels in display order
func (m *Matrix) RowLabels() []string { return append([]string(nil), m.rowLabels...) }

// ColLabels returns a copy of the column labels in display order
func (m *Matrix) ColLabels() []string { return append([]string(nil), m.colLabels...) }

// Dims returns the number of rows and columns
func (m *Matrix) Dims() (rows, cols int) { return m.cells.Dims() }

// At returns the cell at row i, column j. Missing cells return NaN.
func (m *Matrix) At(i, j int) float64 { return m.cells.At(i, j) }

// Missing reports whether the cell at (i, j) has no underlying records
func (m *Matrix) Missing(i, j int) bool { return IsMissing(m.cells.At(i, j)) }

// Row returns a copy of row i
func (m *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.cells)
}

// Values returns a row-major copy of all cells
func (m *Matrix) Values() [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Transposed returns a new Matrix with rows and columns swapped
func (m *Matrix) Transposed() *Matrix {
	return &Matrix{
		rowAxis:   m.colAxis,
		colAxis:   m.rowAxis,
		rowLabels: m.ColLabels(),
		colLabels: m.RowLabels(),
		cells:     mat.DenseCopyOf(m.cells.T()),
	}
}

// Select returns a new Matrix holding the given rows and columns, in the given order
func (m *Matrix) Select(rows, cols []int) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAxis, m.rowAxis)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAxis, m.colAxis)
	}

	rowLabels := make([]string, len(rows))
	colLabels := make([]string, len(cols))
	values := make([][]float64, len(rows))
	for j, c := range cols {
		colLabels[j] = m.colLabels[c]
	}
	for i, r := range rows {
		rowLabels[i] = m.rowLabels[r]
		values[i] = make([]float64, len(cols))
		for j, c := range cols {
			values[i][j] = m.cells.At(r, c)
		}
	}
	return NewMatrix(m.rowAxis, m.colAxis, rowLabels, colLabels, values)
}

// Equal reports whether two matrices have the same axes, labels and cells.
// Missing cells compare equal to each other.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rowAxis != other.rowAxis || m.colAxis != other.colAxis {
		return false
	}
	if !equalStrings(m.rowLabels, other.rowLabels) || !equalStrings(m.colLabels, other.colLabels) {
		return false
	}
	return equalWithMissing(m.cells, other.cells)
}

func equalWithMissing(a, b *mat.Dense) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			x, y := a.At(i, j), b.At(i, j)
			if IsMissing(x) && IsMissing(y) {
				continue
			}
			if x != y {
				return false
			}
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
