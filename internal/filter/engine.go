package filter

import (
	"sort"
	"strings"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal"
	"nqdsheat/internal/errors"
)

// Engine restricts, orders and transposes views
type Engine struct {
	logger *internal.Logger
}

// NewEngine creates a filter engine
func NewEngine(logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{logger: logger}
}

// Filter keeps the rows and columns whose labels are allowed by the selection
// entry for their axis. Axes without an entry are kept whole. Relative order is
// preserved.
func (e *Engine) Filter(m *misfit.Matrix, sel misfit.Selection) (*misfit.Matrix, error) {
	rows, err := allowedIndexes(m.RowAxis(), m.RowLabels(), sel)
	if err != nil {
		return nil, err
	}
	cols, err := allowedIndexes(m.ColAxis(), m.ColLabels(), sel)
	if err != nil {
		return nil, err
	}

	filtered, err := m.Select(rows, cols)
	if err != nil {
		return nil, errors.FromDomain(err)
	}
	r, c := filtered.Dims()
	e.logger.Debug("[FilterEngine] Filtered %s x %s to %dx%d", m.RowAxis(), m.ColAxis(), r, c)
	return filtered, nil
}

func allowedIndexes(axis misfit.Axis, labels []string, sel misfit.Selection) ([]int, error) {
	f, ok := sel[axis]
	if !ok {
		all := make([]int, len(labels))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	match, err := f.Matcher(axis)
	if err != nil {
		return nil, errors.FromDomain(err)
	}

	var keep []int
	for i, l := range labels {
		if match(l) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, errors.EmptyResult(string(axis))
	}
	return keep, nil
}

// Order sorts rows by their full tuple of column values. Ties keep their
// original relative order; missing cells sort after every value in both
// directions.
func (e *Engine) Order(m *misfit.Matrix, order misfit.Order) (*misfit.Matrix, error) {
	switch order {
	case misfit.OrderDefault:
		return m, nil
	case misfit.OrderAscend, misfit.OrderDescend:
	default:
		return nil, errors.InvalidMode(string(order))
	}

	rows := m.Values()
	perm := make([]int, len(rows))
	for i := range perm {
		perm[i] = i
	}
	descending := order == misfit.OrderDescend
	sort.SliceStable(perm, func(a, b int) bool {
		return compareRows(rows[perm[a]], rows[perm[b]], descending) < 0
	})

	_, c := m.Dims()
	cols := make([]int, c)
	for j := range cols {
		cols[j] = j
	}
	ordered, err := m.Select(perm, cols)
	if err != nil {
		return nil, errors.FromDomain(err)
	}
	return ordered, nil
}

// compareRows compares two rows lexicographically over column order
func compareRows(a, b []float64, descending bool) int {
	for j := range a {
		if c := compareCells(a[j], b[j], descending); c != 0 {
			return c
		}
	}
	return 0
}

func compareCells(x, y float64, descending bool) int {
	xm, ym := misfit.IsMissing(x), misfit.IsMissing(y)
	switch {
	case xm && ym:
		return 0
	case xm:
		return 1
	case ym:
		return -1
	case x == y:
		return 0
	}
	less := x < y
	if descending {
		less = !less
	}
	if less {
		return -1
	}
	return 1
}

// Transpose swaps rows and columns together with their axis names. The input is not modified.
func (e *Engine) Transpose(m *misfit.Matrix) *misfit.Matrix {
	return m.Transposed()
}

// ParseOrder maps a user-facing name to an Order
func ParseOrder(name string) (misfit.Order, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "none":
		return misfit.OrderDefault, nil
	case "ascend", "asc", "ascending":
		return misfit.OrderAscend, nil
	case "descend", "desc", "descending":
		return misfit.OrderDescend, nil
	}
	return "", errors.InvalidMode(name)
}
