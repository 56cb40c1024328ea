package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal"
	"nqdsheat/internal/errors"
)

// Engine reduces an iteration table into a pivoted view
type Engine struct {
	logger *internal.Logger
}

// NewEngine creates an aggregation engine
func NewEngine(logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{logger: logger}
}

type cellKey struct {
	row string
	col string
}

// Aggregate groups the table's records by the two axes of kind, reduces each
// group's absolute values by mode, and pivots the result. Combinations with
// no records are left as missing cells.
func (e *Engine) Aggregate(table misfit.IterationTable, kind misfit.ViewKind, mode misfit.Mode) (*misfit.Matrix, error) {
	rowAxis, colAxis, ok := kind.Axes()
	if !ok {
		return nil, errors.InvalidViewKind(string(kind))
	}
	if !mode.Valid() {
		return nil, errors.InvalidMode(string(mode))
	}
	if table.Len() == 0 {
		return nil, errors.EmptyTable(table.Iteration)
	}

	e.logger.Debug("[AggregationEngine] %s x %s, mode %s, iteration %d (%d records)",
		rowAxis, colAxis, mode, table.Iteration, table.Len())

	groups := make(map[cellKey][]float64)
	rowSet := make(map[string]struct{})
	colSet := make(map[string]struct{})
	for _, r := range table.Records {
		key := cellKey{row: axisKey(rowAxis, r), col: axisKey(colAxis, r)}
		groups[key] = append(groups[key], math.Abs(r.Value))
		rowSet[key.row] = struct{}{}
		colSet[key.col] = struct{}{}
	}

	rowLabels := sortedLabels(rowSet)
	colLabels := sortedLabels(colSet)
	colIndex := make(map[string]int, len(colLabels))
	for j, c := range colLabels {
		colIndex[c] = j
	}
	rowIndex := make(map[string]int, len(rowLabels))
	values := make([][]float64, len(rowLabels))
	for i, r := range rowLabels {
		rowIndex[r] = i
		values[i] = make([]float64, len(colLabels))
		for j := range values[i] {
			values[i][j] = misfit.MissingValue()
		}
	}

	for key, group := range groups {
		v, err := Reduce(group, mode)
		if err != nil {
			return nil, err
		}
		values[rowIndex[key.row]][colIndex[key.col]] = v
	}

	m, err := misfit.NewMatrix(rowAxis, colAxis, rowLabels, colLabels, values)
	if err != nil {
		return nil, errors.FromDomain(err)
	}
	return m, nil
}

// Reduce applies mode to a non-empty group of values
func Reduce(values []float64, mode misfit.Mode) (float64, error) {
	var (
		v   float64
		err error
	)
	switch mode {
	case misfit.ModeAvg:
		v, err = stats.Mean(values)
	case misfit.ModeMin:
		v, err = stats.Min(values)
	case misfit.ModeMax:
		v, err = stats.Max(values)
	default:
		return 0, errors.InvalidMode(string(mode))
	}
	if err != nil {
		return 0, errors.Wrapf(err, "reducing %d values by %s", len(values), mode)
	}
	return v, nil
}

func axisKey(axis misfit.Axis, r misfit.Record) string {
	switch axis {
	case misfit.AxisWells:
		return r.Well
	case misfit.AxisAttributes:
		return r.Attribute
	default:
		return misfit.ModelLabel(r.Model)
	}
}

// sortedLabels orders labels naturally; model labels are plain integers so
// they come out in numeric order.
func sortedLabels(set map[string]struct{}) []string {
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return misfit.NaturalLess(labels[i], labels[j]) })
	return labels
}

// ParseMode maps a user-facing name to a Mode
func ParseMode(name string) (misfit.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "min", "minimum":
		return misfit.ModeMin, nil
	case "max", "maximum":
		return misfit.ModeMax, nil
	case "avg", "average", "mean":
		return misfit.ModeAvg, nil
	}
	return "", errors.InvalidMode(name)
}

// ParseViewKind maps a user-facing name to a ViewKind
func ParseViewKind(name string) (misfit.ViewKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer(" x ", "-", "_", "-", " ", "-").Replace(normalized)
	for strings.Contains(normalized, "--") {
		normalized = strings.ReplaceAll(normalized, "--", "-")
	}
	kind := misfit.ViewKind(normalized)
	if !kind.Valid() {
		return "", errors.InvalidViewKind(name)
	}
	return kind, nil
}
