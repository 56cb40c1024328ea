package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal"
	"nqdsheat/internal/errors"
)

var nan = math.NaN()

func newTestEngine() *Engine {
	return NewEngine(internal.NewLogger(internal.LogLevelError))
}

func modelLabels(lo, hi int) []string {
	var labels []string
	for m := lo; m <= hi; m++ {
		labels = append(labels, misfit.ModelLabel(m))
	}
	return labels
}

// wellsByModels builds a 3x10 Wells x Models matrix where cell (i, j) = i*10 + j
func wellsByModels(t *testing.T) *misfit.Matrix {
	t.Helper()
	models := modelLabels(1, 10)
	values := make([][]float64, 3)
	for i := range values {
		values[i] = make([]float64, len(models))
		for j := range models {
			values[i][j] = float64(i*10 + j)
		}
	}
	m, err := misfit.NewMatrix(misfit.AxisWells, misfit.AxisModels, []string{"INJ1", "PROD1", "PROD2"}, models, values)
	require.NoError(t, err)
	return m
}

func TestEngine_Filter_ModelRangeMatchesExactList(t *testing.T) {
	e := newTestEngine()
	m := wellsByModels(t)

	r, err := misfit.NewModelRange(3, 7)
	require.NoError(t, err)
	byRange, err := e.Filter(m, misfit.Selection{misfit.AxisModels: r})
	require.NoError(t, err)
	byList, err := e.Filter(m, misfit.Selection{misfit.AxisModels: misfit.ExactModels(3, 4, 5, 6, 7)})
	require.NoError(t, err)

	assert.True(t, byRange.Equal(byList))
	assert.Equal(t, []string{"3", "4", "5", "6", "7"}, byRange.ColLabels())
}

func TestEngine_Filter_KeepsRelativeOrder(t *testing.T) {
	m := wellsByModels(t)
	out, err := newTestEngine().Filter(m, misfit.Selection{
		misfit.AxisWells: misfit.ExactSet("PROD2", "INJ1", "UNKNOWN"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"INJ1", "PROD2"}, out.RowLabels())
	assert.Equal(t, m.ColLabels(), out.ColLabels())
	assert.Equal(t, 20.0, out.At(1, 0))
}

func TestEngine_Filter_IgnoresAxesNotInView(t *testing.T) {
	m := wellsByModels(t)
	out, err := newTestEngine().Filter(m, misfit.Selection{
		misfit.AxisAttributes: misfit.ExactSet("QO"),
	})
	require.NoError(t, err)
	assert.True(t, out.Equal(m))
}

func TestEngine_Filter_Errors(t *testing.T) {
	e := newTestEngine()
	m := wellsByModels(t)

	_, err := e.Filter(m, misfit.Selection{misfit.AxisWells: misfit.ExactSet("NOPE")})
	assert.ErrorIs(t, err, errors.ErrEmptyResult)

	r, err := misfit.NewModelRange(20, 30)
	require.NoError(t, err)
	_, err = e.Filter(m, misfit.Selection{misfit.AxisModels: r})
	assert.ErrorIs(t, err, errors.ErrEmptyResult)

	_, err = misfit.NewModelRange(7, 3)
	assert.ErrorIs(t, err, misfit.ErrInvalidRange)
}

func TestEngine_Filter_ModelRangeExtremeBounds(t *testing.T) {
	e := newTestEngine()
	m := wellsByModels(t)

	tests := []struct {
		name   string
		lo, hi int
		want   []string
	}{
		{"up to max int", 1, math.MaxInt, modelLabels(1, 10)},
		{"full int range", math.MinInt, math.MaxInt, modelLabels(1, 10)},
		{"from min int", math.MinInt, 5, modelLabels(1, 5)},
		{"wide upper tail", 8, math.MaxInt - 1, modelLabels(8, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := misfit.NewModelRange(tt.lo, tt.hi)
			require.NoError(t, err)
			out, err := e.Filter(m, misfit.Selection{misfit.AxisModels: r})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.ColLabels())
		})
	}

	r, err := misfit.NewModelRange(math.MaxInt-1, math.MaxInt)
	require.NoError(t, err)
	_, err = e.Filter(m, misfit.Selection{misfit.AxisModels: r})
	assert.ErrorIs(t, err, errors.ErrEmptyResult)
}

func TestEngine_Filter_DoesNotMutateInput(t *testing.T) {
	m := wellsByModels(t)
	before := m.Values()
	_, err := newTestEngine().Filter(m, misfit.Selection{misfit.AxisWells: misfit.ExactSet("PROD1")})
	require.NoError(t, err)
	assert.Equal(t, before, m.Values())
	assert.Equal(t, []string{"INJ1", "PROD1", "PROD2"}, m.RowLabels())
}

func orderMatrix(t *testing.T, rows []string, values [][]float64) *misfit.Matrix {
	t.Helper()
	m, err := misfit.NewMatrix(misfit.AxisWells, misfit.AxisAttributes, rows, []string{"BHP", "QO"}, values)
	require.NoError(t, err)
	return m
}

func TestEngine_Order(t *testing.T) {
	m := orderMatrix(t, []string{"A", "B", "C", "D"}, [][]float64{
		{2, 1},
		{1, 9},
		{2, 0},
		{1, 9},
	})
	e := newTestEngine()

	asc, err := e.Order(m, misfit.OrderAscend)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D", "C", "A"}, asc.RowLabels(), "ties keep original order")

	desc, err := e.Order(m, misfit.OrderDescend)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B", "D"}, desc.RowLabels())

	def, err := e.Order(m, misfit.OrderDefault)
	require.NoError(t, err)
	assert.True(t, def.Equal(m))
}

func TestEngine_Order_Idempotent(t *testing.T) {
	m := orderMatrix(t, []string{"A", "B", "C"}, [][]float64{{3, 1}, {1, 2}, {2, 2}})
	e := newTestEngine()

	for _, order := range []misfit.Order{misfit.OrderAscend, misfit.OrderDescend} {
		once, err := e.Order(m, order)
		require.NoError(t, err)
		twice, err := e.Order(once, order)
		require.NoError(t, err)
		assert.True(t, once.Equal(twice), order)
	}
}

func TestEngine_Order_MissingLast(t *testing.T) {
	m := orderMatrix(t, []string{"A", "B", "C"}, [][]float64{{nan, 1}, {5, nan}, {1, 1}})
	e := newTestEngine()

	asc, err := e.Order(m, misfit.OrderAscend)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, asc.RowLabels())

	desc, err := e.Order(m, misfit.OrderDescend)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, desc.RowLabels())
}

func TestEngine_Order_Invalid(t *testing.T) {
	m := orderMatrix(t, []string{"A"}, [][]float64{{1, 2}})
	_, err := newTestEngine().Order(m, misfit.Order("sideways"))
	assert.ErrorIs(t, err, errors.ErrInvalidMode)
}

func TestEngine_Transpose(t *testing.T) {
	e := newTestEngine()
	m := wellsByModels(t)

	tr := e.Transpose(m)
	assert.Equal(t, misfit.AxisModels, tr.RowAxis())
	assert.Equal(t, misfit.AxisWells, tr.ColAxis())
	assert.Equal(t, m.ColLabels(), tr.RowLabels())
	assert.Equal(t, m.At(2, 4), tr.At(4, 2))

	assert.True(t, e.Transpose(tr).Equal(m))
	assert.Equal(t, misfit.AxisWells, m.RowAxis(), "input untouched")
}

// Filtering after a transpose still resolves each filter against its own axis.
func TestEngine_Filter_AfterTranspose(t *testing.T) {
	e := newTestEngine()
	r, err := misfit.NewModelRange(1, 2)
	require.NoError(t, err)

	out, err := e.Filter(e.Transpose(wellsByModels(t)), misfit.Selection{
		misfit.AxisModels: r,
		misfit.AxisWells:  misfit.ExactSet("PROD1"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, out.RowLabels())
	assert.Equal(t, []string{"PROD1"}, out.ColLabels())
	assert.Equal(t, [][]float64{{10}, {11}}, out.Values())
}

func TestParseOrder(t *testing.T) {
	for name, want := range map[string]misfit.Order{
		"":        misfit.OrderDefault,
		"Default": misfit.OrderDefault,
		"asc":     misfit.OrderAscend,
		"ascend":  misfit.OrderAscend,
		"DESCEND": misfit.OrderDescend,
	} {
		got, err := ParseOrder(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}
	_, err := ParseOrder("random")
	assert.ErrorIs(t, err, errors.ErrInvalidMode)
}
