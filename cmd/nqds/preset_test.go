package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal"
	"nqdsheat/internal/errors"
	"nqdsheat/internal/session"
)

func TestParsePreset_Request(t *testing.T) {
	p, err := ParsePreset([]byte(`
kind: attributes x models
mode: average
iterations: [2, 1]
order: desc
transposed: true
filters:
  Wells: [PROD1, PROD2]
  Models: [1, 50]
  Attributes: {labels: [QO]}
`))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, p.Iterations)

	req, err := p.Request()
	require.NoError(t, err)
	assert.Equal(t, misfit.ViewAttributesModels, req.Kind)
	assert.Equal(t, misfit.ModeAvg, req.Mode)
	assert.Equal(t, misfit.OrderDescend, req.Order)
	assert.True(t, req.Transposed)

	models := req.Filters[misfit.AxisModels]
	require.True(t, models.IsRange())
	lo, hi := models.Bounds()
	assert.Equal(t, [2]int{1, 50}, [2]int{lo, hi})

	assert.False(t, req.Filters[misfit.AxisWells].IsRange())
	match, err := req.Filters[misfit.AxisAttributes].Matcher(misfit.AxisAttributes)
	require.NoError(t, err)
	assert.True(t, match("QO"))
	assert.False(t, match("QW"))
}

func TestParsePreset_ExplicitRange(t *testing.T) {
	p, err := ParsePreset([]byte("filters:\n  Models: {range: [9, 3]}\n"))
	require.NoError(t, err)
	_, err = p.Request()
	assert.ErrorIs(t, err, errors.ErrInvalidRange)

	p, err = ParsePreset([]byte("filters:\n  Models: {range: [3]}\n"))
	require.NoError(t, err)
	_, err = p.Request()
	assert.Error(t, err)
}

func TestParsePreset_EmptyFieldsStayUnset(t *testing.T) {
	p, err := ParsePreset([]byte("iterations: [4]\n"))
	require.NoError(t, err)
	req, err := p.Request()
	require.NoError(t, err)
	assert.Equal(t, session.ViewRequest{}, req)
}

func TestParsePreset_Invalid(t *testing.T) {
	_, err := ParsePreset([]byte("kind: [unclosed"))
	assert.Error(t, err)

	p, err := ParsePreset([]byte("mode: median\n"))
	require.NoError(t, err)
	_, err = p.Request()
	assert.ErrorIs(t, err, errors.ErrInvalidMode)
}

func TestParseModelRange(t *testing.T) {
	f, err := parseModelRange("3:7")
	require.NoError(t, err)
	lo, hi := f.Bounds()
	assert.Equal(t, 3, lo)
	assert.Equal(t, 7, hi)

	_, err = parseModelRange("7:3")
	assert.ErrorIs(t, err, errors.ErrInvalidRange)

	_, err = parseModelRange("seven")
	assert.Error(t, err)
}

func TestAddFlagFilters(t *testing.T) {
	req := session.ViewRequest{}
	require.NoError(t, addFlagFilters(&req, []string{"PROD1"}, nil, "1:2"))
	assert.Len(t, req.Filters, 2)
	assert.True(t, req.Filters[misfit.AxisModels].IsRange())

	req = session.ViewRequest{}
	require.NoError(t, addFlagFilters(&req, nil, nil, ""))
	assert.Nil(t, req.Filters)
}

func TestParsePreset_AxisKeysIgnoreCase(t *testing.T) {
	p, err := ParsePreset([]byte("filters:\n  wells: [PROD1]\n  MODELS: {range: [2, 4]}\n"))
	require.NoError(t, err)
	req, err := p.Request()
	require.NoError(t, err)

	require.Contains(t, req.Filters, misfit.AxisWells)
	require.Contains(t, req.Filters, misfit.AxisModels)
	assert.True(t, req.Filters[misfit.AxisModels].IsRange())
}

func TestParsePreset_UnknownAxisRejected(t *testing.T) {
	for _, doc := range []string{
		"filters:\n  well: [PROD1]\n",
		"filters:\n  Depth: [1]\n",
		"filters:\n  wells: [PROD1]\n  Wells: [PROD2]\n",
	} {
		p, err := ParsePreset([]byte(doc))
		require.NoError(t, err)
		_, err = p.Request()
		assert.Error(t, err, doc)
	}
}

func TestDefaultFilters(t *testing.T) {
	controller := session.NewController(nil, internal.NewLogger(internal.LogLevelError))
	require.NoError(t, controller.LoadLines([]string{
		"1;Mod_1;NQDS QO - PROD1;1.0",
		"1;Mod_3;NQDS QW - PROD2;2.0",
	}))

	req := session.ViewRequest{Filters: misfit.Selection{misfit.AxisWells: misfit.ExactSet("PROD2")}}
	require.NoError(t, defaultFilters(controller, &req))
	require.Len(t, req.Filters, 3)

	lo, hi := req.Filters[misfit.AxisModels].Bounds()
	assert.Equal(t, [2]int{1, 3}, [2]int{lo, hi})

	m, err := controller.BuildView(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"PROD2"}, m.RowLabels())
	assert.Equal(t, []string{"1", "3"}, m.ColLabels())
}
