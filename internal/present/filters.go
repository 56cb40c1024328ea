package present

import (
	"sort"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal/errors"
)

// Checklist is a multi-select filter; Selected starts as every option
type Checklist struct {
	Axis     misfit.Axis
	Options  []string
	Selected []string
}

// RangeSlider is the Models filter; Value starts as the full range
type RangeSlider struct {
	Axis  misfit.Axis
	Min   int
	Max   int
	Value [2]int
}

// FilterPanel describes the filter widgets offered for a loaded dataset
type FilterPanel struct {
	Attributes Checklist
	Models     RangeSlider
	Wells      Checklist
}

// Filters builds the filter panel from an index summary
func Filters(summary misfit.IndexSummary) FilterPanel {
	return FilterPanel{
		Attributes: Checklist{
			Axis:     misfit.AxisAttributes,
			Options:  append([]string(nil), summary.Attributes...),
			Selected: append([]string(nil), summary.Attributes...),
		},
		Models: RangeSlider{
			Axis:  misfit.AxisModels,
			Min:   summary.ModelMin,
			Max:   summary.ModelMax,
			Value: [2]int{summary.ModelMin, summary.ModelMax},
		},
		Wells: Checklist{
			Axis:     misfit.AxisWells,
			Options:  append([]string(nil), summary.Wells...),
			Selected: append([]string(nil), summary.Wells...),
		},
	}
}

// Selection converts the current widget values into a filter selection
func (p FilterPanel) Selection() (misfit.Selection, error) {
	models, err := misfit.NewModelRange(p.Models.Value[0], p.Models.Value[1])
	if err != nil {
		return nil, errors.FromDomain(err)
	}
	return misfit.Selection{
		misfit.AxisAttributes: misfit.ExactSet(p.Attributes.Selected...),
		misfit.AxisModels:     models,
		misfit.AxisWells:      misfit.ExactSet(p.Wells.Selected...),
	}, nil
}

// IterationSelector lists iterations ascending with the first one preselected
type IterationSelector struct {
	Options  []int
	Selected []int
}

// Iterations builds the iteration selector
func Iterations(iterations []int) IterationSelector {
	options := append([]int(nil), iterations...)
	sort.Ints(options)
	sel := IterationSelector{Options: options, Selected: []int{}}
	if len(options) > 0 {
		sel.Selected = []int{options[0]}
	}
	return sel
}
