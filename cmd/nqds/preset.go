package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal/aggregate"
	"nqdsheat/internal/errors"
	"nqdsheat/internal/filter"
	"nqdsheat/internal/session"
)

// ViewPreset is the YAML form of a view request:
//
//	kind: wells-models
//	mode: avg
//	iterations: [1, 2]
//	order: descend
//	transposed: false
//	filters:
//	  Wells: [PROD1, PROD2]
//	  Models: [1, 50]        # two integers on Models mean an inclusive range
//	  Attributes: {labels: [QO]}
type ViewPreset struct {
	Kind       string                  `yaml:"kind"`
	Mode       string                  `yaml:"mode"`
	Iterations []int                   `yaml:"iterations"`
	Order      string                  `yaml:"order"`
	Transposed bool                    `yaml:"transposed"`
	Filters    map[string]FilterPreset `yaml:"filters"`
}

// FilterPreset is either a plain label list or a mapping with labels or range
type FilterPreset struct {
	Labels []string `yaml:"labels"`
	Range  []int    `yaml:"range"`
}

// UnmarshalYAML accepts a bare sequence as a label list
func (f *FilterPreset) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		return value.Decode(&f.Labels)
	}
	type plain FilterPreset
	return value.Decode((*plain)(f))
}

// LoadPreset reads a preset file
func LoadPreset(path string) (*ViewPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}
	return ParsePreset(data)
}

// ParsePreset decodes preset YAML
func ParsePreset(data []byte) (*ViewPreset, error) {
	var p ViewPreset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}
	return &p, nil
}

// Request converts the preset into a view request. Empty fields stay empty so
// the controller applies its configured defaults.
func (p *ViewPreset) Request() (session.ViewRequest, error) {
	var req session.ViewRequest
	var err error

	if p.Kind != "" {
		if req.Kind, err = aggregate.ParseViewKind(p.Kind); err != nil {
			return req, err
		}
	}
	if p.Mode != "" {
		if req.Mode, err = aggregate.ParseMode(p.Mode); err != nil {
			return req, err
		}
	}
	if p.Order != "" {
		if req.Order, err = filter.ParseOrder(p.Order); err != nil {
			return req, err
		}
	}
	req.Transposed = p.Transposed

	if len(p.Filters) > 0 {
		req.Filters = make(misfit.Selection, len(p.Filters))
		for name, fp := range p.Filters {
			axis, err := parseAxis(name)
			if err != nil {
				return req, err
			}
			if _, dup := req.Filters[axis]; dup {
				return req, fmt.Errorf("filter %s given more than once", axis)
			}
			af, err := fp.axisFilter(axis)
			if err != nil {
				return req, fmt.Errorf("filter %s: %w", name, err)
			}
			req.Filters[axis] = af
		}
	}
	return req, nil
}

// axisFilter resolves the preset into a tagged filter. A two-integer list on
// the Models axis is read as an inclusive range.
func (f FilterPreset) axisFilter(axis misfit.Axis) (misfit.AxisFilter, error) {
	if len(f.Range) > 0 {
		if len(f.Range) != 2 {
			return misfit.AxisFilter{}, fmt.Errorf("range needs exactly two bounds, got %d", len(f.Range))
		}
		return modelRange(f.Range[0], f.Range[1])
	}
	if axis == misfit.AxisModels && len(f.Labels) == 2 {
		lo, errLo := strconv.Atoi(f.Labels[0])
		hi, errHi := strconv.Atoi(f.Labels[1])
		if errLo == nil && errHi == nil {
			return modelRange(lo, hi)
		}
	}
	return misfit.ExactSet(f.Labels...), nil
}

// parseAxis matches a filter key to an axis name, ignoring case
func parseAxis(name string) (misfit.Axis, error) {
	for _, axis := range []misfit.Axis{misfit.AxisWells, misfit.AxisModels, misfit.AxisAttributes} {
		if strings.EqualFold(strings.TrimSpace(name), string(axis)) {
			return axis, nil
		}
	}
	return "", fmt.Errorf("unknown filter axis %q (want Wells, Models or Attributes)", name)
}

func modelRange(lo, hi int) (misfit.AxisFilter, error) {
	r, err := misfit.NewModelRange(lo, hi)
	if err != nil {
		return misfit.AxisFilter{}, errors.FromDomain(err)
	}
	return r, nil
}
