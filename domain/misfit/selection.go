package misfit

import (
	"fmt"
	"strconv"
)

type filterKind int

const (
	filterExact filterKind = iota
	filterModelRange
)

// AxisFilter restricts one axis of a view. It is either an exact label set
// or an inclusive model range; build it with ExactSet, ExactModels or NewModelRange.
type AxisFilter struct {
	kind   filterKind
	labels []string
	lo, hi int
}

// ExactSet allows exactly the given labels
func ExactSet(labels ...string) AxisFilter {
	return AxisFilter{kind: filterExact, labels: append([]string(nil), labels...)}
}

// ExactModels allows exactly the given model indexes
func ExactModels(models ...int) AxisFilter {
	labels := make([]string, len(models))
	for i, m := range models {
		labels[i] = ModelLabel(m)
	}
	return AxisFilter{kind: filterExact, labels: labels}
}

// NewModelRange allows every model in lo..hi inclusive
func NewModelRange(lo, hi int) (AxisFilter, error) {
	if lo > hi {
		return AxisFilter{}, invalidRange(lo, hi)
	}
	return AxisFilter{kind: filterModelRange, lo: lo, hi: hi}, nil
}

// IsRange reports whether f is a model range
func (f AxisFilter) IsRange() bool {
	return f.kind == filterModelRange
}

// Bounds returns the range bounds of a model range filter
func (f AxisFilter) Bounds() (lo, hi int) {
	return f.lo, f.hi
}

// Matcher resolves the filter into a predicate over the labels of axis.
// On the Models axis a model range keeps every label whose integer value lies
// in lo..hi; on any other axis its two bounds are taken as literal labels.
func (f AxisFilter) Matcher(axis Axis) (func(label string) bool, error) {
	if f.kind == filterModelRange {
		if f.lo > f.hi {
			return nil, invalidRange(f.lo, f.hi)
		}
		if axis == AxisModels {
			lo, hi := f.lo, f.hi
			return func(label string) bool {
				m, err := strconv.Atoi(label)
				return err == nil && lo <= m && m <= hi
			}, nil
		}
		return labelSet(strconv.Itoa(f.lo), strconv.Itoa(f.hi)), nil
	}
	return labelSet(f.labels...), nil
}

func labelSet(labels ...string) func(string) bool {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return func(label string) bool {
		_, ok := set[label]
		return ok
	}
}

func invalidRange(lo, hi int) error {
	return fmt.Errorf("%w [%d, %d]: lower bound exceeds upper bound", ErrInvalidRange, lo, hi)
}

// Selection maps axis names to the filter applied on that axis.
// Axes without an entry keep every label.
type Selection map[Axis]AxisFilter
