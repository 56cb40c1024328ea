package misfit

import "sort"

// Axis names one dimension of a pivoted view
type Axis string

const (
	AxisWells      Axis = "Wells"
	AxisModels     Axis = "Models"
	AxisAttributes Axis = "Attributes"
)

// Singular returns the axis name without its plural suffix ("Wells" -> "Well")
func (a Axis) Singular() string {
	s := string(a)
	if len(s) > 1 && s[len(s)-1] == 's' {
		return s[:len(s)-1]
	}
	return s
}

// ViewKind selects which two axes a view pivots on
type ViewKind string

const (
	ViewWellsModels      ViewKind = "wells-models"
	ViewAttributesModels ViewKind = "attributes-models"
	ViewWellsAttributes  ViewKind = "wells-attributes"
)

// Axes returns the row and column axes of the view kind.
func (k ViewKind) Axes() (row Axis, col Axis, ok bool) {
	switch k {
	case ViewWellsModels:
		return AxisWells, AxisModels, true
	case ViewAttributesModels:
		return AxisAttributes, AxisModels, true
	case ViewWellsAttributes:
		return AxisWells, AxisAttributes, true
	}
	return "", "", false
}

// Valid reports whether k is one of the three supported view kinds
func (k ViewKind) Valid() bool {
	_, _, ok := k.Axes()
	return ok
}

// Mode is the reduction applied to each (row, column) group
type Mode string

const (
	ModeMin Mode = "min"
	ModeMax Mode = "max"
	ModeAvg Mode = "avg"
)

// Valid reports whether m is one of the supported reductions
func (m Mode) Valid() bool {
	return m == ModeMin || m == ModeMax || m == ModeAvg
}

// Order controls row ordering of a finished view
type Order string

const (
	OrderDefault Order = "default"
	OrderAscend  Order = "ascend"
	OrderDescend Order = "descend"
)

// Valid reports whether o is a supported ordering
func (o Order) Valid() bool {
	return o == OrderDefault || o == OrderAscend || o == OrderDescend
}

// Record is one parsed measurement line
type Record struct {
	Iteration int
	Model     int
	Attribute string
	Well      string
	Value     float64
}

// IterationTable holds every record of one iteration in load order
type IterationTable struct {
	Iteration int
	Records   []Record
}

// Len returns the number of records in the table
func (t IterationTable) Len() int {
	return len(t.Records)
}

// IndexSummary is the derived view over all loaded records
type IndexSummary struct {
	Wells      []string
	ModelMin   int
	ModelMax   int
	Attributes []string
}

// Summarize derives an IndexSummary from records. ok is false when records is empty.
func Summarize(records []Record) (summary IndexSummary, ok bool) {
	if len(records) == 0 {
		return IndexSummary{}, false
	}

	wells := make(map[string]struct{})
	attributes := make(map[string]struct{})
	summary.ModelMin = records[0].Model
	summary.ModelMax = records[0].Model

	for _, r := range records {
		wells[r.Well] = struct{}{}
		attributes[r.Attribute] = struct{}{}
		if r.Model < summary.ModelMin {
			summary.ModelMin = r.Model
		}
		if r.Model > summary.ModelMax {
			summary.ModelMax = r.Model
		}
	}

	summary.Wells = sortedKeys(wells)
	summary.Attributes = sortedKeys(attributes)
	return summary, true
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return NaturalLess(keys[i], keys[j]) })
	return keys
}

// SessionState represents where a session is in its load/view lifecycle
type SessionState string

const (
	StateEmpty            SessionState = "empty"
	StateLoading          SessionState = "loading"
	StateReady            SessionState = "ready"
	StateWellsModels      SessionState = "wells-models"
	StateAttributesModels SessionState = "attributes-models"
	StateWellsAttributes  SessionState = "wells-attributes"
)

// StateForView returns the view-kind state entered after building a view of kind k
func StateForView(k ViewKind) SessionState {
	switch k {
	case ViewWellsModels:
		return StateWellsModels
	case ViewAttributesModels:
		return StateAttributesModels
	case ViewWellsAttributes:
		return StateWellsAttributes
	}
	return StateReady
}

// HasData reports whether the state permits reads and view requests.
// View-kind states behave like Ready.
func (s SessionState) HasData() bool {
	switch s {
	case StateReady, StateWellsModels, StateAttributesModels, StateWellsAttributes:
		return true
	}
	return false
}
