package nqds

import (
	"math"
	"strconv"
	"strings"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal/errors"
)

const (
	fieldSeparator = ";"
	// modelPrefixLen is the fixed prefix before the model index, as in "Mod_12"
	modelPrefixLen = 4
	minFields      = 4
	minNameTokens  = 4
)

// ParseLine parses one semicolon-delimited record line:
//
//	<iteration>;Mod_<N>;<x> <attribute> <x> <well>;<value>
//
// Fields after the fourth are ignored. Header lines must be stripped by the caller.
func ParseLine(line string) (misfit.Record, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, fieldSeparator)
	if len(fields) < minFields {
		return misfit.Record{}, errors.MalformedRecord(line, "expected at least 4 fields")
	}

	iteration, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return misfit.Record{}, errors.MalformedRecord(line, "iteration is not an integer")
	}
	if iteration < 0 {
		return misfit.Record{}, errors.MalformedRecord(line, "iteration must not be negative")
	}

	modelField := strings.TrimSpace(fields[1])
	if len(modelField) <= modelPrefixLen {
		return misfit.Record{}, errors.MalformedRecord(line, "model field has no index")
	}
	model, err := strconv.Atoi(strings.TrimSpace(modelField[modelPrefixLen:]))
	if err != nil {
		return misfit.Record{}, errors.MalformedRecord(line, "model suffix is not an integer")
	}
	if model < 1 {
		return misfit.Record{}, errors.MalformedRecord(line, "model index must be at least 1")
	}

	tokens := strings.Fields(fields[2])
	if len(tokens) < minNameTokens {
		return misfit.Record{}, errors.MalformedRecord(line, "name field needs 4 tokens")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return misfit.Record{}, errors.MalformedRecord(line, "value is not a number")
	}
	// NaN is the missing-cell marker downstream and must never enter as data
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return misfit.Record{}, errors.MalformedRecord(line, "value is not finite")
	}

	return misfit.Record{
		Iteration: iteration,
		Model:     model,
		Attribute: tokens[1],
		Well:      tokens[3],
		Value:     value,
	}, nil
}
