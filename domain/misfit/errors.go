package misfit

import "errors"

// Domain errors. Callers compare with errors.Is; the engines translate them
// into coded application errors at their boundary.
var (
	ErrInvalidRange       = errors.New("invalid model range")
	ErrEmptyAxis          = errors.New("axis has no labels")
	ErrUnsupportedPairing = errors.New("unsupported axis pairing")
	ErrInvalidMatrix      = errors.New("invalid matrix")
)
