package errors

import (
	stderrors "errors"
	"fmt"

	"nqdsheat/domain/misfit"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code, so callers can compare
// against the package sentinels with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:  code,
		Cause: err,
	}
}

// FromDomain tags an error returned by the misfit domain with the matching
// application code. AppErrors and nil pass through unchanged.
func FromDomain(err error) error {
	if err == nil || IsAppError(err) {
		return err
	}
	switch {
	case stderrors.Is(err, misfit.ErrInvalidRange):
		return WithCode(CodeInvalidRange, err)
	case stderrors.Is(err, misfit.ErrEmptyAxis):
		return WithCode(CodeEmptyResult, err)
	case stderrors.Is(err, misfit.ErrUnsupportedPairing):
		return WithCode(CodeInvalidViewKind, err)
	}
	return WithCode(CodeInternalError, err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeMalformedRecord  = "MALFORMED_RECORD"
	CodeNoData           = "NO_DATA"
	CodeNotReady         = "NOT_READY"
	CodeUnknownIteration = "UNKNOWN_ITERATION"
	CodeInvalidMode      = "INVALID_MODE"
	CodeInvalidViewKind  = "INVALID_VIEW_KIND"
	CodeInvalidRange     = "INVALID_RANGE"
	CodeEmptyTable       = "EMPTY_TABLE"
	CodeEmptyResult      = "EMPTY_RESULT"
	CodeConcurrentLoad   = "CONCURRENT_LOAD"
)

// Sentinels for errors.Is comparisons. They match on code only.
var (
	ErrMalformedRecord  = New(CodeMalformedRecord, "malformed record")
	ErrNoData           = New(CodeNoData, "no data loaded")
	ErrNotReady         = New(CodeNotReady, "session not ready")
	ErrUnknownIteration = New(CodeUnknownIteration, "unknown iteration")
	ErrInvalidMode      = New(CodeInvalidMode, "invalid mode")
	ErrInvalidViewKind  = New(CodeInvalidViewKind, "invalid view kind")
	ErrInvalidRange     = New(CodeInvalidRange, "invalid range")
	ErrEmptyTable       = New(CodeEmptyTable, "empty table")
	ErrEmptyResult      = New(CodeEmptyResult, "empty result")
	ErrConcurrentLoad   = New(CodeConcurrentLoad, "load already in progress")
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func MalformedRecord(line string, reason string) *AppError {
	return Newf(CodeMalformedRecord, "malformed record %q: %s", line, reason)
}

func NoData() *AppError {
	return New(CodeNoData, "data has not been loaded yet")
}

func NotReady(state string) *AppError {
	return Newf(CodeNotReady, "operation not allowed in state %s", state)
}

func UnknownIteration(iteration int) *AppError {
	return Newf(CodeUnknownIteration, "iteration %d not found", iteration)
}

func InvalidMode(mode string) *AppError {
	return Newf(CodeInvalidMode, "invalid mode %q", mode)
}

func InvalidViewKind(kind string) *AppError {
	return Newf(CodeInvalidViewKind, "invalid view kind %q", kind)
}

func InvalidRange(lo, hi int) *AppError {
	return Newf(CodeInvalidRange, "invalid model range [%d, %d]: lower bound exceeds upper bound", lo, hi)
}

func EmptyTable(iteration int) *AppError {
	return Newf(CodeEmptyTable, "iteration %d has no records", iteration)
}

func EmptyResult(axis string) *AppError {
	return Newf(CodeEmptyResult, "filter leaves no labels on axis %s", axis)
}

func ConcurrentLoad() *AppError {
	return New(CodeConcurrentLoad, "a load is already in progress")
}
