package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is against any *Error.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrVersionConflict = errors.New("version conflict")
)

// Stable error codes surfaced to callers.
const (
	CodeProjectNotFound   = "PRJ_NOT_FOUND"
	CodeProjectDuplicate  = "PRJ_DUPLICATE"
	CodeProjectInvalid    = "PRJ_INVALID"
	CodeWBSNotFound       = "WBS_NOT_FOUND"
	CodeWBSInvalidCode    = "WBS_INVALID_CODE"
	CodeWBSDuplicate      = "WBS_DUPLICATE"
	CodeWBSHierarchy      = "WBS_HIERARCHY"
	CodeBaselineNotFound  = "BSL_NOT_FOUND"
	CodeBaselineInvalid   = "BSL_INVALID"
	CodeVersionConflict   = "BSL_VERSION_CONFLICT"
	CodeNegativeValue     = "ALC_NEGATIVE_VALUE"
	CodeOutOfRange        = "ALC_OUT_OF_RANGE"
	CodeDateInvalid       = "ALC_DATE_INVALID"
	CodeInvalidSource     = "ALC_INVALID_SOURCE"
	CodeImportInvalidFile = "IMP_INVALID_FILE"
)

// Error is a typed failure carrying a kind sentinel and a stable code.
type Error struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Code + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so callers can test errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func NotFound(code, format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Invalid(code, format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Conflict(code string, cause error, format string, args ...any) *Error {
	return &Error{Kind: ErrVersionConflict, Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

// CodeOf extracts the stable code from err, or "" when err is not a *Error.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
