package layout

import "errors"

// Errors returned by store lookups and mutations. Every mutation that fails
// with one of these leaves the store unchanged.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateName        = errors.New("duplicate name")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrLastContainer        = errors.New("cannot delete the last container")
	ErrInvalidDocument      = errors.New("invalid extension file format")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnsupportedNesting   = errors.New("unsupported nesting")
	ErrInvalidName          = errors.New("invalid name")
)

// IsRecoverable reports whether err is a user-facing rule violation that the
// caller should surface and move on from.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrLastContainer) ||
		errors.Is(err, ErrConfirmationRequired) ||
		errors.Is(err, ErrUnsupportedNesting) ||
		errors.Is(err, ErrInvalidName)
}
