// Package result provides a generic success-or-error container.
//
// Functions in this module return the usual (value, error) pair. Result is
// used where outcomes have to be stored or composed before being inspected,
// for example one outcome per field of a comma-separated vector.
//
// A Result is exactly one of:
//   - success, holding a payload of type V
//   - failure, holding a non-nil error
//
// Reading the payload of a failure (or the error of a success) is a caller
// bug and panics with an error wrapping ErrInvalidAccess.
package result
