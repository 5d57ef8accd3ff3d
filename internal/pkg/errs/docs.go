// Package errs provides standardized error types used across the application.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying error details
//   - constructors with and without an underlying cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Domain-specific failures (illegal transition, order limit exceeded, role not
// allowed) are declared as sentinels in their owning domain packages; this
// package only carries the generic validation and lookup failures.
package errs
