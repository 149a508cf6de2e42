// Package errs provides the typed errors shared by the ordering service.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g. ErrValueIsRequired) used with errors.Is
//   - a struct carrying the details, inspected with errors.As
//   - NewXxxError / NewXxxErrorWithCause constructors
//   - Unwrap returning the sentinel
//
// Validation errors (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange) and
// ObjectNotFound describe bad input. InsufficientStock, IllegalState and
// LoaderUsage describe domain and read-path rule violations; none of them is
// retried by the service.
package errs
