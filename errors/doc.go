// Package errors provides structured error types for the shared-pointer library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Faults raised during handle access, such as dereferencing an
// empty handle, carry an *Error value so callers recovering from the panic
// can inspect its Phase and Kind.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTrack, errors.KindInvalidInput).
//		Detail("label must not be empty").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NilPointer(errors.PhaseAccess, "deref")
//	err := errors.Closed("registry")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
