// Package errs provides standardized error types for the ordering platform.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying the error details
//   - constructor functions with and without a cause
//   - Error() method for formatting and Unwrap() for classification
//
// The sentinel set maps directly onto the failure taxonomy of the order
// engine: required/invalid/out-of-range values for validation failures,
// object-not-found for absent orders, partners and products, and
// version-conflict for optimistic-concurrency losers.
package errs
