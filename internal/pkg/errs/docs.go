// Package errs provides the standardized error types used across the CRM backend.
//
// Every error scenario follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying the failing parameter and an optional cause
//   - constructors with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// HTTP handlers map these types onto status codes, so validation failures and
// missing objects are distinguishable without string matching.
package errs
