// Package errors provides the classified error type used across blogcontent.
//
// Errors carry a category, a severity, a retry strategy and a small context
// map. The HTTP and CLI adapters turn them into status codes, exit codes and
// log records.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "failed to read post").
//		WithContext("file", name).
//		Build()
package errors
