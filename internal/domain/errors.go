// Package domain defines the core types and errors of the listing service:
// primitive values and their coercions, records, datasets, queries and results.
package domain

import "fmt"

// MissingPaginationMessage is the literal error payload returned when a
// request omits page or limit.
const MissingPaginationMessage = "Missing pagination query parameters"

// InvalidQueryError indicates a query that cannot be evaluated.
type InvalidQueryError struct {
	Message string
}

func (e *InvalidQueryError) Error() string { return e.Message }

// NotFoundError indicates a referenced field, column or file does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ErrInvalidQuery creates an InvalidQueryError with a formatted message.
func ErrInvalidQuery(format string, args ...interface{}) *InvalidQueryError {
	return &InvalidQueryError{Message: fmt.Sprintf(format, args...)}
}

// ErrMissingPagination creates the InvalidQueryError reported for absent
// page or limit parameters.
func ErrMissingPagination() *InvalidQueryError {
	return &InvalidQueryError{Message: MissingPaginationMessage}
}

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
