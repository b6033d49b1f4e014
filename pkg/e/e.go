// Package e holds the sentinel errors shared across shopsearch and a small wrapping helper.
package e

import "fmt"

var (
	// catalog validation
	ErrMissingField      = fmt.Errorf("required field is empty")
	ErrDuplicateProduct  = fmt.Errorf("duplicate product id")
	ErrDuplicateCategory = fmt.Errorf("duplicate category id")
	ErrReservedCategory  = fmt.Errorf("category id is reserved")
	ErrUnknownCategory   = fmt.Errorf("product references unknown category")
	ErrNegativePrice     = fmt.Errorf("price must not be negative")
	ErrRatingOutOfRange  = fmt.Errorf("rating must be within [0, 5]")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidLimit     = fmt.Errorf("limit must be a positive integer")
	ErrUnknownOperation = fmt.Errorf("unknown operation")

	// 404 Not Found
	ErrNotFound = fmt.Errorf("not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap prefixes err with msg, keeping it matchable with errors.Is.
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
