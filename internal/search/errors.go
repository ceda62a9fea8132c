package search

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSortColumn is returned when the sort column is not in the allow-list.
	ErrInvalidSortColumn = errors.New("invalid sort column")

	// ErrInvalidSortDirection is returned for anything other than ASC or DESC.
	ErrInvalidSortDirection = errors.New("invalid sort direction")

	// ErrEmptyPredicateSet is a caller policy error. The engine itself accepts
	// an empty predicate set and returns every article.
	ErrEmptyPredicateSet = errors.New("at least one search predicate is required")
)

// StorageError reports a failure of the underlying store. It is never retried
// here and always aborts the whole search.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("search: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
