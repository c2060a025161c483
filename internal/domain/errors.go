package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFetch             = errors.New("product fetch failed")
	ErrInvalidQuantity   = errors.New("quantity must be a non-negative integer")
	ErrInvalidFilter     = errors.New("invalid filter value")
	ErrInvalidSortKey    = errors.New("invalid sort key")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// FetchError reports that a product source could not produce the catalog.
// errors.Is(err, ErrFetch) holds for every FetchError.
type FetchError struct {
	Source string
	Err    error
}

func NewFetchError(source string, err error) *FetchError {
	return &FetchError{Source: source, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch products from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
