package domain

import "errors"

var (
	// ErrNotFound means the record id answered negatively in every probed table.
	ErrNotFound = errors.New("product not found")

	// ErrMissingID means the navigation carried no record id at all.
	ErrMissingID = errors.New("product id required")
)
