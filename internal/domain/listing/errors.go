package listing

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrNotOwner         = errors.New("requester is not the listing owner")
	ErrInvalidCategory  = errors.New("unknown category")
	ErrInvalidCity      = errors.New("unknown city")
	ErrInvalidCurrency  = errors.New("unknown currency")
	ErrNegativePrice    = errors.New("price must be a non-negative integer")
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrEmptyDescription = errors.New("description must not be empty")
)
