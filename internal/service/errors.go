package service

import "errors"

// Gate failures. Each aborts the current operation; none are process-fatal.
var (
	ErrStoreTooFar        = errors.New("store too far from current location")
	ErrOutOfStock         = errors.New("product out of stock")
	ErrInsufficientStock  = errors.New("not enough units available")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInvalidCoordinates = errors.New("latitude and longitude must be within [0, 100]")
	ErrPermissionDenied   = errors.New("manager permissions required")
	ErrNotManagedStore    = errors.New("store is not managed by this user")
)
