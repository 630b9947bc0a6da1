package model

import "errors"

// Absence errors shared by the repository and service layers. Lookups that
// match zero rows return these instead of faulting on an empty result.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrStoreNotFound      = errors.New("store not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidCredentials = errors.New("invalid name or password")
)
