package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrProviderFailure = errors.New("provider failure")
	ErrTooLarge        = errors.New("payload too large")
)
