package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrUnknownView = errors.New("unknown view")
	ErrInvalidRows = errors.New("invalid row count")
	ErrMissingName = errors.New("athlete name required")
)
