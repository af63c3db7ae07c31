package filter

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidAgeRange = errors.New("invalid age range")
)
