package aggregate

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownDimension   = errors.New("unknown dimension")
	ErrInvalidBucketCount = errors.New("invalid bucket count")
)
