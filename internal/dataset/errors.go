package dataset

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrMissingColumn = errors.New("missing column")
	ErrMalformedRow  = errors.New("malformed row")
	ErrNotInteger    = errors.New("not an integer")
)
