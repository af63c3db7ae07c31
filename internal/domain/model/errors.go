package model

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownMedal = errors.New("unknown medal")
)
