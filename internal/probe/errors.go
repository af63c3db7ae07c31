package probe

import "errors"

var (
	// ErrUnhealthy is returned when the health endpoint does not answer 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrUnexpectedStatus is returned when an endpoint answers a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrCheckFailed is returned when at least one consistency check failed.
	ErrCheckFailed = errors.New("consistency check failed")
)
