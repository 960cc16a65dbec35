package flow

import "errors"

var (
	// ErrInvalidConstraints is returned when a constraint has min > max on
	// some axis or a negative bound.
	ErrInvalidConstraints = errors.New("invalid constraints")

	// ErrInvalidMaxItems is returned when the per-line item limit is below 1.
	ErrInvalidMaxItems = errors.New("max items in main axis must be at least 1")
)
