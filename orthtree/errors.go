package orthtree

import "errors"

var (
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrOutOfBounds     = errors.New("point is outside the region")
	// ErrInvariant means a point inside a node was claimed by none of its children.
	ErrInvariant = errors.New("point not inserted into any subtree")
)
