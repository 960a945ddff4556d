package geom

import "errors"

var (
	ErrInvalidRange      = errors.New("invalid range")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
