package geom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Orb converts a 2D point.
func (p Point) Orb() (orb.Point, error) {
	if p.Dim() != 2 {
		return orb.Point{}, fmt.Errorf("%w: only 2D points convert to orb, got %d", ErrDimensionMismatch, p.Dim())
	}
	return orb.Point{p.coords[0], p.coords[1]}, nil
}

func PointFromOrb(p orb.Point) Point {
	return NewPoint(p[0], p[1])
}

// Bound converts a 2D region. The half-open upper edge maps to Max.
func (r Region) Bound() (orb.Bound, error) {
	if r.Dim() != 2 {
		return orb.Bound{}, fmt.Errorf("%w: only 2D regions convert to orb, got %d", ErrDimensionMismatch, r.Dim())
	}
	x, y := r.intervals[0], r.intervals[1]
	return orb.Bound{
		Min: orb.Point{x.start, y.start},
		Max: orb.Point{x.end, y.end},
	}, nil
}

func RegionFromBound(b orb.Bound) (Region, error) {
	return NewRegionFromBounds(PointFromOrb(b.Min), PointFromOrb(b.Max))
}
