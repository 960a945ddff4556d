package geom

import (
	"fmt"
	"math"
)

// Query selects points. Region is a conservative bound used to skip whole
// subtrees, Contains is the exact test applied to every candidate.
// Contains must never accept a point outside Region.
type Query interface {
	Region() Region
	Contains(p Point) bool
}

// DistanceQuery matches every point whose distance to the center is at most radius.
type DistanceQuery struct {
	center Point
	radius float64
	bounds Region
}

func NewDistanceQuery(center Point, radius float64) (DistanceQuery, error) {
	if center.Dim() == 0 {
		return DistanceQuery{}, fmt.Errorf("%w: distance query needs a center with at least one axis", ErrDimensionMismatch)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return DistanceQuery{}, fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalidRange, radius)
	}

	ivs := make([]Interval, center.Dim())
	for axis, c := range center.coords {
		// the box is closed on both sides, widen it by one ulp so that
		// points exactly at the radius are not pruned
		iv, err := NewInterval(
			nextDown(c-radius),
			nextUp(c+radius),
		)
		if err != nil {
			return DistanceQuery{}, fmt.Errorf("distance query around %s: %w", center, err)
		}
		ivs[axis] = iv
	}

	return DistanceQuery{
		center: center,
		radius: radius,
		bounds: Region{intervals: ivs},
	}, nil
}

func (q DistanceQuery) Center() Point { return q.center }
func (q DistanceQuery) Radius() float64 { return q.radius }
func (q DistanceQuery) Region() Region { return q.bounds }

func (q DistanceQuery) Contains(p Point) bool {
	if p.Dim() != q.center.Dim() {
		return false
	}
	return q.center.Distance(p) <= q.radius
}

func (q DistanceQuery) String() string {
	return fmt.Sprintf("DistanceQuery(%s, %v)", q.center, q.radius)
}

func nextUp(v float64) float64 { return math.Nextafter(v, math.Inf(1)) }
func nextDown(v float64) float64 { return math.Nextafter(v, math.Inf(-1)) }
