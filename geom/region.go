package geom

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// Region is an axis-aligned box, the product of one Interval per axis.
type Region struct {
	intervals []Interval
}

func NewRegion(intervals ...Interval) (Region, error) {
	if len(intervals) == 0 {
		return Region{}, fmt.Errorf("%w: region needs at least one axis", ErrDimensionMismatch)
	}
	for axis, iv := range intervals {
		if !iv.valid() {
			return Region{}, fmt.Errorf("%w: axis %d has interval %s", ErrInvalidRange, axis, iv)
		}
	}
	return Region{intervals: slices.Clone(intervals)}, nil
}

// NewRegionN is NewRegion with an explicit dimension check.
func NewRegionN(n int, intervals []Interval) (Region, error) {
	if len(intervals) != n {
		return Region{}, fmt.Errorf("%w: cannot create region of size %d from %d intervals", ErrDimensionMismatch, n, len(intervals))
	}
	return NewRegion(intervals...)
}

// NewRegionFromBounds builds the region [min_i, max_i) on every axis.
func NewRegionFromBounds(min, max Point) (Region, error) {
	if min.Dim() != max.Dim() {
		return Region{}, fmt.Errorf("%w: bounds have dimensions %d and %d", ErrDimensionMismatch, min.Dim(), max.Dim())
	}
	ivs := make([]Interval, min.Dim())
	for axis := range ivs {
		iv, err := NewInterval(min.coords[axis], max.coords[axis])
		if err != nil {
			return Region{}, fmt.Errorf("axis %d: %w", axis, err)
		}
		ivs[axis] = iv
	}
	return NewRegion(ivs...)
}

func (r Region) Dim() int { return len(r.intervals) }

func (r Region) Interval(axis int) Interval { return r.intervals[axis] }

// Intervals returns a copy of the per-axis intervals.
func (r Region) Intervals() []Interval { return slices.Clone(r.intervals) }

// Contains reports whether p lies inside the region. Points of another
// dimension are never contained.
func (r Region) Contains(p Point) bool {
	if len(p.coords) != len(r.intervals) {
		return false
	}
	for axis, iv := range r.intervals {
		if !iv.Contains(p.coords[axis]) {
			return false
		}
	}
	return true
}

func (r Region) Intersects(other Region) bool {
	if len(r.intervals) != len(other.intervals) {
		return false
	}
	for axis, iv := range r.intervals {
		if !iv.Intersects(other.intervals[axis]) {
			return false
		}
	}
	return true
}

// Subdivide returns every combination of the subdivided axes. The first
// axis varies slowest. A region no axis of which can be split returns
// itself as the only element.
func (r Region) Subdivide() []Region {
	parts := make([][]Interval, len(r.intervals))
	total := 1
	for axis, iv := range r.intervals {
		parts[axis] = iv.Subdivide()
		total *= len(parts[axis])
	}

	out := make([]Region, 0, total)
	idx := make([]int, len(parts))
	for range total {
		ivs := make([]Interval, len(parts))
		for axis := range parts {
			ivs[axis] = parts[axis][idx[axis]]
		}
		out = append(out, Region{intervals: ivs})

		for axis := len(idx) - 1; axis >= 0; axis-- {
			idx[axis]++
			if idx[axis] < len(parts[axis]) {
				break
			}
			idx[axis] = 0
		}
	}
	return out
}

func (r Region) Equal(other Region) bool {
	return slices.Equal(r.intervals, other.intervals)
}

// Region lets a Region be used directly as a Query.
func (r Region) Region() Region { return r }

// SamplePoint returns a point drawn uniformly from the region.
func (r Region) SamplePoint(rng *rand.Rand) Point {
	coords := make([]float64, len(r.intervals))
	for axis, iv := range r.intervals {
		coords[axis] = iv.Sample(rng)
	}
	return Point{coords: coords}
}

func (r Region) String() string {
	parts := make([]string, len(r.intervals))
	for i, iv := range r.intervals {
		parts[i] = iv.String()
	}
	return "Region(" + strings.Join(parts, " x ") + ")"
}
