package geom

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Interval is a half-open range [start, end) on a single axis.
// The zero value is not a valid interval, use NewInterval.
type Interval struct {
	start, end float64
}

func NewInterval(start, end float64) (Interval, error) {
	if !isFinite(start) || !isFinite(end) {
		return Interval{}, fmt.Errorf("%w: bounds must be finite, got [%v, %v)", ErrInvalidRange, start, end)
	}
	if start >= end {
		return Interval{}, fmt.Errorf("%w: start %v must be less than end %v", ErrInvalidRange, start, end)
	}
	return Interval{start: start, end: end}, nil
}

func (i Interval) Start() float64 { return i.start }
func (i Interval) End() float64 { return i.end }
func (i Interval) Width() float64 { return i.end - i.start }

func (i Interval) Contains(v float64) bool {
	return i.start <= v && v < i.end
}

// Intersects reports whether the intervals share at least one value.
// Touching endpoints do not intersect.
func (i Interval) Intersects(other Interval) bool {
	return i.start < other.end && other.start < i.end
}

// Subdivide splits the interval at its midpoint. When the interval is too
// narrow for the midpoint to differ from its bounds, the interval itself is
// returned as the only element.
func (i Interval) Subdivide() []Interval {
	mid := i.midpoint()
	if mid == i.start || mid == i.end {
		return []Interval{i}
	}
	return []Interval{
		{start: i.start, end: mid},
		{start: mid, end: i.end},
	}
}

// Splittable reports whether Subdivide yields two intervals.
func (i Interval) Splittable() bool {
	mid := i.midpoint()
	return mid != i.start && mid != i.end
}

// Sample returns a uniformly distributed value inside the interval.
func (i Interval) Sample(rng *rand.Rand) float64 {
	f := rng.Float64()
	v := i.start*(1-f) + i.end*f
	if v < i.start {
		v = i.start
	}
	if v >= i.end {
		v = math.Nextafter(i.end, i.start)
	}
	return v
}

func (i Interval) String() string {
	return fmt.Sprintf("[%v, %v)", i.start, i.end)
}

func (i Interval) valid() bool {
	return isFinite(i.start) && isFinite(i.end) && i.start < i.end
}

func (i Interval) midpoint() float64 {
	mid := i.start + (i.end-i.start)/2
	if math.IsInf(mid, 0) {
		// end-start overflowed
		mid = i.start/2 + i.end/2
	}
	return mid
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
