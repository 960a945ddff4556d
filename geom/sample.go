package geom

import (
	"fmt"
	"math/rand/v2"

	"github.com/fogleman/poissondisc"
)

// SampleUniform draws n points uniformly from region.
func SampleUniform(region Region, n int, rng *rand.Rand) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = region.SamplePoint(rng)
	}
	return points
}

// SamplePoisson covers a two-dimensional region with points no closer than
// minDistance to each other.
func SamplePoisson(region Region, minDistance float64) ([]Point, error) {
	if region.Dim() != 2 {
		return nil, fmt.Errorf("%w: poisson sampling needs a 2D region, got %d", ErrDimensionMismatch, region.Dim())
	}
	if !(minDistance > 0) {
		return nil, fmt.Errorf("%w: min distance must be positive, got %v", ErrInvalidRange, minDistance)
	}

	x, y := region.intervals[0], region.intervals[1]
	samples := poissondisc.Sample(x.start, y.start, x.end, y.end, minDistance, 10, nil)

	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		p := NewPoint(s.X, s.Y)
		if region.Contains(p) {
			points = append(points, p)
		}
	}
	return points, nil
}
