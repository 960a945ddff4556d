package geom

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Point is an immutable point in n-dimensional space.
type Point struct {
	coords []float64
}

// NewPoint creates a point whose dimension is the number of coordinates given.
func NewPoint(coords ...float64) Point {
	return Point{coords: slices.Clone(coords)}
}

// NewPointN creates a point of dimension n, failing if coords has a different length.
func NewPointN(n int, coords []float64) (Point, error) {
	if len(coords) != n {
		return Point{}, fmt.Errorf("%w: cannot create point of size %d from %d coordinates", ErrDimensionMismatch, n, len(coords))
	}
	return NewPoint(coords...), nil
}

// Origin returns the zero point of dimension n.
func Origin(n int) Point {
	return Point{coords: make([]float64, n)}
}

func (p Point) Dim() int { return len(p.coords) }

func (p Point) Coord(axis int) float64 { return p.coords[axis] }

// Coords returns a copy of the coordinates.
func (p Point) Coords() []float64 { return slices.Clone(p.coords) }

// Distance returns the euclidean distance between two points of the same dimension.
// Mixing dimensions is a programming error and panics.
func (p Point) Distance(other Point) float64 {
	if len(p.coords) != len(other.coords) {
		panic(fmt.Sprintf("points must have the same dimension, got %d and %d", len(p.coords), len(other.coords)))
	}
	var sum float64
	for i, c := range p.coords {
		d := c - other.coords[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (p Point) Equal(other Point) bool {
	return slices.Equal(p.coords, other.coords)
}

// Compare orders points lexicographically by coordinate, shorter points first.
func (p Point) Compare(other Point) int {
	return slices.Compare(p.coords, other.coords)
}

// DistanceQuery builds a query matching every point within radius of p.
func (p Point) DistanceQuery(radius float64) (DistanceQuery, error) {
	return NewDistanceQuery(p, radius)
}

// Point and Item let a bare Point be stored as its own payload.
func (p Point) Point() Point { return p }
func (p Point) Item() Point { return p }

func (p Point) String() string {
	parts := make([]string, len(p.coords))
	for i, c := range p.coords {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return "Point(" + strings.Join(parts, ", ") + ")"
}
