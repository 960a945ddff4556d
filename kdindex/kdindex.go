// Package kdindex is a static point index. Points are sorted once into an
// implicit kd-tree and cannot be added afterwards.
package kdindex

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/royalcat/orthtree/geom"
)

var ErrInvalidNodeSize = errors.New("node size must be at least 1")

// Index keeps every node of an implicit kd-tree as a contiguous range of ids.
// Ranges of at most nodeSize points are scanned linearly.
type Index[V any] struct {
	nodeSize int
	dim      int

	ids    []int
	coords []float64 // dim values per sorted position

	points []geom.Point
	values []V
}

// New sorts points into an index. values[i] belongs to points[i].
func New[V any](points []geom.Point, values []V, nodeSize int) (*Index[V], error) {
	if nodeSize < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidNodeSize, nodeSize)
	}
	if len(points) != len(values) {
		return nil, fmt.Errorf("got %d points and %d values", len(points), len(values))
	}

	ix := &Index[V]{
		nodeSize: nodeSize,
		points:   points,
		values:   values,
		ids:      make([]int, len(points)),
	}
	if len(points) == 0 {
		return ix, nil
	}

	ix.dim = points[0].Dim()
	if ix.dim == 0 {
		return nil, fmt.Errorf("%w: points need at least one axis", geom.ErrDimensionMismatch)
	}
	ix.coords = make([]float64, 0, ix.dim*len(points))
	for i, p := range points {
		if p.Dim() != ix.dim {
			return nil, fmt.Errorf("%w: point %d has %d axes, index has %d", geom.ErrDimensionMismatch, i, p.Dim(), ix.dim)
		}
		ix.ids[i] = i
		for axis := range ix.dim {
			ix.coords = append(ix.coords, p.Coord(axis))
		}
	}

	ix.sort(0, len(ix.ids)-1, 0)
	return ix, nil
}

func (ix *Index[V]) Len() int { return len(ix.ids) }

func (ix *Index[V]) Dim() int { return ix.dim }

// Query yields every point q contains. Queries of another dimension match nothing.
func (ix *Index[V]) Query(q geom.Query) iter.Seq2[geom.Point, V] {
	return func(yield func(geom.Point, V) bool) {
		bounds := q.Region()
		if len(ix.ids) == 0 || bounds.Dim() != ix.dim {
			return
		}

		stack := []int{0, len(ix.ids) - 1, 0}
		for len(stack) > 0 {
			n := len(stack)
			left, right, axis := stack[n-3], stack[n-2], stack[n-1]
			stack = stack[:n-3]

			if right-left <= ix.nodeSize {
				for i := left; i <= right; i++ {
					if !ix.visit(i, q, yield) {
						return
					}
				}
				continue
			}

			m := (left + right) / 2
			if !ix.visit(m, q, yield) {
				return
			}

			c := ix.coords[m*ix.dim+axis]
			iv := bounds.Interval(axis)
			next := (axis + 1) % ix.dim

			// everything left of m is <= c, everything right of it is >= c
			if iv.Start() <= c {
				stack = append(stack, left, m-1, next)
			}
			if c < iv.End() {
				stack = append(stack, m+1, right, next)
			}
		}
	}
}

func (ix *Index[V]) visit(i int, q geom.Query, yield func(geom.Point, V) bool) bool {
	id := ix.ids[i]
	if !q.Contains(ix.points[id]) {
		return true
	}
	return yield(ix.points[id], ix.values[id])
}

func (ix *Index[V]) sort(left, right, axis int) {
	if right-left <= ix.nodeSize {
		return
	}

	m := (left + right) / 2
	ix.selectK(m, left, right, axis)

	next := (axis + 1) % ix.dim
	ix.sort(left, m-1, next)
	ix.sort(m+1, right, next)
}

// selectK rearranges [left, right] so that position k holds the element that
// would be there if the range were sorted along axis (Floyd-Rivest).
func (ix *Index[V]) selectK(k, left, right, axis int) {
	for right > left {
		if right-left > 600 {
			n := float64(right - left + 1)
			m := float64(k - left + 1)
			z := math.Log(n)
			s := 0.5 * math.Exp(2*z/3)
			sd := 0.5 * math.Sqrt(z*s*(n-s)/n)
			if m-n/2 < 0 {
				sd = -sd
			}
			newLeft := max(left, int(math.Floor(float64(k)-m*s/n+sd)))
			newRight := min(right, int(math.Floor(float64(k)+(n-m)*s/n+sd)))
			ix.selectK(k, newLeft, newRight, axis)
		}

		t := ix.coord(k, axis)
		i, j := left, right

		ix.swap(left, k)
		if ix.coord(right, axis) > t {
			ix.swap(left, right)
		}

		for i < j {
			ix.swap(i, j)
			i++
			j--
			for ix.coord(i, axis) < t {
				i++
			}
			for ix.coord(j, axis) > t {
				j--
			}
		}

		if ix.coord(left, axis) == t {
			ix.swap(left, j)
		} else {
			j++
			ix.swap(j, right)
		}

		if j <= k {
			left = j + 1
		}
		if k <= j {
			right = j - 1
		}
	}
}

func (ix *Index[V]) coord(i, axis int) float64 { return ix.coords[i*ix.dim+axis] }

func (ix *Index[V]) swap(i, j int) {
	ix.ids[i], ix.ids[j] = ix.ids[j], ix.ids[i]
	a, b := ix.coords[i*ix.dim:(i+1)*ix.dim], ix.coords[j*ix.dim:(j+1)*ix.dim]
	for axis := range a {
		a[axis], b[axis] = b[axis], a[axis]
	}
}
