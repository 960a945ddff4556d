package geom

import (
	"iter"

	"github.com/google/btree"
)

// PointSet is an ordered set of points, iterated in Point.Compare order.
type PointSet struct {
	tree *btree.BTreeG[Point]
}

func NewPointSet(points ...Point) *PointSet {
	s := &PointSet{
		tree: btree.NewG(16, func(a, b Point) bool { return a.Compare(b) < 0 }),
	}
	for _, p := range points {
		s.Add(p)
	}
	return s
}

// Add inserts p and reports whether it was not already present.
func (s *PointSet) Add(p Point) bool {
	_, replaced := s.tree.ReplaceOrInsert(p)
	return !replaced
}

func (s *PointSet) Has(p Point) bool { return s.tree.Has(p) }

func (s *PointSet) Len() int { return s.tree.Len() }

func (s *PointSet) All() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		s.tree.Ascend(func(p Point) bool {
			return yield(p)
		})
	}
}

// Missing returns the points of s that are not in other.
func (s *PointSet) Missing(other *PointSet) []Point {
	var out []Point
	s.tree.Ascend(func(p Point) bool {
		if !other.tree.Has(p) {
			out = append(out, p)
		}
		return true
	})
	return out
}

func (s *PointSet) Equal(other *PointSet) bool {
	return s.Len() == other.Len() && len(s.Missing(other)) == 0
}
