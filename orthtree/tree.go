package orthtree

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/royalcat/orthtree/geom"
)

// Tree is an n-dimensional orthtree. Every node keeps up to capacity items
// and splits its region into 2^n children the first time it overflows.
// Items that filled a node stay there, later arrivals descend into the child
// containing them.
//
// A Tree is not safe for concurrent mutation. Any number of goroutines may
// query it while nobody inserts.
type Tree[V any] struct {
	root     node[V]
	capacity int
	size     int

	logger *slog.Logger
}

type node[V any] struct {
	region   geom.Region
	items    []stored[V]
	children []node[V]
	// saturated nodes cannot be subdivided and accept items past capacity
	saturated bool
}

type stored[V any] struct {
	point geom.Point
	item  V
}

func New[V any](region geom.Region, capacity int, opts ...Option) (*Tree[V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1, got %d", ErrInvalidCapacity, capacity)
	}
	if region.Dim() == 0 {
		return nil, fmt.Errorf("%w: tree region has no axes", geom.ErrDimensionMismatch)
	}
	options := loadOptions(opts...)

	return &Tree[V]{
		root:     node[V]{region: region},
		capacity: capacity,
		logger:   options.logger,
	}, nil
}

func (t *Tree[V]) Region() geom.Region { return t.root.region }
func (t *Tree[V]) Capacity() int { return t.capacity }

// Len returns the number of stored items.
func (t *Tree[V]) Len() int { return t.size }

// Insert stores the item at its point. The tree is left untouched when the
// point has the wrong dimension or lies outside the tree region.
func (t *Tree[V]) Insert(s Storable[V]) error {
	p := s.Point()
	if p.Dim() != t.root.region.Dim() {
		return fmt.Errorf("%w: point %s in a %d-dimensional tree", geom.ErrDimensionMismatch, p, t.root.region.Dim())
	}
	if !t.root.region.Contains(p) {
		return fmt.Errorf("%w: %s not in %s", ErrOutOfBounds, p, t.root.region)
	}

	it := stored[V]{point: p, item: s.Item()}
	n := &t.root
	for {
		if n.saturated || len(n.items) < t.capacity {
			n.items = append(n.items, it)
			t.size++
			return nil
		}

		if n.children == nil && !n.subdivide() {
			n.saturated = true
			t.logger.Debug("region cannot be subdivided, capacity no longer enforced",
				slog.String("region", n.region.String()),
				slog.Int("capacity", t.capacity),
			)
			continue
		}

		next := n.childContaining(p)
		if next == nil {
			return fmt.Errorf("%w: %s in %s", ErrInvariant, p, n.region)
		}
		n = next
	}
}

// InsertAll inserts items in order and stops at the first error.
func (t *Tree[V]) InsertAll(items iter.Seq[Storable[V]]) error {
	for s := range items {
		if err := t.Insert(s); err != nil {
			return err
		}
	}
	return nil
}

// Query lazily yields every item matching q. Subtrees whose region does not
// intersect q.Region() are skipped. The sequence can be ranged over many
// times, and breaking out of it stops the traversal.
func (t *Tree[V]) Query(q geom.Query) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.QueryEntries(q) {
			if !yield(v) {
				return
			}
		}
	}
}

// QueryEntries is Query that also yields the stored point of every item.
func (t *Tree[V]) QueryEntries(q geom.Query) iter.Seq2[geom.Point, V] {
	return func(yield func(geom.Point, V) bool) {
		t.root.query(q, q.Region(), yield)
	}
}

// All yields every item in pre-order.
func (t *Tree[V]) All() iter.Seq2[geom.Point, V] {
	return func(yield func(geom.Point, V) bool) {
		t.root.walk(0, func(n *node[V], _ int) bool {
			for _, it := range n.items {
				if !yield(it.point, it.item) {
					return false
				}
			}
			return true
		})
	}
}

// Regions returns the region of every node in pre-order, root first.
func (t *Tree[V]) Regions() []geom.Region {
	var regions []geom.Region
	t.root.walk(0, func(n *node[V], _ int) bool {
		regions = append(regions, n.region)
		return true
	})
	return regions
}

type Stats struct {
	Nodes     int
	Leaves    int
	Depth     int // root is at depth 0
	Items     int
	Saturated int
}

func (t *Tree[V]) Stats() Stats {
	var s Stats
	t.root.walk(0, func(n *node[V], depth int) bool {
		s.Nodes++
		s.Items += len(n.items)
		s.Depth = max(s.Depth, depth)
		if n.children == nil {
			s.Leaves++
		}
		if n.saturated {
			s.Saturated++
		}
		return true
	})
	return s
}

func (n *node[V]) subdivide() bool {
	regions := n.region.Subdivide()
	if len(regions) < 2 {
		return false
	}
	n.children = make([]node[V], len(regions))
	for i, r := range regions {
		n.children[i] = node[V]{region: r}
	}
	return true
}

func (n *node[V]) childContaining(p geom.Point) *node[V] {
	for i := range n.children {
		if n.children[i].region.Contains(p) {
			return &n.children[i]
		}
	}
	return nil
}

func (n *node[V]) query(q geom.Query, bounds geom.Region, yield func(geom.Point, V) bool) bool {
	for _, it := range n.items {
		if q.Contains(it.point) && !yield(it.point, it.item) {
			return false
		}
	}
	for i := range n.children {
		child := &n.children[i]
		if !child.region.Intersects(bounds) {
			continue
		}
		if !child.query(q, bounds, yield) {
			return false
		}
	}
	return true
}

func (n *node[V]) walk(depth int, visit func(*node[V], int) bool) bool {
	if !visit(n, depth) {
		return false
	}
	for i := range n.children {
		if !n.children[i].walk(depth+1, visit) {
			return false
		}
	}
	return true
}
