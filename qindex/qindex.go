// Package qindex is a 2D point index backed by tidwall/qtree. It answers the
// same queries as an orthtree and serves as a reference for comparisons.
package qindex

import (
	"fmt"
	"iter"
	"sync"

	"github.com/royalcat/orthtree/geom"
	"github.com/tidwall/qtree"
)

type Index[Data any] struct {
	mu      sync.RWMutex
	entries []entry[Data]
	qt      qtree.QTree
}

type entry[D any] struct {
	Point geom.Point
	Data  D
}

func New[Data any]() *Index[Data] {
	return &Index[Data]{}
}

func (ix *Index[Data]) Insert(p geom.Point, data Data) error {
	pt, err := p.Orb()
	if err != nil {
		return fmt.Errorf("qindex: %w", err)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	id := uint64(len(ix.entries))
	ix.entries = append(ix.entries, entry[Data]{Point: p, Data: data})
	ix.qt.Insert(pt, pt, id)
	return nil
}

func (ix *Index[Data]) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Query yields every item matching q. Queries that are not two-dimensional
// match nothing. The read lock is held while the sequence runs.
func (ix *Index[Data]) Query(q geom.Query) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		bound, err := q.Region().Bound()
		if err != nil {
			return
		}

		ix.mu.RLock()
		defer ix.mu.RUnlock()

		ix.qt.Search(bound.Min, bound.Max, func(_, _ [2]float64, data interface{}) bool {
			e := ix.entries[data.(uint64)]
			if !q.Contains(e.Point) {
				return true
			}
			return yield(e.Data)
		})
	}
}
