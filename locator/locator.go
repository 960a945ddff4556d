package locator

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/royalcat/orthtree/geom"
	"github.com/royalcat/orthtree/geomodel"
	"github.com/royalcat/orthtree/orthtree"
)

// Locator finds named locations around a 2D point.
type Locator struct {
	mu   sync.RWMutex
	tree *orthtree.Tree[geomodel.Info]

	searchRadius float64
	logger       *slog.Logger
}

const defaultSearchRadius float64 = 0.01
const defaultCapacity = 64

func New(bound orb.Bound, opts ...Option) (*Locator, error) {
	options := loadOptions(opts...)

	region, err := geom.RegionFromBound(bound)
	if err != nil {
		return nil, fmt.Errorf("invalid locator bound %v: %w", bound, err)
	}
	tree, err := orthtree.New[geomodel.Info](region, options.capacity, orthtree.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	options.logger.Info("Initializing locator",
		slog.String("region", region.String()),
		slog.Int("capacity", options.capacity),
	)

	return &Locator{
		tree:         tree,
		searchRadius: options.searchRadius,
		logger:       options.logger,
	}, nil
}

// Add indexes info at p. Points outside the locator bound fail with
// orthtree.ErrOutOfBounds.
func (l *Locator) Add(p orb.Point, info geomodel.Info) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.tree.Insert(orthtree.Entry[geomodel.Info]{Key: geom.PointFromOrb(p), Value: info})
}

func (l *Locator) Nearest(p orb.Point) (geomodel.Result, bool) {
	return l.NearestInRadius(p, l.searchRadius)
}

// NearestInRadius returns the closest location no further than radius from p.
func (l *Locator) NearestInRadius(p orb.Point, radius float64) (geomodel.Result, bool) {
	within, err := l.Within(p, radius)
	if err != nil {
		return geomodel.Result{}, false
	}

	var found geomodel.Result
	finDist := math.Inf(1)
	for res := range within {
		if res.Distance < finDist {
			found = res
			finDist = res.Distance
		}
	}

	if math.IsInf(finDist, 1) {
		return geomodel.Result{}, false
	}
	return found, true
}

// Within yields every location no further than radius from p, in no
// particular order. Add blocks while the sequence is being ranged over.
func (l *Locator) Within(p orb.Point, radius float64) (iter.Seq[geomodel.Result], error) {
	center := geom.PointFromOrb(p)
	q, err := center.DistanceQuery(radius)
	if err != nil {
		return nil, err
	}
	return l.query(q, center), nil
}

// InBound yields every location inside b. Distances are measured from the
// bound center.
func (l *Locator) InBound(b orb.Bound) (iter.Seq[geomodel.Result], error) {
	region, err := geom.RegionFromBound(b)
	if err != nil {
		return nil, err
	}
	return l.query(region, geom.PointFromOrb(b.Center())), nil
}

// InPolygon yields every location inside poly. Distances are measured from
// the polygon bound center.
func (l *Locator) InPolygon(poly orb.Polygon) (iter.Seq[geomodel.Result], error) {
	q, err := geom.NewPolygonQuery(poly)
	if err != nil {
		return nil, err
	}
	return l.query(q, geom.PointFromOrb(poly.Bound().Center())), nil
}

func (l *Locator) query(q geom.Query, from geom.Point) iter.Seq[geomodel.Result] {
	return func(yield func(geomodel.Result) bool) {
		l.mu.RLock()
		defer l.mu.RUnlock()

		for p, info := range l.tree.QueryEntries(q) {
			res := geomodel.Result{
				X:        p.Coord(0),
				Y:        p.Coord(1),
				Distance: from.Distance(p),
				Info:     info,
			}
			if !yield(res) {
				return
			}
		}
	}
}

// All yields every location, distances are zero.
func (l *Locator) All() iter.Seq[geomodel.Result] {
	return func(yield func(geomodel.Result) bool) {
		l.mu.RLock()
		defer l.mu.RUnlock()

		for p, info := range l.tree.All() {
			if !yield(geomodel.Result{X: p.Coord(0), Y: p.Coord(1), Info: info}) {
				return
			}
		}
	}
}

// Records yields every location in its on-disk form.
func (l *Locator) Records() iter.Seq[geomodel.Record] {
	return func(yield func(geomodel.Record) bool) {
		for r := range l.All() {
			rec := geomodel.Record{X: r.X, Y: r.Y, ID: r.Info.ID, Name: r.Info.Name, Kind: r.Info.Kind}
			if !yield(rec) {
				return
			}
		}
	}
}

func (l *Locator) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Len()
}

func (l *Locator) Bound() orb.Bound {
	b, _ := l.tree.Region().Bound()
	return b
}

// Regions returns the region of every tree node, root first.
func (l *Locator) Regions() []geom.Region {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Regions()
}

func (l *Locator) Stats() orthtree.Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Stats()
}
