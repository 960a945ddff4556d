package geom

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// PolygonQuery matches 2D points inside a polygon. Points on the boundary
// follow orb/planar semantics.
type PolygonQuery struct {
	poly   orb.Polygon
	bounds Region
}

func NewPolygonQuery(poly orb.Polygon) (PolygonQuery, error) {
	if len(poly) == 0 || len(poly[0]) < 3 {
		return PolygonQuery{}, fmt.Errorf("%w: polygon needs an outer ring of at least 3 points", ErrInvalidRange)
	}
	bound := poly.Bound()
	bounds, err := NewRegionFromBounds(
		NewPoint(bound.Min.X(), bound.Min.Y()),
		// the polygon bound is closed, the region is not
		NewPoint(nextUp(bound.Max.X()), nextUp(bound.Max.Y())),
	)
	if err != nil {
		return PolygonQuery{}, fmt.Errorf("polygon bound: %w", err)
	}
	return PolygonQuery{poly: poly, bounds: bounds}, nil
}

func (q PolygonQuery) Region() Region { return q.bounds }

func (q PolygonQuery) Contains(p Point) bool {
	if p.Dim() != 2 || !q.bounds.Contains(p) {
		return false
	}
	return planar.PolygonContains(q.poly, orb.Point{p.coords[0], p.coords[1]})
}

func (q PolygonQuery) Polygon() orb.Polygon { return q.poly }
