// Package render draws 2D trees and queries as GeoJSON.
package render

import (
	"fmt"
	"iter"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/royalcat/orthtree/geom"
)

// circleSegments is the number of edges used to draw a distance query.
const circleSegments = 64

const (
	LayerRegion = "region"
	LayerPoints = "points"
	LayerQuery  = "query"
)

// Scene collects features of one picture.
type Scene struct {
	fc *geojson.FeatureCollection
}

func NewScene() *Scene {
	return &Scene{fc: geojson.NewFeatureCollection()}
}

// AddRegions adds one polygon per region. The position of the region in
// the slice is kept in the "index" property.
func (s *Scene) AddRegions(regions []geom.Region) error {
	for i, r := range regions {
		b, err := r.Bound()
		if err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
		f := geojson.NewFeature(b.ToPolygon())
		f.Properties["layer"] = LayerRegion
		f.Properties["index"] = i
		s.fc.Append(f)
	}
	return nil
}

// AddPoints adds all points as a single multipoint feature.
func (s *Scene) AddPoints(points iter.Seq[geom.Point]) error {
	var mp orb.MultiPoint
	for p := range points {
		op, err := p.Orb()
		if err != nil {
			return err
		}
		mp = append(mp, op)
	}
	f := geojson.NewFeature(mp)
	f.Properties["layer"] = LayerPoints
	f.Properties["count"] = len(mp)
	s.fc.Append(f)
	return nil
}

// AddQuery draws the shape of q. Unknown query types are drawn as their
// bounding region.
func (s *Scene) AddQuery(q geom.Query) error {
	var (
		g   orb.Geometry
		err error
	)
	props := geojson.Properties{"layer": LayerQuery}

	switch q := q.(type) {
	case geom.DistanceQuery:
		g, err = circle(q.Center(), q.Radius())
		props["kind"] = "distance"
		props["radius"] = q.Radius()
	case geom.PolygonQuery:
		g = q.Polygon()
		props["kind"] = "polygon"
	default:
		var b orb.Bound
		b, err = q.Region().Bound()
		g = b.ToPolygon()
		props["kind"] = "region"
	}
	if err != nil {
		return err
	}

	f := geojson.NewFeature(g)
	f.Properties = props
	s.fc.Append(f)
	return nil
}

func (s *Scene) Collection() *geojson.FeatureCollection { return s.fc }

func (s *Scene) MarshalJSON() ([]byte, error) {
	return s.fc.MarshalJSON()
}

func circle(center geom.Point, radius float64) (orb.Polygon, error) {
	c, err := center.Orb()
	if err != nil {
		return nil, err
	}
	ring := make(orb.Ring, 0, circleSegments+1)
	for i := range circleSegments {
		a := 2 * math.Pi * float64(i) / circleSegments
		ring = append(ring, orb.Point{c[0] + radius*math.Cos(a), c[1] + radius*math.Sin(a)})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}, nil
}
