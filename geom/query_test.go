package geom_test

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/royalcat/orthtree/geom"
)

func TestDistanceQuery(t *testing.T) {
	q, err := geom.NewPoint(0, 0).DistanceQuery(10)
	if err != nil {
		t.Fatal(err)
	}
	if !q.Contains(geom.NewPoint(10, 0)) {
		t.Error("point at exactly the radius must be contained")
	}
	if !q.Region().Contains(geom.NewPoint(10, 0)) {
		t.Error("point at exactly the radius must not be pruned")
	}
	if q.Contains(geom.NewPoint(7.08, 7.08)) {
		t.Error("corner of the box must not be contained")
	}
	if !q.Region().Contains(geom.NewPoint(7.08, 7.08)) {
		t.Error("corner of the box must be in the bounding region")
	}
	if q.Contains(geom.NewPoint(1, 1, 1)) {
		t.Error("point of another dimension must not be contained")
	}
}

func TestDistanceQueryInvalidRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := geom.NewDistanceQuery(geom.NewPoint(0, 0), r); !errors.Is(err, geom.ErrInvalidRange) {
			t.Errorf("radius %v: expected ErrInvalidRange, got %v", r, err)
		}
	}
	if _, err := geom.NewDistanceQuery(geom.Point{}, 1); !errors.Is(err, geom.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRegionIsQuery(t *testing.T) {
	var q geom.Query = mustRegion(t, 0, 1, 0, 1)
	if !q.Contains(geom.NewPoint(0.5, 0.5)) || q.Contains(geom.NewPoint(1, 1)) {
		t.Fatal("region query must use region containment")
	}
}

func TestPolygonQuery(t *testing.T) {
	tri := orb.Polygon{{{0, 0}, {10, 0}, {0, 10}, {0, 0}}}
	q, err := geom.NewPolygonQuery(tri)
	if err != nil {
		t.Fatal(err)
	}
	if !q.Contains(geom.NewPoint(1, 1)) {
		t.Error("(1, 1) must be inside the triangle")
	}
	if q.Contains(geom.NewPoint(9, 9)) {
		t.Error("(9, 9) must be outside the triangle")
	}
	if !q.Region().Contains(geom.NewPoint(9, 9)) {
		t.Error("(9, 9) must be inside the triangle bound")
	}

	if _, err := geom.NewPolygonQuery(orb.Polygon{}); !errors.Is(err, geom.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}
