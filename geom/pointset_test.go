package geom_test

import (
	"slices"
	"testing"

	"github.com/royalcat/orthtree/geom"
)

func TestPointSet(t *testing.T) {
	s := geom.NewPointSet(geom.NewPoint(2, 1), geom.NewPoint(1, 2))
	if !s.Add(geom.NewPoint(0, 0)) {
		t.Error("new point must be added")
	}
	if s.Add(geom.NewPoint(1, 2)) {
		t.Error("duplicate point must not be added")
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", s.Len())
	}

	got := slices.Collect(s.All())
	want := []geom.Point{geom.NewPoint(0, 0), geom.NewPoint(1, 2), geom.NewPoint(2, 1)}
	if !slices.EqualFunc(got, want, geom.Point.Equal) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	other := geom.NewPointSet(geom.NewPoint(0, 0), geom.NewPoint(2, 1))
	if s.Equal(other) {
		t.Error("sets must differ")
	}
	missing := s.Missing(other)
	if len(missing) != 1 || !missing[0].Equal(geom.NewPoint(1, 2)) {
		t.Errorf("expected Point(1, 2) missing, got %v", missing)
	}
	other.Add(geom.NewPoint(1, 2))
	if !s.Equal(other) {
		t.Error("sets must be equal")
	}
}
