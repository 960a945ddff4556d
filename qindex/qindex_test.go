package qindex_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/royalcat/orthtree/geom"
	"github.com/royalcat/orthtree/orthtree"
	"github.com/royalcat/orthtree/qindex"
)

func mustRegion(t testing.TB, minX, minY, maxX, maxY float64) geom.Region {
	t.Helper()
	r, err := geom.NewRegionFromBounds(geom.NewPoint(minX, minY), geom.NewPoint(maxX, maxY))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSimpleQuery(t *testing.T) {
	ix := qindex.New[string]()
	for _, c := range []struct {
		p    geom.Point
		name string
	}{
		{geom.NewPoint(0.5, 0.5), "1"},
		{geom.NewPoint(-0.5, -0.5), "2"},
		{geom.NewPoint(1, 1), "3"},
	} {
		if err := ix.Insert(c.p, c.name); err != nil {
			t.Fatal(err)
		}
	}

	got := slices.Collect(ix.Query(mustRegion(t, 0, 0, 1, 1)))
	if len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected [1], got %v", got)
	}

	q, err := geom.NewPoint(0, 0).DistanceQuery(1)
	if err != nil {
		t.Fatal(err)
	}
	got = slices.Collect(ix.Query(q))
	slices.Sort(got)
	if !slices.Equal(got, []string{"1", "2"}) {
		t.Fatalf("expected [1 2], got %v", got)
	}
}

func TestInsertRejects3D(t *testing.T) {
	ix := qindex.New[int]()
	if err := ix.Insert(geom.NewPoint(1, 2, 3), 0); err == nil {
		t.Fatal("expected error")
	}
	if ix.Len() != 0 {
		t.Fatalf("expected empty index, got %d", ix.Len())
	}
}

func FuzzMatchesOrthtree(f *testing.F) {
	f.Add(uint64(1), 0.5, 0.5, 0.1)
	f.Add(uint64(2), 0.0, 1.0, 0.7)

	f.Fuzz(func(t *testing.T, seed uint64, cx, cy, radius float64) {
		q, err := geom.NewPoint(cx, cy).DistanceQuery(radius)
		if err != nil {
			return
		}
		r := mustRegion(t, 0, 0, 1, 1)
		tree, err := orthtree.New[geom.Point](r, 4)
		if err != nil {
			t.Fatal(err)
		}
		ix := qindex.New[geom.Point]()
		for _, p := range geom.SampleUniform(r, 500, rand.New(rand.NewPCG(seed, 0))) {
			if err := tree.Insert(p); err != nil {
				t.Fatal(err)
			}
			if err := ix.Insert(p, p); err != nil {
				t.Fatal(err)
			}
		}

		want := geom.NewPointSet(slices.Collect(ix.Query(q))...)
		got := geom.NewPointSet(slices.Collect(tree.Query(q))...)
		if !got.Equal(want) {
			t.Fatalf("query %s: orthtree missing %v, extra %v", q, want.Missing(got), got.Missing(want))
		}
	})
}
