package kdindex_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/royalcat/orthtree/geom"
	"github.com/royalcat/orthtree/kdindex"
)

func randomPoints(rng *rand.Rand, n, dim int, side float64) []geom.Point {
	points := make([]geom.Point, n)
	coords := make([]float64, dim)
	for i := range points {
		for axis := range coords {
			coords[axis] = rng.Float64() * side
		}
		points[i] = geom.NewPoint(coords...)
	}
	return points
}

func ids(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestNewRejects(t *testing.T) {
	_, err := kdindex.New([]geom.Point{geom.NewPoint(1, 1)}, []int{1}, 0)
	if !errors.Is(err, kdindex.ErrInvalidNodeSize) {
		t.Fatalf("expected ErrInvalidNodeSize, got %v", err)
	}

	_, err = kdindex.New([]geom.Point{geom.NewPoint(1, 1)}, []int{}, 4)
	if err == nil {
		t.Fatal("expected error for mismatched values")
	}

	_, err = kdindex.New([]geom.Point{geom.NewPoint(1, 1), geom.NewPoint(1, 1, 1)}, []int{1, 2}, 4)
	if !errors.Is(err, geom.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestEmpty(t *testing.T) {
	ix, err := kdindex.New[int](nil, nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	q, err := geom.NewDistanceQuery(geom.NewPoint(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	for range ix.Query(q) {
		t.Fatal("expected no results")
	}
}

func TestMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 7))
	for _, dim := range []int{1, 2, 3} {
		points := randomPoints(rng, 5000, dim, 100)
		ix, err := kdindex.New(points, ids(len(points)), 8)
		if err != nil {
			t.Fatal(err)
		}
		if ix.Len() != len(points) || ix.Dim() != dim {
			t.Fatalf("expected %d points in %d axes, got %d in %d", len(points), dim, ix.Len(), ix.Dim())
		}

		for range 50 {
			center := randomPoints(rng, 1, dim, 100)[0]
			q, err := geom.NewDistanceQuery(center, 1+rng.Float64()*15)
			if err != nil {
				t.Fatal(err)
			}

			var want []int
			for i, p := range points {
				if q.Contains(p) {
					want = append(want, i)
				}
			}
			var got []int
			for p, id := range ix.Query(q) {
				if !p.Equal(points[id]) {
					t.Fatalf("value %d returned with point %s, expected %s", id, p, points[id])
				}
				got = append(got, id)
			}
			slices.Sort(got)
			if !slices.Equal(want, got) {
				t.Fatalf("dim %d around %s: expected %d matches, got %d", dim, center, len(want), len(got))
			}
		}
	}
}

func TestDuplicatePoints(t *testing.T) {
	points := make([]geom.Point, 100)
	for i := range points {
		points[i] = geom.NewPoint(5, 5)
	}
	ix, err := kdindex.New(points, ids(len(points)), 4)
	if err != nil {
		t.Fatal(err)
	}

	r, err := geom.NewRegionFromBounds(geom.NewPoint(5, 5), geom.NewPoint(6, 6))
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for range ix.Query(r) {
		n++
	}
	if n != len(points) {
		t.Fatalf("expected %d, got %d", len(points), n)
	}
}

func TestEarlyBreak(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	points := randomPoints(rng, 1000, 2, 10)
	ix, err := kdindex.New(points, ids(len(points)), 4)
	if err != nil {
		t.Fatal(err)
	}
	r, err := geom.NewRegionFromBounds(geom.NewPoint(0, 0), geom.NewPoint(10, 10))
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	for range ix.Query(r) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func BenchmarkQuery(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	points := randomPoints(rng, 100_000, 2, 1000)
	ix, err := kdindex.New(points, ids(len(points)), 16)
	if err != nil {
		b.Fatal(err)
	}
	centers := randomPoints(rng, 1024, 2, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q, _ := geom.NewDistanceQuery(centers[i%len(centers)], 10)
		for range ix.Query(q) {
		}
	}
}
