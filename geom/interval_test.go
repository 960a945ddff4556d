package geom_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/royalcat/orthtree/geom"
)

func mustInterval(t testing.TB, start, end float64) geom.Interval {
	t.Helper()
	iv, err := geom.NewInterval(start, end)
	if err != nil {
		t.Fatal(err)
	}
	return iv
}

func TestIntervalInvalid(t *testing.T) {
	cases := []struct {
		name       string
		start, end float64
	}{
		{"empty", 1, 1},
		{"reversed", 2, 1},
		{"nan start", math.NaN(), 1},
		{"nan end", 0, math.NaN()},
		{"inf end", 0, math.Inf(1)},
		{"neg inf start", math.Inf(-1), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := geom.NewInterval(c.start, c.end)
			if !errors.Is(err, geom.ErrInvalidRange) {
				t.Fatalf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestIntervalContains(t *testing.T) {
	iv := mustInterval(t, 0, 10)
	if !iv.Contains(0) {
		t.Error("start must be contained")
	}
	if !iv.Contains(9.999) {
		t.Error("9.999 must be contained")
	}
	if iv.Contains(10) {
		t.Error("end must not be contained")
	}
	if iv.Contains(-0.001) {
		t.Error("-0.001 must not be contained")
	}
}

func TestIntervalSubdivide(t *testing.T) {
	parts := mustInterval(t, 0, 10).Subdivide()
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0] != mustInterval(t, 0, 5) || parts[1] != mustInterval(t, 5, 10) {
		t.Fatalf("expected [0, 5) and [5, 10), got %s and %s", parts[0], parts[1])
	}
	if parts[0].Contains(5) || !parts[1].Contains(5) {
		t.Error("midpoint must belong to the upper half only")
	}
}

func TestIntervalSubdivideCollapsed(t *testing.T) {
	narrow := []geom.Interval{
		mustInterval(t, 1, math.Nextafter(1, 2)),
		mustInterval(t, 0, math.SmallestNonzeroFloat64),
		mustInterval(t, math.Nextafter(1, 2), math.Nextafter(math.Nextafter(1, 2), 2)),
	}
	for _, iv := range narrow {
		parts := iv.Subdivide()
		if len(parts) != 1 || parts[0] != iv {
			t.Errorf("expected %s to be unsplittable, got %v", iv, parts)
		}
		if iv.Splittable() {
			t.Errorf("expected %s to report unsplittable", iv)
		}
	}
}

func TestIntervalSubdivideHuge(t *testing.T) {
	iv := mustInterval(t, -math.MaxFloat64, math.MaxFloat64)
	parts := iv.Subdivide()
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].End() != 0 {
		t.Fatalf("expected split at 0, got %v", parts[0].End())
	}
}

func TestIntervalIntersects(t *testing.T) {
	a := mustInterval(t, 0, 5)
	if !a.Intersects(mustInterval(t, 4, 6)) {
		t.Error("overlapping intervals must intersect")
	}
	if a.Intersects(mustInterval(t, 5, 6)) {
		t.Error("touching intervals must not intersect")
	}
	if !a.Intersects(mustInterval(t, 1, 2)) {
		t.Error("nested interval must intersect")
	}
	if !mustInterval(t, 1, 2).Intersects(a) {
		t.Error("intersection must be symmetric")
	}
}

func TestIntervalSample(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ivs := []geom.Interval{
		mustInterval(t, -3, 7),
		mustInterval(t, 1, math.Nextafter(1, 2)),
		mustInterval(t, -math.MaxFloat64, math.MaxFloat64),
	}
	for _, iv := range ivs {
		for range 1000 {
			if v := iv.Sample(rng); !iv.Contains(v) {
				t.Fatalf("sample %v outside %s", v, iv)
			}
		}
	}
}

func FuzzIntervalSubdivide(f *testing.F) {
	f.Add(0.0, 10.0, 5.0)
	f.Add(1.0, math.Nextafter(1, 2), 1.0)
	f.Add(-1e300, 1e300, 0.0)
	f.Fuzz(func(t *testing.T, start, end, v float64) {
		iv, err := geom.NewInterval(start, end)
		if err != nil {
			return
		}
		contained := 0
		for _, part := range iv.Subdivide() {
			if part.Start() < iv.Start() || part.End() > iv.End() || part.Start() >= part.End() {
				t.Fatalf("part %s escapes %s", part, iv)
			}
			if part.Contains(v) {
				contained++
			}
		}
		want := 0
		if iv.Contains(v) {
			want = 1
		}
		if contained != want {
			t.Fatalf("value %v contained by %d parts of %s, expected %d", v, contained, iv, want)
		}
	})
}
