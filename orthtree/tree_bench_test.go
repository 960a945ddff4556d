package orthtree_test

import (
	"math/rand/v2"
	"testing"

	"github.com/royalcat/orthtree/geom"
	"github.com/royalcat/orthtree/orthtree"
)

func benchTree(b *testing.B, n int) (*orthtree.Tree[geom.Point], geom.Region) {
	b.Helper()
	r := region(b, 0, 1000, 0, 1000)
	tree := newTree[geom.Point](b, r, 16)
	insertPoints(b, tree, geom.SampleUniform(r, n, rand.New(rand.NewPCG(1, 2))))
	return tree, r
}

func BenchmarkInsert(b *testing.B) {
	r := region(b, 0, 1000, 0, 1000)
	points := geom.SampleUniform(r, 100_000, rand.New(rand.NewPCG(1, 2)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, _ := orthtree.New[geom.Point](r, 16)
		for _, p := range points {
			_ = tree.Insert(p)
		}
	}
}

func BenchmarkNeighbours(b *testing.B) {
	tree, r := benchTree(b, 100_000)
	rng := rand.New(rand.NewPCG(3, 4))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q, _ := r.SamplePoint(rng).DistanceQuery(10)
		for range tree.Query(q) {
		}
	}
}

func BenchmarkRegionQuery(b *testing.B) {
	tree, _ := benchTree(b, 100_000)
	q := region(b, 100, 200, 100, 200)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for range tree.Query(q) {
		}
	}
}
