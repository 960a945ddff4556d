package main

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/royalcat/orthtree/geom"
	"github.com/royalcat/orthtree/internal/stats"
	"github.com/royalcat/orthtree/kdindex"
	"github.com/royalcat/orthtree/orthtree"
	"github.com/royalcat/orthtree/qindex"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v3"
)

const benchSide = 1000

// searcher answers one distance query with the matched points.
type searcher struct {
	name    string
	search  func(q geom.Query) iter.Seq[geom.Point]
	elapsed *xsync.Counter
	matched *xsync.Counter
}

func bench(ctx *cli.Context) error {
	log := slog.Default()

	threads := ctx.Int("threads")
	if threads == 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	log = log.With("threads", threads)

	stopProfile, err := startPprof(ctx)
	if err != nil {
		return err
	}
	defer stopProfile()

	collector, err := stats.NewCollector(100 * time.Millisecond)
	if err != nil {
		return err
	}
	collector.Start()

	side, err := geom.NewInterval(0, benchSide)
	if err != nil {
		return err
	}
	region, err := geom.NewRegion(side, side)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(uint64(ctx.Int("seed")), 0))

	collector.Phase("generate")
	points, err := generatePoints(region, ctx.Int("points"), ctx.String("distribution"), rng)
	if err != nil {
		return err
	}
	log.Info("Points generated", "count", humanize.Comma(int64(len(points))), "distribution", ctx.String("distribution"))

	collector.Phase("insert orthtree")
	tree, err := orthtree.New[int](region, ctx.Int("capacity"), orthtree.WithLogger(log))
	if err != nil {
		return err
	}
	start := time.Now()
	bar := pb.StartNew(len(points))
	for i, p := range points {
		if err := tree.Insert(orthtree.Entry[int]{Key: p, Value: i}); err != nil {
			bar.Finish()
			return fmt.Errorf("inserting point %d: %w", i, err)
		}
		bar.Increment()
	}
	bar.Finish()
	treeStats := tree.Stats()
	log.Info("Orthtree built",
		"elapsed", time.Since(start),
		"nodes", humanize.Comma(int64(treeStats.Nodes)),
		"depth", treeStats.Depth,
		"saturated", treeStats.Saturated,
	)

	collector.Phase("insert qtree")
	index := qindex.New[int]()
	start = time.Now()
	for i, p := range points {
		if err := index.Insert(p, i); err != nil {
			return fmt.Errorf("inserting point %d: %w", i, err)
		}
	}
	log.Info("Qtree built", "elapsed", time.Since(start))

	collector.Phase("sort kdindex")
	start = time.Now()
	kd, err := kdindex.New(points, pointIDs(len(points)), ctx.Int("capacity"))
	if err != nil {
		return err
	}
	log.Info("Kd index built", "elapsed", time.Since(start))

	searchers := []*searcher{
		{name: "linear", search: func(q geom.Query) iter.Seq[geom.Point] { return linearScan(points, q) }},
		{name: "orthtree", search: func(q geom.Query) iter.Seq[geom.Point] { return keys(tree.QueryEntries(q)) }},
		{name: "qtree", search: func(q geom.Query) iter.Seq[geom.Point] { return byIndex(points, index.Query(q)) }},
		{name: "kdindex", search: func(q geom.Query) iter.Seq[geom.Point] { return keys(kd.Query(q)) }},
	}
	for _, s := range searchers {
		s.elapsed = xsync.NewCounter()
		s.matched = xsync.NewCounter()
	}

	collector.Phase("query")
	queries := geom.SampleUniform(region, ctx.Int("queries"), rng)
	radius := ctx.Float64("radius")
	mismatches := xsync.NewCounter()

	bar = pb.StartNew(len(queries))
	p := pool.New().WithErrors().WithMaxGoroutines(threads)
	for _, center := range queries {
		p.Go(func() error {
			defer bar.Increment()
			q, err := geom.NewDistanceQuery(center, radius)
			if err != nil {
				return err
			}
			var want *geom.PointSet
			for _, s := range searchers {
				start := time.Now()
				got := geom.NewPointSet()
				for pt := range s.search(q) {
					got.Add(pt)
				}
				s.elapsed.Add(int64(time.Since(start)))
				s.matched.Add(int64(got.Len()))

				if want == nil {
					want = got
					continue
				}
				if !want.Equal(got) {
					mismatches.Inc()
					log.Warn("Search results differ from linear scan",
						"searcher", s.name,
						"center", center.String(),
						"missing", len(want.Missing(got)),
						"extra", len(got.Missing(want)),
					)
				}
			}
			return nil
		})
	}
	err = p.Wait()
	bar.Finish()
	if err != nil {
		return err
	}

	runtimeStats := collector.Stop()

	fmt.Printf("%d points, %d queries, radius %g\n", len(points), len(queries), radius)
	for _, s := range searchers {
		total := time.Duration(s.elapsed.Value())
		fmt.Printf("%-10s %12s total %12s/query %s matches\n",
			s.name,
			total.Round(time.Microsecond),
			(total / time.Duration(max(len(queries), 1))).Round(time.Nanosecond),
			humanize.Comma(s.matched.Value()),
		)
	}
	if n := mismatches.Value(); n > 0 {
		fmt.Printf("%d mismatched results\n", n)
	}

	if name := ctx.String("stats"); name != "" {
		if err := runtimeStats.SaveToFile(name); err != nil {
			return err
		}
		log.Info("Runtime stats saved", "file", name)
	} else {
		runtimeStats.WriteReport(os.Stdout)
	}

	if ctx.Bool("pprof.heap") {
		if err := writeHeapProfile("bench"); err != nil {
			return fmt.Errorf("error writing heap profile: %w", err)
		}
	}

	if mismatches.Value() > 0 {
		return fmt.Errorf("%d searches disagreed with the linear scan", mismatches.Value())
	}
	return nil
}

func generatePoints(region geom.Region, n int, distribution string, rng *rand.Rand) ([]geom.Point, error) {
	switch distribution {
	case "uniform":
		return geom.SampleUniform(region, n, rng), nil
	case "poisson":
		// poisson disc packs roughly 0.7/d^2 points per unit of area
		area := region.Interval(0).Width() * region.Interval(1).Width()
		return geom.SamplePoisson(region, math.Sqrt(0.7*area/float64(max(n, 1))))
	default:
		return nil, fmt.Errorf("unknown distribution %q", distribution)
	}
}

func linearScan(points []geom.Point, q geom.Query) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for _, p := range points {
			if q.Contains(p) && !yield(p) {
				return
			}
		}
	}
}

func keys[V any](entries iter.Seq2[geom.Point, V]) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for p := range entries {
			if !yield(p) {
				return
			}
		}
	}
}

func pointIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func byIndex(points []geom.Point, ids iter.Seq[int]) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for id := range ids {
			if !yield(points[id]) {
				return
			}
		}
	}
}
