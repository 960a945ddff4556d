package locator_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/paulmach/orb"
	"github.com/royalcat/orthtree/geomodel"
	"github.com/royalcat/orthtree/locator"
	"github.com/royalcat/orthtree/orthtree"
	"github.com/royalcat/orthtree/snapshot"
	"github.com/thejerf/slogassert"
)

var testBound = orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}

func newLocator(t *testing.T, opts ...locator.Option) *locator.Locator {
	t.Helper()
	opts = append([]locator.Option{locator.WithLogger(slogassert.NullLogger())}, opts...)
	l, err := locator.New(testBound, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestNearest(t *testing.T) {
	l := newLocator(t, locator.WithCapacity(1), locator.WithSearchRadius(1))
	for i, p := range []orb.Point{{0, 0}, {0.5, 0}, {2, 2}, {-3, 4}} {
		if err := l.Add(p, geomodel.Info{ID: int64(i), Name: "p"}); err != nil {
			t.Fatal(err)
		}
	}

	res, ok := l.Nearest(orb.Point{0.4, 0.1})
	if !ok {
		t.Fatal("expected a result")
	}
	if res.Info.ID != 1 {
		t.Fatalf("expected 1, got %d", res.Info.ID)
	}

	if _, ok := l.Nearest(orb.Point{5, -5}); ok {
		t.Fatal("expected nothing within the search radius")
	}

	res, ok = l.NearestInRadius(orb.Point{5, 3}, 100)
	if !ok || res.Info.ID != 2 {
		t.Fatalf("expected 2, got %+v", res)
	}

	if _, ok := l.NearestInRadius(orb.Point{0, 0}, -1); ok {
		t.Fatal("invalid radius must find nothing")
	}
}

func TestAddOutside(t *testing.T) {
	l := newLocator(t)
	err := l.Add(orb.Point{20, 0}, geomodel.Info{})
	if !errors.Is(err, orthtree.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty locator, got %d", l.Len())
	}
}

func TestWithinAndInBound(t *testing.T) {
	l := newLocator(t, locator.WithCapacity(2))
	for i := range 10 {
		if err := l.Add(orb.Point{float64(i) - 5, 0}, geomodel.Info{ID: int64(i)}); err != nil {
			t.Fatal(err)
		}
	}

	within, err := l.Within(orb.Point{0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	var ids []int64
	for res := range within {
		if res.Distance > 2 {
			t.Errorf("result %+v is too far", res)
		}
		ids = append(ids, res.Info.ID)
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []int64{3, 4, 5, 6, 7}) {
		t.Errorf("expected [3 4 5 6 7], got %v", ids)
	}

	box, err := l.InBound(orb.Bound{Min: orb.Point{-5, -1}, Max: orb.Point{-3, 1}})
	if err != nil {
		t.Fatal(err)
	}
	ids = ids[:0]
	for res := range box {
		ids = append(ids, res.Info.ID)
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []int64{0, 1}) {
		t.Errorf("expected [0 1], got %v", ids)
	}

	poly, err := l.InPolygon(orb.Polygon{{{-0.5, -1}, {1.5, -1}, {1.5, 1}, {-0.5, 1}, {-0.5, -1}}})
	if err != nil {
		t.Fatal(err)
	}
	ids = ids[:0]
	for res := range poly {
		ids = append(ids, res.Info.ID)
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []int64{5, 6}) {
		t.Errorf("expected [5 6], got %v", ids)
	}

	if _, err := l.InBound(orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 1}}); err == nil {
		t.Error("expected error for an empty bound")
	}
}

func TestRegionsAndStats(t *testing.T) {
	l := newLocator(t, locator.WithCapacity(1))
	for _, p := range []orb.Point{{1, 1}, {2, 2}, {-1, -1}} {
		if err := l.Add(p, geomodel.Info{}); err != nil {
			t.Fatal(err)
		}
	}
	n := 0
	for range l.All() {
		n++
	}
	if n != 3 {
		t.Errorf("expected 3 locations, got %d", n)
	}
	stats := l.Stats()
	if stats.Items != 3 || stats.Nodes != len(l.Regions()) {
		t.Errorf("unexpected stats %+v", stats)
	}
	if !l.Bound().Equal(testBound) {
		t.Errorf("expected %v, got %v", testBound, l.Bound())
	}
}

const recordsJSON = `[
	{"x": 1, "y": 1, "id": 1, "name": "one", "kind": "amenity=cafe"},
	{"x": 2, "y": 2, "id": 2, "name": "two"},
	{"x": 50, "y": 0, "id": 3, "name": "far away"}
]`

func TestLoadFromReader(t *testing.T) {
	h := slogassert.New(t, slog.LevelInfo, nil)
	defer h.AssertEmpty()

	l, err := locator.LoadFromReader(strings.NewReader(recordsJSON), testBound, locator.WithLogger(slog.New(h)))
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", l.Len())
	}
	res, ok := l.Nearest(orb.Point{1, 1.001})
	if !ok || res.Info != (geomodel.Info{ID: 1, Name: "one", Kind: "amenity=cafe"}) {
		t.Fatalf("unexpected result %+v", res)
	}

	h.AssertMessage("Loading locator points from reader")
	h.AssertMessage("Initializing locator")
	h.AssertPrecise(slogassert.LogMessageMatch{
		Message: "Skipped records outside the locator bound",
		Level:   slog.LevelWarn,
		Attrs:   map[string]any{"skipped": 1},
	})
	h.AssertPrecise(slogassert.LogMessageMatch{
		Message: "Locator loaded",
		Level:   slog.LevelInfo,
		Attrs:   map[string]any{"points": 2},
	})
}

func TestLoadFromReaderInvalid(t *testing.T) {
	_, err := locator.LoadFromReader(strings.NewReader(`{"x": 1}`), testBound, locator.WithLogger(slogassert.NullLogger()))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromZstdFile(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte(recordsJSON)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	compressed := filepath.Join(dir, "points.json.zst")
	plain := filepath.Join(dir, "points.json")
	if err := os.WriteFile(compressed, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(plain, []byte(recordsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{compressed, plain} {
		l, err := locator.LoadFromFile(name, testBound, locator.WithLogger(slogassert.NullLogger()))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if l.Len() != 2 {
			t.Fatalf("%s: expected 2 points, got %d", name, l.Len())
		}
	}

	if _, err := locator.OpenReader(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestSaveSnapshot(t *testing.T) {
	l, err := locator.LoadFromReader(strings.NewReader(recordsJSON), testBound, locator.WithLogger(slogassert.NullLogger()))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := l.Save(&buf, snapshot.Metadata{Version: 2, DateCreated: created}); err != nil {
		t.Fatal(err)
	}

	h := slogassert.New(t, slog.LevelInfo, nil)
	defer h.AssertEmpty()

	loaded, err := locator.LoadFromReader(&buf, testBound, locator.WithLogger(slog.New(h)))
	if err != nil {
		t.Fatal(err)
	}
	want := slices.Collect(l.Records())
	got := slices.Collect(loaded.Records())
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	for _, rec := range want {
		if !slices.Contains(got, rec) {
			t.Fatalf("expected %+v in %+v", rec, got)
		}
	}

	h.AssertMessage("Loading locator points from reader")
	h.AssertPrecise(slogassert.LogMessageMatch{
		Message: "Loaded snapshot",
		Level:   slog.LevelInfo,
		Attrs:   map[string]any{"version": 2, "date_created": created},
	})
	h.AssertMessage("Initializing locator")
	h.AssertMessage("Locator loaded")
}
