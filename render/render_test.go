package render_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/royalcat/orthtree/geom"
	"github.com/royalcat/orthtree/orthtree"
	"github.com/royalcat/orthtree/render"
)

func TestScene(t *testing.T) {
	r, err := geom.RegionFromBound(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}})
	if err != nil {
		t.Fatal(err)
	}
	tree, err := orthtree.New[geom.Point](r, 1)
	if err != nil {
		t.Fatal(err)
	}
	points := []geom.Point{geom.NewPoint(1, 1), geom.NewPoint(6, 6), geom.NewPoint(7, 2)}
	for _, p := range points {
		if err := tree.Insert(p); err != nil {
			t.Fatal(err)
		}
	}
	q, err := geom.NewPoint(5, 5).DistanceQuery(2)
	if err != nil {
		t.Fatal(err)
	}

	scene := render.NewScene()
	if err := scene.AddRegions(tree.Regions()); err != nil {
		t.Fatal(err)
	}
	if err := scene.AddPoints(slices.Values(points)); err != nil {
		t.Fatal(err)
	}
	if err := scene.AddQuery(q); err != nil {
		t.Fatal(err)
	}
	if err := scene.AddQuery(r); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(scene)
	if err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatal(err)
	}

	// 5 nodes, 1 multipoint, 2 queries
	if len(fc.Features) != 8 {
		t.Fatalf("expected 8 features, got %d", len(fc.Features))
	}
	root := fc.Features[0]
	if root.Properties.MustString("layer") != render.LayerRegion || !root.Geometry.Bound().Equal(orb.Bound{Max: orb.Point{10, 10}}) {
		t.Errorf("unexpected root feature %+v", root)
	}
	mp, ok := fc.Features[5].Geometry.(orb.MultiPoint)
	if !ok || len(mp) != 3 {
		t.Errorf("expected multipoint of 3, got %v", fc.Features[5].Geometry)
	}
	circle := fc.Features[6]
	if circle.Properties.MustString("kind") != "distance" || circle.Properties.MustFloat64("radius") != 2 {
		t.Errorf("unexpected query feature %+v", circle.Properties)
	}
	b := circle.Geometry.Bound()
	if b.Min[0] < 2.99 || b.Max[0] > 7.01 {
		t.Errorf("circle bound %v does not match the radius", b)
	}
}

func TestSceneRejects3D(t *testing.T) {
	iv, _ := geom.NewInterval(0, 1)
	r, err := geom.NewRegion(iv, iv, iv)
	if err != nil {
		t.Fatal(err)
	}
	if err := render.NewScene().AddRegions([]geom.Region{r}); err == nil {
		t.Fatal("expected error for a 3D region")
	}
}
