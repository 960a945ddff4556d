package locator

import (
	"testing"

	"github.com/paulmach/osm"
)

func TestNodeInfo(t *testing.T) {
	node := &osm.Node{
		ID: 42,
		Tags: osm.Tags{
			{Key: "tourism", Value: "museum"},
			{Key: "name", Value: "British Museum"},
			{Key: "shop", Value: "gift"},
		},
	}
	info, ok := nodeInfo(node)
	if !ok {
		t.Fatal("expected named node to be indexed")
	}
	if info.ID != 42 || info.Name != "British Museum" || info.Kind != "shop=gift" {
		t.Fatalf("unexpected info %+v", info)
	}

	if _, ok := nodeInfo(&osm.Node{Tags: osm.Tags{{Key: "amenity", Value: "bench"}}}); ok {
		t.Fatal("unnamed node must be skipped")
	}
}
