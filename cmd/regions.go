package main

import (
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/paulmach/orb"
	"github.com/royalcat/orthtree/geom"
	"github.com/royalcat/orthtree/geomodel"
	"github.com/royalcat/orthtree/locator"
	"github.com/royalcat/orthtree/render"
	"github.com/urfave/cli/v3"
)

func regions(ctx *cli.Context) error {
	loc, err := loadLocator(ctx)
	if err != nil {
		return err
	}

	scene := render.NewScene()
	if err := scene.AddRegions(loc.Regions()); err != nil {
		return err
	}
	if err := scene.AddPoints(resultPoints(loc.All())); err != nil {
		return err
	}
	if within := ctx.String("within"); within != "" {
		if err := addWithin(scene, loc, within); err != nil {
			return err
		}
	}
	data, err := scene.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to render regions: %w", err)
	}

	out := ctx.String("out")
	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}

	stats := loc.Stats()
	slog.Info("Regions written", "file", out, "nodes", stats.Nodes, "depth", stats.Depth, "saturated", stats.Saturated)
	return nil
}

// addWithin draws the query x,y,r and logs how many points it matches.
func addWithin(scene *render.Scene, loc *locator.Locator, within string) error {
	v, err := parseFloats(within, 3)
	if err != nil {
		return fmt.Errorf("within must be x,y,r: %w", err)
	}
	q, err := geom.NewDistanceQuery(geom.NewPoint(v[0], v[1]), v[2])
	if err != nil {
		return err
	}
	if err := scene.AddQuery(q); err != nil {
		return err
	}

	results, err := loc.Within(orb.Point{v[0], v[1]}, v[2])
	if err != nil {
		return err
	}
	matched := 0
	for range results {
		matched++
	}
	slog.Info("Query drawn", "query", q.String(), "matched", matched)
	return nil
}

func resultPoints(results iter.Seq[geomodel.Result]) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for r := range results {
			if !yield(geom.NewPoint(r.X, r.Y)) {
				return
			}
		}
	}
}
