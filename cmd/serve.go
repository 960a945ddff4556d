package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/royalcat/orthtree/internal/telemetry"
	"github.com/royalcat/orthtree/locator"
	"github.com/royalcat/orthtree/server"
	"github.com/urfave/cli/v3"
	"golang.org/x/exp/mmap"
)

func serve(ctx *cli.Context) error {
	client, err := telemetry.Setup(ctx.Context, appName, ctx.String("otel.endpoint"))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Flush(shutdownCtx); err != nil {
			slog.Error("Error flushing telemetry", "error", err)
		}
		client.Shutdown(shutdownCtx)
	}()

	loc, err := loadLocator(ctx, locator.WithSearchRadius(ctx.Float64("radius")))
	if err != nil {
		return err
	}

	return server.Run(ctx.Context, ctx.String("listen"), loc)
}

func loadLocator(ctx *cli.Context, opts ...locator.Option) (*locator.Locator, error) {
	bound, err := parseBound(ctx.String("bound"))
	if err != nil {
		return nil, err
	}
	opts = append(opts, locator.WithCapacity(ctx.Int("capacity")))
	name := ctx.String("points")

	slog.Info("Loading points", "file", name, "bound", bound)

	if ctx.Bool("osm") {
		threads := ctx.Int("threads")
		if threads == 0 {
			threads = runtime.GOMAXPROCS(0)
		}
		return locator.LoadOSMFile(ctx.Context, name, bound, threads, opts...)
	}

	file, err := mmap.Open(name)
	if err != nil {
		return nil, fmt.Errorf("error opening points file: %w", err)
	}
	defer file.Close()

	r, err := locator.Decompress(name, io.NewSectionReader(file, 0, int64(file.Len())))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return locator.LoadFromReader(r, bound, opts...)
}

// parseBound reads minx,miny,maxx,maxy.
func parseBound(s string) (orb.Bound, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return orb.Bound{}, fmt.Errorf("bound must be minx,miny,maxx,maxy: %w", err)
	}
	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated values, got %q", n, s)
	}
	v := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		v[i] = f
	}
	return v, nil
}
