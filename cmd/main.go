package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"

	_ "net/http/pprof"

	_ "github.com/KimMachineGun/automemlimit"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	_ "go.uber.org/automaxprocs"
)

const appName = "orthtree"

func main() {
	pointsFlags := []cli.Flag{
		&cli.StringFlag{
			Name:      "points",
			Aliases:   []string{"p"},
			Usage:     "points file, a JSON array of records, optionally .zst compressed, or an OSM PBF file with --osm",
			Required:  true,
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:  "osm",
			Usage: "read named nodes from an OSM PBF file",
		},
		&cli.StringFlag{
			Name:  "bound",
			Usage: "indexed area as minx,miny,maxx,maxy",
			Value: "-180,-90,180.000001,90.000001",
		},
		&cli.IntFlag{
			Name:  "capacity",
			Usage: "points per tree node before it splits",
			Value: 64,
		},
		&cli.IntFlag{
			Name:        "threads",
			Aliases:     []string{"t"},
			DefaultText: "max",
		},
	}

	app := &cli.App{
		Name:        appName,
		Description: "N-dimensional orthtree with a spatial lookup service",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve a lookup api over a points file",
				Flags: append(pointsFlags,
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
					},
					&cli.Float64Flag{
						Name:  "radius",
						Usage: "search radius of nearest lookups",
						Value: 0.01,
					},
					&cli.StringFlag{
						Name:  "otel.endpoint",
						Usage: "otlp http endpoint, OTEL_* environment is used when empty",
					},
				),
				Action: serve,
			},
			{
				Name:  "regions",
				Usage: "write the tree nodes and points of a points file as GeoJSON",
				Flags: append(pointsFlags,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "regions.geojson", TakesFile: true},
					&cli.StringFlag{Name: "within", Usage: "also draw the distance query x,y,r"},
				),
				Action: regions,
			},
			{
				Name:  "convert",
				Usage: "write the points of a points file as a binary snapshot",
				Flags: append(pointsFlags,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "points.snap", TakesFile: true},
					&cli.UintFlag{Name: "data-version", Usage: "data version stored in the snapshot"},
				),
				Action: convert,
			},
			{
				Name:  "bench",
				Usage: "compare linear scan and the indexes on generated points",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "points", Aliases: []string{"n"}, Value: 100_000},
					&cli.IntFlag{Name: "capacity", Value: 16},
					&cli.Float64Flag{Name: "radius", Value: 10},
					&cli.IntFlag{Name: "queries", Aliases: []string{"q"}, Value: 1000},
					&cli.StringFlag{Name: "distribution", Usage: "uniform or poisson", Value: "uniform"},
					&cli.IntFlag{Name: "threads", Aliases: []string{"t"}, DefaultText: "max"},
					&cli.IntFlag{Name: "seed", Value: 1},
					&cli.StringFlag{Name: "stats", Usage: "write a runtime report to this file", TakesFile: true},
					&cli.StringFlag{Name: "pprof.listen"},
					&cli.BoolFlag{Name: "pprof.profile"},
					&cli.BoolFlag{Name: "pprof.heap"},
				},
				Action: bench,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func startPprof(ctx *cli.Context) (stop func(), err error) {
	log := slog.Default()

	if pprofListen := ctx.String("pprof.listen"); pprofListen != "" {
		go func() {
			log.Info("Starting pprof server", "address", pprofListen)
			err := http.ListenAndServe(pprofListen, nil)
			if err != nil {
				log.Error("Error starting pprof server", "error", err)
			}
		}()
	}

	stop = func() {}
	if ctx.Bool("pprof.profile") {
		f, err := os.OpenFile("profile.cpu.pprof", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("error creating pprof file: %w", err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("error starting pprof: %w", err)
		}
		stop = func() {
			pprof.StopCPUProfile()
			f.Close()
		}
	}
	return stop, nil
}

func writeHeapProfile(name string) error {
	f, err := os.Create(name + ".heap.prof")
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}
