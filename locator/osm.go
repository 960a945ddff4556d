package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/cheggaaa/pb/v3/termutil"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/royalcat/orthtree/geomodel"
	"github.com/royalcat/orthtree/orthtree"
	"github.com/sourcegraph/conc/pool"
)

// kindTags are checked in order, the first present tag names the kind.
var kindTags = []string{"amenity", "shop", "tourism", "place"}

// LoadOSMFile indexes the named nodes of an OSM PBF file.
func LoadOSMFile(ctx context.Context, name string, bound orb.Bound, threads int, opts ...Option) (*Locator, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	return LoadOSM(ctx, file, stat.Size(), bound, threads, opts...)
}

// LoadOSM indexes every node of an OSM PBF stream that has a name tag.
// X is the longitude and Y the latitude. size is only used for progress
// reporting.
func LoadOSM(ctx context.Context, r io.Reader, size int64, bound orb.Bound, threads int, opts ...Option) (*Locator, error) {
	options := loadOptions(opts...)
	log := options.logger
	if threads < 1 {
		threads = runtime.GOMAXPROCS(0)
	}

	l, err := New(bound, opts...)
	if err != nil {
		return nil, err
	}

	scanner := osmpbf.New(ctx, r, threads)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	outside := xsync.NewCounter()
	p := pool.New().WithErrors().WithMaxGoroutines(threads)

	scanErr := scanWithProgress(scanner, size, "indexing nodes", func(object osm.Object) {
		node, ok := object.(*osm.Node)
		if !ok {
			return
		}
		p.Go(func() error {
			info, ok := nodeInfo(node)
			if !ok {
				return nil
			}
			err := l.Add(orb.Point{node.Lon, node.Lat}, info)
			if errors.Is(err, orthtree.ErrOutOfBounds) {
				outside.Inc()
				return nil
			}
			return err
		})
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("error indexing nodes: %w", err)
	}
	if scanErr != nil {
		return nil, fmt.Errorf("error scanning osm data: %w", scanErr)
	}

	if n := outside.Value(); n > 0 {
		log.Warn("Skipped nodes outside the locator bound", slog.Int64("skipped", n))
	}
	log.Info("Locator loaded", slog.Int("points", l.Len()))
	return l, nil
}

func nodeInfo(node *osm.Node) (geomodel.Info, bool) {
	name := node.Tags.Find("name")
	if name == "" {
		return geomodel.Info{}, false
	}
	info := geomodel.Info{ID: int64(node.ID), Name: name}
	for _, tag := range kindTags {
		if v := node.Tags.Find(tag); v != "" {
			info.Kind = tag + "=" + v
			break
		}
	}
	return info, true
}

func scanWithProgress(scanner *osmpbf.Scanner, size int64, name string, it func(osm.Object)) error {
	bar := pb.Start64(size)
	bar.Set("prefix", name)
	bar.Set(pb.Bytes, true)
	bar.SetRefreshRate(time.Second * 5)
	if w, err := termutil.TerminalWidth(); w == 0 || err != nil {
		bar.SetTemplateString(`{{with string . "prefix"}}{{.}} {{end}}{{counters . }} {{bar . }} {{percent . }} {{speed . }} {{rtime . "ETA %s"}}{{with string . "suffix"}} {{.}}{{end}}` + "\n")
	}

	for scanner.Scan() {
		bar.SetCurrent(scanner.FullyScannedBytes())
		it(scanner.Object())
	}
	bar.Finish()

	return scanner.Err()
}
