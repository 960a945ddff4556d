package server

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	stdlog "log"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fasthttp/router"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/royalcat/orthtree/geomodel"
	"github.com/royalcat/orthtree/locator"
	"github.com/royalcat/orthtree/render"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const MaxBodySize = 32 * 1000 * 1000 // 32MB

// DefaultLimit caps the number of results of area lookups unless the
// request sets ?limit=.
const DefaultLimit = 1000

var meter = otel.Meter("github.com/royalcat/orthtree/server")

// Run serves lookups against loc until ctx is canceled. loc must not be
// modified while the server runs.
func Run(ctx context.Context, address string, loc *locator.Locator) error {
	log := slog.Default()

	s, err := newServer(loc)
	if err != nil {
		return err
	}

	server := &fasthttp.Server{
		ReadTimeout:        time.Second,
		MaxRequestBodySize: MaxBodySize,
		Handler:            s.router().Handler,
	}

	go func() {
		log.Info("Server listening", "address", address)
		if err := server.ListenAndServe(address); err != http.ErrServerClosed {
			stdlog.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	slog.Info("Server started")

	// wait cancel
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return server.ShutdownWithContext(shutdownCtx)
}

type server struct {
	loc *locator.Locator

	requests *xsync.Counter
	lookups  *xsync.Counter
	misses   *xsync.Counter

	metricHttpCallCount   metric.Int64Counter
	metricLookupCount     metric.Int64Counter
	metricResultsReturned metric.Int64Counter
}

func newServer(loc *locator.Locator) (*server, error) {
	metricHttpCallCount, err := meter.Int64Counter("http_call_total")
	if err != nil {
		return nil, err
	}
	metricLookupCount, err := meter.Int64Counter("lookup_total")
	if err != nil {
		return nil, err
	}
	metricResultsReturned, err := meter.Int64Counter("results_returned_total")
	if err != nil {
		return nil, err
	}

	return &server{
		loc: loc,

		requests: xsync.NewCounter(),
		lookups:  xsync.NewCounter(),
		misses:   xsync.NewCounter(),

		metricHttpCallCount:   metricHttpCallCount,
		metricLookupCount:     metricLookupCount,
		metricResultsReturned: metricResultsReturned,
	}, nil
}

func (s *server) router() *router.Router {
	r := router.New()
	r.GET("/nearest/{x}/{y}", s.NearestHandler)
	r.POST("/nearest", s.NearestBatchHandler)
	r.GET("/within/{x}/{y}/{r}", s.WithinHandler)
	r.GET("/box/{minx}/{miny}/{maxx}/{maxy}", s.BoxHandler)
	r.POST("/polygon", s.PolygonHandler)
	r.GET("/regions", s.RegionsHandler)
	r.GET("/stats", s.StatsHandler)
	r.Handle(http.MethodGet, "/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
	return r
}

var reqPointsPool = sync.Pool{
	New: func() any {
		return [][2]float64{}
	},
}

func (s *server) called(ctx *fasthttp.RequestCtx, lookups int) {
	s.requests.Inc()
	s.lookups.Add(int64(lookups))
	s.metricHttpCallCount.Add(ctx, 1)
	s.metricLookupCount.Add(ctx, int64(lookups))
}

func (s *server) NearestHandler(ctx *fasthttp.RequestCtx) {
	s.called(ctx, 1)

	x, y, ok := floatParams(ctx, "x", "y")
	if !ok {
		return
	}

	res, ok := s.loc.Nearest(orb.Point{x, y})
	if !ok {
		s.misses.Inc()
		ctx.Response.SetStatusCode(http.StatusNoContent)
		return
	}
	s.metricResultsReturned.Add(ctx, 1)

	writeJSON(ctx, res)
}

// NearestBatchHandler answers a body of [[x, y], ...]. Lookups that find
// nothing produce a zero result at the same position.
func (s *server) NearestBatchHandler(ctx *fasthttp.RequestCtx) {
	req := reqPointsPool.Get().([][2]float64)
	req = req[:0]
	defer func() { reqPointsPool.Put(req) }()

	err := unmarshalPointsListFast(ctx.Request.Body(), &req)
	if err != nil {
		s.called(ctx, 0)
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		ctx.Response.SetBodyString("failed to parse request: " + err.Error())
		return
	}
	s.called(ctx, len(req))

	res := make(geomodel.ResultList, 0, len(req))
	for _, p := range req {
		r, ok := s.loc.Nearest(orb.Point{p[0], p[1]})
		if !ok {
			s.misses.Inc()
		}
		res = append(res, r)
	}
	s.metricResultsReturned.Add(ctx, int64(len(res)))

	writeJSON(ctx, res)
}

func (s *server) WithinHandler(ctx *fasthttp.RequestCtx) {
	s.called(ctx, 1)

	x, y, ok := floatParams(ctx, "x", "y")
	if !ok {
		return
	}
	r, err := strconv.ParseFloat(ctx.UserValue("r").(string), 64)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		return
	}

	results, err := s.loc.Within(orb.Point{x, y}, r)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	s.writeResults(ctx, results)
}

func (s *server) BoxHandler(ctx *fasthttp.RequestCtx) {
	s.called(ctx, 1)

	minX, minY, ok := floatParams(ctx, "minx", "miny")
	if !ok {
		return
	}
	maxX, maxY, ok := floatParams(ctx, "maxx", "maxy")
	if !ok {
		return
	}

	results, err := s.loc.InBound(orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}})
	if err != nil {
		badRequest(ctx, err)
		return
	}
	s.writeResults(ctx, results)
}

// PolygonHandler answers a GeoJSON polygon geometry body.
func (s *server) PolygonHandler(ctx *fasthttp.RequestCtx) {
	s.called(ctx, 1)

	g, err := geojson.UnmarshalGeometry(ctx.Request.Body())
	if err != nil {
		badRequest(ctx, fmt.Errorf("failed to parse request: %w", err))
		return
	}
	poly, ok := g.Geometry().(orb.Polygon)
	if !ok {
		badRequest(ctx, fmt.Errorf("expected a Polygon geometry, got %T", g.Geometry()))
		return
	}

	results, err := s.loc.InPolygon(poly)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	s.writeResults(ctx, results)
}

// writeResults answers the limit closest results.
func (s *server) writeResults(ctx *fasthttp.RequestCtx, results iter.Seq[geomodel.Result]) {
	limit := DefaultLimit
	if l := ctx.QueryArgs().GetUintOrZero("limit"); l > 0 {
		limit = l
	}

	res := slices.AppendSeq(make(geomodel.ResultList, 0, 16), results)
	slices.SortStableFunc(res, func(a, b geomodel.Result) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	res = res[:min(len(res), limit)]
	if len(res) == 0 {
		s.misses.Inc()
	}
	s.metricResultsReturned.Add(ctx, int64(len(res)))

	writeJSON(ctx, res)
}

func (s *server) RegionsHandler(ctx *fasthttp.RequestCtx) {
	s.called(ctx, 0)

	scene := render.NewScene()
	if err := scene.AddRegions(s.loc.Regions()); err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString("failed to render regions")
		return
	}
	data, err := scene.MarshalJSON()
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		return
	}

	ctx.Response.Header.SetContentType("application/geo+json")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.SetBody(data)
}

type jsonMarshaler interface {
	MarshalJSON() ([]byte, error)
}

func writeJSON(ctx *fasthttp.RequestCtx, v jsonMarshaler) {
	data, err := v.MarshalJSON()
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString("failed to marshal response")
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.SetBody(data)
}

func floatParams(ctx *fasthttp.RequestCtx, a, b string) (float64, float64, bool) {
	va, err := strconv.ParseFloat(ctx.UserValue(a).(string), 64)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		return 0, 0, false
	}
	vb, err := strconv.ParseFloat(ctx.UserValue(b).(string), 64)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		return 0, 0, false
	}
	return va, vb, true
}

func badRequest(ctx *fasthttp.RequestCtx, err error) {
	ctx.Response.SetStatusCode(http.StatusBadRequest)
	ctx.Response.SetBodyString(err.Error())
}
