package server

import (
	"net/http"

	"github.com/mailru/easyjson/jwriter"
	"github.com/valyala/fasthttp"
)

// StatsHandler reports request counters and the shape of the tree.
func (s *server) StatsHandler(ctx *fasthttp.RequestCtx) {
	s.called(ctx, 0)

	tree := s.loc.Stats()

	w := jwriter.Writer{}
	w.RawByte('{')
	field(&w, "requests", s.requests.Value(), true)
	field(&w, "lookups", s.lookups.Value(), false)
	field(&w, "misses", s.misses.Value(), false)
	w.RawString(`,"tree":{`)
	field(&w, "items", int64(tree.Items), true)
	field(&w, "nodes", int64(tree.Nodes), false)
	field(&w, "leaves", int64(tree.Leaves), false)
	field(&w, "depth", int64(tree.Depth), false)
	field(&w, "saturated", int64(tree.Saturated), false)
	w.RawString("}}")

	data, err := w.BuildBytes()
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.SetBody(data)
}

func field(w *jwriter.Writer, name string, v int64, first bool) {
	if !first {
		w.RawByte(',')
	}
	w.String(name)
	w.RawByte(':')
	w.Int64(v)
}
