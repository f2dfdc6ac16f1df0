package api

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/render"
	"github.com/matzehuels/smartview/pkg/render/sink"
)

const (
	streamBatch    = 500
	streamWriteTTL = 10 * time.Second
	streamReadMax  = 64 * 1024
)

// viewRequest is a view asked for over the stream endpoint.
type viewRequest struct {
	Viewport []float64 `json:"viewport,omitempty"`
	ZoomX    float64   `json:"zx,omitempty"`
	ZoomY    float64   `json:"zy,omitempty"`
	Drawer   string    `json:"drawer,omitempty"`
	Limit    int       `json:"limit,omitempty"`
}

// streamDone ends the answer to one view request.
type streamDone struct {
	Done       bool   `json:"done"`
	Primitives int    `json:"primitives"`
	Error      string `json:"error,omitempty"`
}

// viewOptions reads the drawing options from the query: x, y, w and h
// (all or none), zx and zy, drawer, limit and format.
func (s *Server) viewOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Drawer:          q.Get("drawer"),
		Format:          q.Get("format"),
		AnnotationLimit: s.limit,
	}
	if opts.Drawer == "" {
		opts.Drawer = s.drawer
	}

	keys := []string{"x", "y", "w", "h"}
	given := slices.IndexFunc(keys, func(k string) bool { return q.Has(k) }) >= 0
	if given {
		for _, k := range keys {
			if !q.Has(k) {
				return opts, errors.New(errors.ErrCodeInvalidViewport, "viewport needs all of x, y, w and h (missing %s)", k)
			}
			v, err := parseFloat(q, k, errors.ErrCodeInvalidViewport)
			if err != nil {
				return opts, err
			}
			opts.Viewport = append(opts.Viewport, v)
		}
	}

	var err error
	if opts.ZoomX, err = parseZoom(q, "zx"); err != nil {
		return opts, err
	}
	if opts.ZoomY, err = parseZoom(q, "zy"); err != nil {
		return opts, err
	}
	if q.Has("limit") {
		if opts.AnnotationLimit, err = strconv.Atoi(q.Get("limit")); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid limit")
		}
	}
	return opts, opts.ValidateForRender()
}

func parseFloat(q url.Values, key string, code errors.Code) (float64, error) {
	if !q.Has(key) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return 0, errors.Wrap(code, err, "invalid %s", key)
	}
	return v, nil
}

// parseZoom reads a zoom factor. A missing factor is zero, which the
// pipeline replaces by the default; an explicit one must be positive.
func parseZoom(q url.Values, key string) (float64, error) {
	v, err := parseFloat(q, key, errors.ErrCodeInvalidZoom)
	if err != nil || !q.Has(key) {
		return v, err
	}
	if err := errors.ValidateZoom(v, 1); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *Server) loadTree(ctx context.Context, id string) (*loadedTree, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.trees.load(rec)
}

func (s *Server) drawTree(w http.ResponseWriter, r *http.Request) {
	opts, err := s.viewOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lt, err := s.loadTree(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts.Sizes = lt.sizes
	data, _, hit, err := s.runner.RenderWithCacheInfo(r.Context(), lt.root, lt.hash, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", render.ContentType(opts.Format))
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) treeSize(w http.ResponseWriter, r *http.Request) {
	lt, err := s.loadTree(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	size := lt.sizes.Node(lt.root)
	writeJSON(w, http.StatusOK, map[string]float64{"width": size.W, "height": size.H})
}

func (s *Server) treeNewick(w http.ResponseWriter, r *http.Request) {
	lt, err := s.loadTree(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(newick.Write(lt.root)))
}

// streamTree answers each view request read from the websocket with the
// view's primitives, in batches, followed by a streamDone message.
func (s *Server) streamTree(w http.ResponseWriter, r *http.Request) {
	lt, err := s.loadTree(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		s.logger.Error("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(streamReadMax)

	ctx := r.Context()
	for {
		var req viewRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				conn.Close(websocket.StatusNormalClosure, "")
			default:
				s.logger.Debug("stream read", "error", err)
			}
			return
		}

		n, err := s.streamView(ctx, conn, lt, req)
		done := streamDone{Done: true, Primitives: n}
		if err != nil {
			// Uncoded errors come from the connection itself.
			if errors.GetCode(err) == "" {
				s.logger.Debug("stream write", "error", err)
				return
			}
			done.Error = errors.UserMessage(err)
		}
		if err := s.writeMessage(ctx, conn, done); err != nil {
			return
		}
	}
}

func (s *Server) streamView(ctx context.Context, conn *websocket.Conn, lt *loadedTree, req viewRequest) (int, error) {
	opts := pipeline.Options{
		Drawer:          req.Drawer,
		Viewport:        req.Viewport,
		ZoomX:           req.ZoomX,
		ZoomY:           req.ZoomY,
		AnnotationLimit: req.Limit,
	}
	if opts.Drawer == "" {
		opts.Drawer = s.drawer
	}
	if opts.AnnotationLimit == 0 {
		opts.AnnotationLimit = s.limit
	}
	if err := opts.ValidateForDraw(); err != nil {
		return 0, err
	}
	d, err := draw.Lookup(opts.Drawer)
	if err != nil {
		return 0, err
	}

	var (
		n     int
		batch = make([]draw.Primitive, 0, streamBatch)
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		data, _, err := sink.RenderJSON(slices.Values(batch))
		if err != nil {
			return err
		}
		writeCtx, cancel := context.WithTimeout(ctx, streamWriteTTL)
		defer cancel()
		if err := conn.Write(writeCtx, websocket.MessageText, data); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for p := range draw.Draw(lt.root, lt.sizes, d, opts.DrawOptions()) {
		batch = append(batch, p)
		n++
		if len(batch) == streamBatch {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	return n, flush()
}

func (s *Server) writeMessage(ctx context.Context, conn *websocket.Conn, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTTL)
	defer cancel()
	return wsjson.Write(writeCtx, conn, v)
}
