package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/smartview/pkg/buildinfo"
	"github.com/matzehuels/smartview/pkg/config"
	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/store"
)

// maxBodyBytes bounds request bodies (trees sent to POST and PUT).
const maxBodyBytes = 32 << 20

// Server holds the API's dependencies.
type Server struct {
	store   store.Store
	runner  *pipeline.Runner
	logger  *log.Logger
	origins []string
	drawer  string
	limit   int
	trees   *treeCache
}

// Option configures a [Server].
type Option func(*Server)

// WithAllowedOrigins sets the origins allowed by CORS and the websocket
// handshake. The default allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithDrawDefaults sets the drawer and annotation limit used when a
// request names none.
func WithDrawDefaults(drawer string, annotationLimit int) Option {
	return func(s *Server) {
		if drawer != "" {
			s.drawer = drawer
		}
		s.limit = annotationLimit
	}
}

// WithLoadedTrees sets how many parsed trees are kept in memory.
func WithLoadedTrees(n int) Option {
	return func(s *Server) { s.trees = newTreeCache(n) }
}

// New creates a server over st. A nil runner draws without caching.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		store:   st,
		runner:  runner,
		logger:  logger,
		origins: []string{"*"},
		drawer:  draw.DefaultDrawer,
		trees:   newTreeCache(defaultLoadedTrees),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the API's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/health", s.health)

	r.Get("/drawers", s.listDrawers)
	r.Get("/drawers/{name}", s.getDrawer)

	r.Route("/trees", func(r chi.Router) {
		r.Get("/", s.listTrees)
		r.Post("/", s.createTree)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getTree)
			r.Put("/", s.updateTree)
			r.Delete("/", s.deleteTree)
			r.Get("/draw", s.drawTree)
			r.Get("/size", s.treeSize)
			r.Get("/newick", s.treeNewick)
			r.Get("/stream", s.streamTree)
		})
	})
	r.Get("/id/trees/{name}", s.treeID)

	return r
}

// ListenAndServe serves the API until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
	Trees  int            `json:"loaded_trees"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get(), Trees: s.trees.len()})
}
