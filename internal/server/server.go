package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"pong-web/internal/config"
	"pong-web/internal/handler"
	"pong-web/internal/metrics"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/sync/errgroup"
)

// Route names used in logs and metrics
const (
	RouteIndex    = "index"
	RouteStatic   = "static"
	RouteSaveData = "save-data"
	RouteMetrics  = "metrics"
	RouteFallback = "fallback"
	RouteMethod   = "method-not-allowed"
)

// Server owns the routing table and the HTTP listener
type Server struct {
	cfg          config.Config
	assetHandler *handler.AssetHandler
	dataHandler  *handler.DataHandler
	metrics      *metrics.Metrics
	router       *httprouter.Router
}

// New builds the routing table. dataHandler may be nil, in which case
// POST /save-data is not registered.
func New(cfg config.Config, assetHandler *handler.AssetHandler, dataHandler *handler.DataHandler, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:          cfg,
		assetHandler: assetHandler,
		dataHandler:  dataHandler,
		metrics:      m,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *httprouter.Router {
	router := httprouter.New()

	index := observe(RouteIndex, s.metrics, s.assetHandler.Index)
	router.GET("/", index)
	router.HEAD("/", index)

	static := observe(RouteStatic, s.metrics, s.assetHandler.Static)
	router.GET("/static/*filepath", static)
	router.HEAD("/static/*filepath", static)

	if s.dataHandler != nil {
		router.POST("/save-data", observe(RouteSaveData, s.metrics, s.dataHandler.SaveData))
	}

	if s.cfg.Metrics {
		router.Handler(http.MethodGet, "/metrics", observeHandler(RouteMetrics, s.metrics, s.metrics.Handler()))
	}

	router.NotFound = observeHandler(RouteFallback, s.metrics, http.HandlerFunc(s.assetHandler.Fallback))
	router.MethodNotAllowed = observeHandler(RouteMethod, s.metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}))
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		log.Printf("panic serving method=%s path=%q: %v", r.Method, r.URL.Path, v)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}

	return router
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("server listening on http://%s", ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error closing server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	log.Printf("server stopped, totals=%v", s.metrics.GetSnapshot())
	return err
}
